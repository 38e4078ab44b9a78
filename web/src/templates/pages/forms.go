package pages

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/nfrund/authforms/internal/forms"
	"github.com/nfrund/authforms/internal/messages"
	"github.com/nfrund/authforms/internal/pageview"
	"golang.org/x/text/message"
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

// MainID is the element swapped when the mode changes.
const MainID = "main"

// PagePath is the URL prefix of everything that acts on one page view.
func PagePath(id uuid.UUID) string {
	return "/pages/" + id.String()
}

// FormPath is where a form is submitted.
func FormPath(id uuid.UUID, kind forms.Kind) string {
	return PagePath(id) + "/" + string(kind)
}

// ModePath is where the mode toggle posts to.
func ModePath(id uuid.UUID) string {
	return PagePath(id) + "/mode"
}

// FormID is the DOM id of a form element.
func FormID(kind forms.Kind) string {
	return string(kind) + "-form"
}

// InputID is the DOM id of a field's input. Ids are prefixed by the form so
// both forms can be on the page at once.
func InputID(kind forms.Kind, f forms.Field) string {
	return fmt.Sprintf("%s-%s", kind, f)
}

// ErrorID is the DOM id of the slot holding a field's error message.
func ErrorID(kind forms.Kind, f forms.Field) string {
	return InputID(kind, f) + "-error"
}

// ShowPasswordID is the DOM id of a form's visibility checkbox.
func ShowPasswordID(kind forms.Kind) string {
	return string(kind) + "-show-password"
}

// SubmitID is the DOM id of a form's submit button.
func SubmitID(kind forms.Kind) string {
	return string(kind) + "-submit"
}

type formText struct {
	title, button, busy, prompt, switchLabel string
	switchTo                                 pageview.Mode
	class                                    string
}

var texts = map[forms.Kind]formText{
	forms.KindRegister: {
		title:       messages.RegisterTitle,
		button:      messages.RegisterButton,
		busy:        messages.RegisterBusyButton,
		prompt:      messages.HaveAccountPrompt,
		switchLabel: messages.SwitchToLogin,
		switchTo:    pageview.ModeLogin,
		class:       "form-register_content",
	},
	forms.KindLogin: {
		title:       messages.LoginTitle,
		button:      messages.LoginButton,
		busy:        messages.LoginBusyButton,
		prompt:      messages.NoAccountPrompt,
		switchLabel: messages.SwitchToRegister,
		switchTo:    pageview.ModeRegistration,
		class:       "form-login_content",
	},
}

var labels = map[forms.Field]string{
	forms.FieldName:     messages.NameLabel,
	forms.FieldEmail:    messages.EmailLabel,
	forms.FieldPassword: messages.PasswordLabel,
	forms.FieldConfirm:  messages.ConfirmLabel,
}

// Main renders the page root holding both forms. The mode only decides the
// class; both forms are always rendered from their stored state.
func Main(p *message.Printer, page *pageview.Page) cmp.Node {
	return g.Main(
		g.ID(MainID),
		g.Class(page.Mode.Class()),
		g.Img(g.Src("/static/bg.svg"), g.Alt(p.Sprintf(messages.BackgroundAlt))),
		g.Div(
			g.Class("main-content"),
			Form(p, page.ID, &page.Registration),
			Form(p, page.ID, &page.Login),
		),
	)
}

// Form renders one of the two forms with its values and errors.
func Form(p *message.Printer, pageID uuid.UUID, form forms.Form) cmp.Node {
	kind := form.Kind()
	t := texts[kind]
	action := FormPath(pageID, kind)

	fields := make([]cmp.Node, 0, len(form.Fields()))
	for _, f := range form.Fields() {
		fields = append(fields, field(p, pageID, form, f))
	}

	return g.Form(
		g.ID(FormID(kind)),
		g.Class(t.class),
		g.Method("post"),
		g.Action(action),
		cmp.Attr("novalidate"),
		hx.Post(action),
		hx.Target("this"),
		hx.Swap("outerHTML"),
		cmp.Attr("hx-disabled-elt", "find button[type='submit']"),
		g.Div(
			g.Class("block"),
			g.H1(g.Class("title__block"), cmp.Text(p.Sprintf(t.title))),
			cmp.Group(fields),
			g.Div(
				g.Class("checkbox"),
				g.Div(
					g.Class("show-password"),
					g.Input(
						g.ID(ShowPasswordID(kind)),
						g.Name(forms.ShowPasswordInput),
						g.Type("checkbox"),
						g.Value("true"),
						cmp.If(form.ShowsPassword(), g.Checked()),
						hx.Post(action+"/visibility"),
						hx.Trigger("change"),
						hx.Target("#"+FormID(kind)),
						hx.Swap("outerHTML"),
					),
					g.Label(g.For(ShowPasswordID(kind)), cmp.Text(p.Sprintf(messages.ShowPasswordLabel))),
				),
			),
			g.Div(g.Class("button-block"), SubmitButton(p, form, false)),
			g.Div(
				g.Class("bottom"),
				g.P(
					cmp.Text(p.Sprintf(t.prompt)+" "),
					g.Button(
						g.Type("submit"),
						g.Class("switch-link"),
						g.Name("mode"),
						g.Value(string(t.switchTo)),
						cmp.Attr("formaction", ModePath(pageID)),
						hx.Post(ModePath(pageID)),
						hx.Vals(fmt.Sprintf(`{"mode":%q}`, t.switchTo)),
						hx.Target("#"+MainID),
						hx.Swap("outerHTML"),
						cmp.Text(p.Sprintf(t.switchLabel)),
					),
				),
			),
		),
	)
}

func field(p *message.Printer, pageID uuid.UUID, form forms.Form, f forms.Field) cmp.Node {
	kind := form.Kind()
	action := FormPath(pageID, kind)
	problem := form.Problems().Get(f)
	vals := fmt.Sprintf(`{"field":%q}`, f.String())

	inputType := "text"
	switch f {
	case forms.FieldEmail:
		inputType = "email"
	case forms.FieldPassword, forms.FieldConfirm:
		if !form.ShowsPassword() {
			inputType = "password"
		}
	}

	class := fmt.Sprintf("input-registr input-%s", f)
	if problem != forms.NoProblem {
		class += " error"
	}

	// Keystrokes are posted by the container so the input itself can carry the
	// blur request; htmx allows one request verb per element.
	return g.Div(
		g.Class("input-container"),
		hx.Post(action+"/change"),
		hx.Trigger("input changed delay:150ms from:find input"),
		hx.Vals(vals),
		hx.Target("#"+ErrorID(kind, f)),
		hx.Swap("outerHTML"),
		g.Input(
			g.ID(InputID(kind, f)),
			g.Name(f.String()),
			g.Class(class),
			g.Type(inputType),
			g.Placeholder(" "),
			g.Value(form.Value(f)),
			hx.Post(action+"/blur"),
			hx.Trigger("blur"),
			hx.Vals(vals),
			hx.Target("#"+ErrorID(kind, f)),
			hx.Swap("outerHTML"),
		),
		g.Label(g.For(InputID(kind, f)), cmp.Text(p.Sprintf(labels[f]))),
		FieldError(p, kind, f, problem),
	)
}

// FieldError renders the slot beneath an input. The slot is always present so
// htmx has something to swap.
func FieldError(p *message.Printer, kind forms.Kind, f forms.Field, problem forms.Problem) cmp.Node {
	if problem == forms.NoProblem {
		return g.Div(g.ID(ErrorID(kind, f)), g.Class("error-slot"))
	}
	return g.Div(
		g.ID(ErrorID(kind, f)),
		g.Class("error-slot error-text"),
		cmp.Text(p.Sprintf(problem.Message())),
	)
}

// SubmitButton renders the submit button, disabled until the form is ready.
// With oob set it is marked for an htmx out-of-band swap.
func SubmitButton(p *message.Printer, form forms.Form, oob bool) cmp.Node {
	kind := form.Kind()
	t := texts[kind]
	ready := form.Ready()

	class := "button-apply"
	if !ready {
		class += " disabled"
	}

	return g.Button(
		g.ID(SubmitID(kind)),
		g.Type("submit"),
		g.Class(class),
		cmp.If(!ready, g.Disabled()),
		cmp.If(oob, hx.SwapOOB("true")),
		g.Span(g.Class("label-idle"), cmp.Text(p.Sprintf(t.button))),
		g.Span(g.Class("label-busy"), cmp.Text(p.Sprintf(t.busy))),
	)
}
