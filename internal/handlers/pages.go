package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/authforms/internal/forms"
	"github.com/nfrund/authforms/internal/messages"
	"github.com/nfrund/authforms/internal/middleware"
	"github.com/nfrund/authforms/internal/pageview"
	"github.com/nfrund/authforms/internal/rendering"
	"github.com/nfrund/authforms/internal/view"
	"github.com/nfrund/authforms/web/src/templates/layouts"
	"github.com/nfrund/authforms/web/src/templates/pages"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	cmp "maragu.dev/gomponents"
)

// PageHandler serves page views and the form events posted against them.
type PageHandler struct {
	store    pageview.Store
	renderer rendering.Renderer
	catalog  catalog.Catalog
	htmxURL  string
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(store pageview.Store, renderer rendering.Renderer, cat catalog.Catalog, htmxURL string) *PageHandler {
	return &PageHandler{
		store:    store,
		renderer: renderer,
		catalog:  cat,
		htmxURL:  htmxURL,
	}
}

func (h *PageHandler) printer() *message.Printer {
	return messages.PrinterFor(h.catalog)
}

// Home starts a new page view (GET /). Nothing of an earlier view carries
// over; ?mode=login opens it on the login form.
func (h *PageHandler) Home(c echo.Context) error {
	var req HomeRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	mode, err := pageview.ParseMode(req.Mode)
	if err != nil {
		return h.fail(c, err)
	}

	ctx := c.Request().Context()
	page, err := h.store.Create(ctx, middleware.OwnerFrom(c), mode)
	if err != nil {
		return fmt.Errorf("create page view: %w", err)
	}
	middleware.FromContext(ctx).Info("page view created", "page_id", page.ID, "mode", page.Mode)

	return h.document(c, http.StatusOK, page, view.FlashNotice(view.GetFlashData(c)))
}

// Mode switches the visible form (POST /pages/:id/mode). Values posted along
// with the switch are kept so nothing typed so far is lost.
func (h *PageHandler) Mode(c echo.Context) error {
	var req ModeRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	mode, err := pageview.ParseMode(req.Mode)
	if err != nil {
		return h.fail(c, err)
	}

	page, err := h.update(c, req.PageID, func(p *pageview.Page) error {
		// The switch button lives in the form being left.
		from := forms.KindRegister
		if p.Mode == pageview.ModeLogin {
			from = forms.KindLogin
		}
		form, err := p.Form(from)
		if err != nil {
			return err
		}
		if err := applyValues(c, form); err != nil {
			return err
		}
		p.Mode = mode
		return nil
	})
	if err != nil {
		return h.fail(c, err)
	}
	middleware.FromContext(c.Request().Context()).Debug("mode switched", "page_id", page.ID, "mode", page.Mode)

	if isHTMX(c) {
		return h.renderer.RenderPage(c, http.StatusOK, pages.Main(h.printer(), page))
	}
	return h.document(c, http.StatusOK, page, nil)
}

// Change records a keystroke (POST /pages/:id/:form/change). It answers with
// the field's error slot and the submit button out of band.
func (h *PageHandler) Change(c echo.Context) error {
	return h.fieldEvent(c, func(form forms.Form, f forms.Field, value string) error {
		// The debounced change can land after a blur that already took this value.
		if form.Value(f) == value {
			return nil
		}
		return form.Change(f, value)
	})
}

// Blur validates a field the user left (POST /pages/:id/:form/blur).
func (h *PageHandler) Blur(c echo.Context) error {
	return h.fieldEvent(c, func(form forms.Form, f forms.Field, value string) error {
		// A blur can overtake the debounced change carrying the same value.
		if form.Value(f) != value {
			if err := form.Change(f, value); err != nil {
				return err
			}
		}
		return form.Blur(f)
	})
}

func (h *PageHandler) fieldEvent(c echo.Context, apply func(forms.Form, forms.Field, string) error) error {
	var req FieldEventRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	kind, err := forms.ParseKind(req.Form)
	if err != nil {
		return h.fail(c, err)
	}
	f, err := forms.ParseField(req.Field)
	if err != nil {
		return h.fail(c, err)
	}
	value := c.FormValue(f.String())

	page, err := h.update(c, req.PageID, func(p *pageview.Page) error {
		form, err := p.Form(kind)
		if err != nil {
			return err
		}
		return apply(form, f, value)
	})
	if err != nil {
		return h.fail(c, err)
	}

	form, err := page.Form(kind)
	if err != nil {
		return err
	}
	p := h.printer()
	return h.renderer.RenderPage(c, http.StatusOK,
		pages.FieldError(p, kind, f, form.Problems().Get(f)),
		pages.SubmitButton(p, form, true),
	)
}

// Visibility toggles password masking (POST /pages/:id/:form/visibility) and
// answers with the re-rendered form.
func (h *PageHandler) Visibility(c echo.Context) error {
	var req FormRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	kind, err := forms.ParseKind(req.Form)
	if err != nil {
		return h.fail(c, err)
	}

	page, err := h.update(c, req.PageID, func(p *pageview.Page) error {
		form, err := p.Form(kind)
		if err != nil {
			return err
		}
		// Values typed since the last event come along with the form.
		if err := applyValues(c, form); err != nil {
			return err
		}
		form.SetShowPassword(req.ShowPassword)
		return nil
	})
	if err != nil {
		return h.fail(c, err)
	}

	form, err := page.Form(kind)
	if err != nil {
		return err
	}
	if isHTMX(c) {
		return h.renderer.RenderPage(c, http.StatusOK, pages.Form(h.printer(), page.ID, form))
	}
	return h.document(c, http.StatusOK, page, nil)
}

// Submit validates a whole form (POST /pages/:id/:form). An accepted
// submission yields the greeting notice and empties the form.
func (h *PageHandler) Submit(c echo.Context) error {
	var req FormRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	kind, err := forms.ParseKind(req.Form)
	if err != nil {
		return h.fail(c, err)
	}

	var res forms.Result
	page, err := h.update(c, req.PageID, func(p *pageview.Page) error {
		form, err := p.Form(kind)
		if err != nil {
			return err
		}
		if err := applyValues(c, form); err != nil {
			return err
		}
		form.SetShowPassword(req.ShowPassword)
		res = form.Submit()
		return nil
	})
	if err != nil {
		return h.fail(c, err)
	}

	// Only the outcome is logged, never what was typed.
	middleware.FromContext(c.Request().Context()).Info("form submitted",
		"page_id", page.ID,
		"form", kind,
		"accepted", res.Accepted,
		"errors", res.Errors.Count(),
	)

	p := h.printer()
	notice := view.Notice(view.NoticeSuccess, "", isHTMX(c))
	if res.Accepted {
		notice = view.Notice(view.NoticeSuccess, p.Sprintf(res.Greeting, res.Name), isHTMX(c))
	}

	if isHTMX(c) {
		form, err := page.Form(kind)
		if err != nil {
			return err
		}
		return h.renderer.RenderPage(c, http.StatusOK, pages.Form(p, page.ID, form), notice)
	}

	status := http.StatusOK
	if !res.Accepted {
		status = http.StatusUnprocessableEntity
		notice = nil
	}
	return h.document(c, status, page, notice)
}

// update applies fn to the caller's own page view. A page owned by another
// browser is reported as missing.
func (h *PageHandler) update(c echo.Context, rawID string, fn func(*pageview.Page) error) (*pageview.Page, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, pageview.ErrPageNotFound
	}
	owner := middleware.OwnerFrom(c)
	return h.store.Update(c.Request().Context(), id, func(p *pageview.Page) error {
		if p.Owner != owner {
			return pageview.ErrPageNotFound
		}
		return fn(p)
	})
}

// fail maps domain errors onto responses. An expired page view sends the
// browser to a fresh one with an explanatory notice.
func (h *PageHandler) fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, pageview.ErrPageNotFound):
		middleware.FromContext(c.Request().Context()).Info("page view not found", "page_id", c.Param("id"))
		view.SetFlashError(c, h.printer().Sprintf(messages.PageNotFound))
		return redirect(c, "/")
	case errors.Is(err, pageview.ErrUnknownMode),
		errors.Is(err, forms.ErrUnknownKind),
		errors.Is(err, forms.ErrUnknownField):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return err
}

// document renders the full HTML document for page.
func (h *PageHandler) document(c echo.Context, status int, page *pageview.Page, notice cmp.Node) error {
	p := h.printer()
	title := messages.RegisterTitle
	if page.Mode == pageview.ModeLogin {
		title = messages.LoginTitle
	}
	props := layouts.Props{Title: p.Sprintf(title), HtmxURL: h.htmxURL, Notice: notice}
	noStore(c)
	return h.renderer.RenderPage(c, status, layouts.Base(props, pages.Main(p, page)))
}

// applyValues copies the posted values of form's fields into it. Fields
// missing from the request or posted unchanged keep their values and errors.
func applyValues(c echo.Context, form forms.Form) error {
	params, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form body").SetInternal(err)
	}
	for _, f := range form.Fields() {
		values, ok := params[f.String()]
		if !ok || len(values) == 0 || values[0] == form.Value(f) {
			continue
		}
		if err := form.Change(f, values[0]); err != nil {
			return err
		}
	}
	return nil
}
