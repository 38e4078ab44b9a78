package layouts

import (
	cmp "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	g "maragu.dev/gomponents/html"
)

// NoticeID is the element that carries submission notices.
const NoticeID = "notice"

// Props configures the document shell.
type Props struct {
	Title   string
	HtmxURL string
	// Notice is rendered above the page content; it may be nil.
	Notice cmp.Node
}

// CalculateTitle appends the application name to a page title.
func CalculateTitle(title string) string {
	if title != "" {
		return title + " - Authforms"
	}
	return "Authforms"
}

// Base wraps page content in the HTML document.
func Base(props Props, content cmp.Node) cmp.Node {
	notice := props.Notice
	if notice == nil {
		notice = g.Div(g.ID(NoticeID), g.Class("notice"))
	}
	return c.HTML5(c.HTML5Props{
		Title:    CalculateTitle(props.Title),
		Language: "ru",
		Head: []cmp.Node{
			g.Meta(g.Name("viewport"), g.Content("width=device-width, initial-scale=1")),
			g.Link(g.Rel("stylesheet"), g.Href("/static/style.css")),
			cmp.If(props.HtmxURL != "", g.Script(g.Src(props.HtmxURL), g.Defer())),
		},
		Body: []cmp.Node{
			notice,
			content,
		},
	})
}
