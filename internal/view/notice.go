package view

import (
	"github.com/nfrund/authforms/web/src/templates/layouts"
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

// NoticeKind selects the notice styling.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice renders the page-level notice box. With oob set the element carries
// hx-swap-oob so it can ride along with a fragment response.
func Notice(kind NoticeKind, text string, oob bool) cmp.Node {
	return g.Div(
		g.ID(layouts.NoticeID),
		g.Class("notice notice-"+string(kind)),
		g.Role("status"),
		cmp.If(oob, hx.SwapOOB("true")),
		cmp.Text(text),
	)
}

// FlashNotice shows the first flashed error, or nil when there is none.
func FlashNotice(flashes FlashData) cmp.Node {
	if len(flashes.Error) == 0 {
		return nil
	}
	return Notice(NoticeError, flashes.Error[0], false)
}
