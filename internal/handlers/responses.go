package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	headerHXRequest  = "HX-Request"
	headerHXRedirect = "HX-Redirect"
)

// isHTMX reports whether the request came from htmx and expects a fragment.
func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get(headerHXRequest) == "true"
}

// redirect sends the browser to path, through HX-Redirect for htmx requests
// since htmx would otherwise swap the redirected page into the target.
func redirect(c echo.Context, path string) error {
	if isHTMX(c) {
		c.Response().Header().Set(headerHXRedirect, path)
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, path)
}

// noStore keeps browsers from restoring a page view from cache. A reload
// must start a fresh one.
func noStore(c echo.Context) {
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
}
