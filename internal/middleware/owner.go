package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	// OwnerContextKey holds the browser's owner key in the echo context.
	OwnerContextKey = "owner"

	ownerSessionName = "authforms-owner"
	ownerSessionKey  = "key"
)

// Owner makes sure every browser carries a random owner key in a signed
// session cookie. Page views are bound to the key that created them so a page
// id leaking into another browser is useless there.
// It must run after the session middleware.
func Owner(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := session.Get(ownerSessionName, c)
		if err != nil {
			// A cookie signed with an old secret decodes with an error but
			// still yields a fresh session we can overwrite.
			FromContext(c.Request().Context()).Info("replacing unreadable owner session", "error", err)
		}
		if sess == nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
		}

		key, _ := sess.Values[ownerSessionKey].(string)
		if key == "" {
			key = uuid.NewString()
			sess.Values[ownerSessionKey] = key
			sess.Options = &sessions.Options{
				Path:     "/",
				HttpOnly: true,
				Secure:   c.Request().TLS != nil,
				SameSite: http.SameSiteLaxMode,
			}
			if err := sess.Save(c.Request(), c.Response()); err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "could not save session").SetInternal(err)
			}
		}

		c.Set(OwnerContextKey, key)
		return next(c)
	}
}

// OwnerFrom returns the owner key set by Owner, or "" outside of it.
func OwnerFrom(c echo.Context) string {
	key, _ := c.Get(OwnerContextKey).(string)
	return key
}
