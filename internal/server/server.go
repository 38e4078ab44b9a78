package server

import (
	"io/fs"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/authforms/internal/config"
	"github.com/nfrund/authforms/internal/handlers"
	"github.com/nfrund/authforms/internal/middleware"
	"github.com/nfrund/authforms/internal/pageview"
	"github.com/nfrund/authforms/internal/validation"
	"github.com/nfrund/authforms/web"
	"github.com/spf13/afero"
)

const sessionMaxAge = 86400 * 7 // 7 days

// Server holds the dependencies for the HTTP server.
type Server struct {
	E     *echo.Echo
	Cfg   *config.Config
	store pageview.Store
	pages *handlers.PageHandler

	// submitLimitMessage is answered when a client submits too often.
	submitLimitMessage string
}

// New creates a new Server instance with middleware and routes in place.
func New(cfg *config.Config, store pageview.Store, pages *handlers.PageHandler, static afero.Fs, submitLimitMessage string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.NewEchoValidator()
	setupErrorHandling(e)

	e.Use(echomw.RequestID())
	e.Use(middleware.Logger)
	e.Use(middleware.AccessLog())
	e.Use(echomw.Recover())

	// Configure and use session middleware
	cookies := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(cookies))

	e.StaticFS("/static", afero.NewIOFS(static))

	s := &Server{
		E:                  e,
		Cfg:                cfg,
		store:              store,
		pages:              pages,
		submitLimitMessage: submitLimitMessage,
	}
	s.RegisterRoutes()
	return s
}

// StaticFiles returns the assets served under /static: dir on disk when set,
// the embedded copy otherwise.
func StaticFiles(dir string) (afero.Fs, error) {
	if dir != "" {
		return afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), dir)), nil
	}
	sub, err := fs.Sub(web.FS, "static")
	if err != nil {
		return nil, err
	}
	return afero.FromIOFS{FS: sub}, nil
}
