package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/authforms/internal/middleware"
)

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() {
	rateLimiter := middleware.RateLimiter(s.Cfg.SubmitRate, s.submitLimitMessage)

	s.E.GET("/", s.pages.Home, middleware.Owner)

	pages := s.E.Group("/pages/:id", middleware.Owner)
	pages.POST("/mode", s.pages.Mode)
	pages.POST("/:form", s.pages.Submit, rateLimiter)
	pages.POST("/:form/change", s.pages.Change)
	pages.POST("/:form/blur", s.pages.Blur)
	pages.POST("/:form/visibility", s.pages.Visibility)

	s.E.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
}
