package server

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/authforms/internal/middleware"
)

// setupErrorHandling installs an error handler that answers in plain text and
// logs unhandled errors with a stack trace.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		logger := middleware.FromContext(c.Request().Context())

		var he *echo.HTTPError
		if errors.As(err, &he) {
			if he.Internal != nil {
				logger.Info("request rejected", "status", he.Code, "error", he.Internal)
			}
			message := http.StatusText(he.Code)
			if m, ok := he.Message.(string); ok {
				message = m
			} else if he.Message != nil {
				message = fmt.Sprint(he.Message)
			}
			if err := c.String(he.Code, message); err != nil {
				logger.Error("failed to write error response", "error", err)
			}
			return
		}

		logger.Error("Internal Server Error (Unhandled)",
			"error", err.Error(),
			"stack_trace", string(debug.Stack()),
		)
		if err := c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)); err != nil {
			logger.Error("failed to write error response", "error", err)
		}
	}
}
