package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// DefaultSubmitsPerMinute is the submit allowance per client IP.
const DefaultSubmitsPerMinute = 10

// RateLimiter limits requests to perMinute per minute per IP address for the
// routes it's applied to. A full allowance is available as a burst. Denied
// requests get message with 429.
func RateLimiter(perMinute int, message string) echo.MiddlewareFunc {
	if perMinute <= 0 {
		perMinute = DefaultSubmitsPerMinute
	}
	config := middleware.RateLimiterConfig{
		// NewRateLimiterMemoryStore is a simple in-memory store suitable for single-instance deployments.
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(float64(perMinute) / 60),
			Burst:     perMinute,
			ExpiresIn: 3 * time.Minute,
		}),

		// We identify clients by their real IP address.
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			FromContext(c.Request().Context()).Warn("rate limit exceeded", "client", identifier)
			return c.String(http.StatusTooManyRequests, message)
		},
	}
	return middleware.RateLimiterWithConfig(config)
}
