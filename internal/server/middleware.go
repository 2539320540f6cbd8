package server

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// requestIDMiddleware tags every request with a UUID, honoring an incoming
// X-Request-ID so IDs survive through reverse proxies.
func requestIDMiddleware() echo.MiddlewareFunc {
	return middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string {
			return uuid.NewString()
		},
	})
}

// rateLimiter builds a per-IP token bucket limiter for mutation routes.
// Reads stay unlimited, a widget mounts far more often than anyone taps.
func (s *Server) rateLimiter() echo.MiddlewareFunc {
	return middleware.RateLimiter(middleware.NewRateLimiterMemoryStoreWithConfig(
		middleware.RateLimiterMemoryStoreConfig{
			Rate:  rate.Limit(s.config.RateLimitRPS),
			Burst: s.config.RateLimitBurst,
		},
	))
}
