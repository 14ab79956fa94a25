package router

import (
	"github.com/labstack/echo/v4"

	"deyelegliz/internal/adapter/api/middleware"
	"deyelegliz/internal/infrastructure/ratelimit"
)

// authedWrite is the chain for authenticated mutations.
func authedWrite(authMiddleware *middleware.AuthMiddleware, limiter *ratelimit.RateLimiter) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		authMiddleware.Authenticate,
		middleware.RateLimit(limiter, middleware.ActionWrite),
	}
}
