package middleware

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"

	"deyelegliz/internal/infrastructure/ratelimit"
	"deyelegliz/pkg/errors"
	"deyelegliz/pkg/logger"
	"deyelegliz/pkg/response"
)

// Actions with their own buckets.
const (
	ActionSendCode = "send_code"
	ActionVerify   = "verify"
	ActionWrite    = "write"
)

// RateLimit throttles by client IP for one action and sets Retry-After.
func RateLimit(limiter *ratelimit.RateLimiter, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			allowed, wait := limiter.Allow(ip, action)
			if !allowed {
				logger.Warn("rate limit: %s blocked on %s for %v", ip, action, wait)
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				return response.Error(c, errors.TooManyRequests("Too many requests, try again later", nil))
			}
			return next(c)
		}
	}
}
