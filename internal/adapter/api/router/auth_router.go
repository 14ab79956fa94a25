package router

import (
	"github.com/labstack/echo/v4"

	"deyelegliz/internal/adapter/api/handler"
	"deyelegliz/internal/adapter/api/middleware"
	"deyelegliz/internal/infrastructure/ratelimit"
)

// SetupAuthRouter initializes auth routes
func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, limiter *ratelimit.RateLimiter) {
	authHandler := handler.GetAuthHandler()

	sendCode := middleware.RateLimit(limiter, middleware.ActionSendCode)
	e.POST("/v1/auth/signup/send-code", authHandler.SendSignupCode, sendCode)
	e.POST("/v1/auth/login/send-code", authHandler.SendLoginCode, sendCode)
	e.POST("/v1/auth/verify", authHandler.Verify, middleware.RateLimit(limiter, middleware.ActionVerify))

	protected := e.Group("/v1")
	protected.Use(authMiddleware.Authenticate)
	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/me", authHandler.Me)
}
