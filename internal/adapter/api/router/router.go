package router

import (
	"github.com/labstack/echo/v4"

	"deyelegliz/internal/adapter/api/handler"
	"deyelegliz/internal/adapter/api/middleware"
	"deyelegliz/internal/infrastructure/ratelimit"
)

func Setup(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	vendorMiddleware *middleware.VendorMiddleware,
	limiter *ratelimit.RateLimiter,
	wsHandler *handler.WebSocketHandler,
) {
	SetupNavigationRouter(e)
	SetupAuthRouter(e, authMiddleware, limiter)
	SetupProductRouter(e, authMiddleware, limiter)
	SetupRequestRouter(e, authMiddleware, vendorMiddleware, limiter)
	SetupMerchantRouter(e, authMiddleware, vendorMiddleware, limiter)
	SetupWebSocketRouter(e, wsHandler)
	SetupHealthRouter(e)
}
