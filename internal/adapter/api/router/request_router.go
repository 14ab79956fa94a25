package router

import (
	"github.com/labstack/echo/v4"

	"deyelegliz/internal/adapter/api/handler"
	"deyelegliz/internal/adapter/api/middleware"
	"deyelegliz/internal/infrastructure/ratelimit"
)

func SetupRequestRouter(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	vendorMiddleware *middleware.VendorMiddleware,
	limiter *ratelimit.RateLimiter,
) {
	requestHandler := handler.GetRequestHandler()
	write := authedWrite(authMiddleware, limiter)

	requests := e.Group("/v1/requests")
	requests.GET("", requestHandler.ListRequests)
	requests.POST("", requestHandler.CreateRequest, write...)
	requests.POST("/:id/contact", requestHandler.Contact)
	requests.POST("/:id/proposals", requestHandler.Propose, append(write, vendorMiddleware.VendorOnly)...)

	mine := e.Group("/v1/my/requests")
	mine.Use(authMiddleware.Authenticate)
	mine.GET("", requestHandler.ListMine)
	mine.DELETE("/:id", requestHandler.DeleteMine)
	mine.GET("/:id/proposals", requestHandler.ListProposals)
}
