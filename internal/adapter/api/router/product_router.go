package router

import (
	"github.com/labstack/echo/v4"

	"deyelegliz/internal/adapter/api/handler"
	"deyelegliz/internal/adapter/api/middleware"
	"deyelegliz/internal/infrastructure/ratelimit"
)

func SetupProductRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, limiter *ratelimit.RateLimiter) {
	productHandler := handler.GetProductHandler()

	products := e.Group("/v1/products")
	products.GET("", productHandler.ListProducts)
	products.GET("/:id", productHandler.GetProduct)
	products.POST("/:id/views", productHandler.RecordView)
	products.POST("/:id/offers", productHandler.CreateOffer, authedWrite(authMiddleware, limiter)...)

	e.GET("/v1/food", productHandler.ListFood)
}
