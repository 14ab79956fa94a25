package router

import (
	"github.com/labstack/echo/v4"

	"deyelegliz/internal/adapter/api/handler"
	"deyelegliz/internal/adapter/api/middleware"
	"deyelegliz/internal/infrastructure/ratelimit"
)

func SetupMerchantRouter(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	vendorMiddleware *middleware.VendorMiddleware,
	limiter *ratelimit.RateLimiter,
) {
	merchantHandler := handler.GetMerchantHandler()
	write := middleware.RateLimit(limiter, middleware.ActionWrite)

	merchant := e.Group("/v1/merchant")
	merchant.Use(authMiddleware.Authenticate)
	merchant.Use(vendorMiddleware.VendorOnly)

	merchant.GET("/products", merchantHandler.ListProducts)
	merchant.POST("/products", merchantHandler.CreateProduct, write)
	merchant.POST("/products/:id/toggle", merchantHandler.ToggleAvailability, write)
	merchant.PUT("/products/:id/quantity", merchantHandler.SetQuantity, write)
	merchant.DELETE("/products/:id", merchantHandler.DeleteProduct, write)

	merchant.GET("/offers", merchantHandler.ListOffers)
	merchant.POST("/offers/:id/accept", merchantHandler.AcceptOffer, write)
	merchant.POST("/offers/:id/reject", merchantHandler.RejectOffer, write)

	merchant.GET("/store", merchantHandler.GetStore)
	merchant.PUT("/store", merchantHandler.UpdateStore, write)
	merchant.POST("/store/logo", merchantHandler.UploadLogo, write)

	merchant.GET("/stats", merchantHandler.Stats)
}
