package router

import (
	"github.com/labstack/echo/v4"

	"deyelegliz/internal/adapter/api/handler"
)

func SetupNavigationRouter(e *echo.Echo) {
	navigationHandler := handler.GetNavigationHandler()

	// The gate resolves the bearer token itself so an unreachable auth
	// backend yields an "unresolved" decision instead of a 503.
	e.GET("/v1/navigation", navigationHandler.Decide)
	e.POST("/v1/onboarding/complete", navigationHandler.CompleteOnboarding)
}
