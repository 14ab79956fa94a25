package handler

import (
	"github.com/labstack/echo/v4"

	"deyelegliz/internal/adapter/api/middleware"
	"deyelegliz/internal/infrastructure/session"
	"deyelegliz/internal/usecase"
	"deyelegliz/pkg/errors"
	"deyelegliz/pkg/response"
)

type NavigationHandler struct {
	navigationUseCase *usecase.NavigationUseCase
	onboarding        *session.OnboardingStore
}

func NewNavigationHandler(navigationUseCase *usecase.NavigationUseCase, onboarding *session.OnboardingStore) *NavigationHandler {
	return &NavigationHandler{
		navigationUseCase: navigationUseCase,
		onboarding:        onboarding,
	}
}

// Decide answers what the client should do for ?route=.
func (h *NavigationHandler) Decide(c echo.Context) error {
	route := c.QueryParam("route")
	if route == "" {
		route = "/"
	}

	decision := h.navigationUseCase.Decide(
		c.Request().Context(),
		h.onboarding.Completed(c.Request()),
		middleware.BearerToken(c),
		route,
	)
	return response.Success(c, decision)
}

func (h *NavigationHandler) CompleteOnboarding(c echo.Context) error {
	if err := h.onboarding.MarkCompleted(c.Response(), c.Request()); err != nil {
		return response.Error(c, errors.Internal("Failed to save onboarding state", err))
	}
	return response.Success(c, map[string]bool{"onboarding_complete": true})
}
