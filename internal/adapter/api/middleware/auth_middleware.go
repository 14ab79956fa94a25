package middleware

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"deyelegliz/pkg/errors"
	"deyelegliz/pkg/response"
)

// TokenVerifier resolves an ID token to a uid.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
}

func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
	}
}

// BearerToken returns the token of an "Authorization: Bearer" header, or "".
func BearerToken(c echo.Context) string {
	parts := strings.Fields(c.Request().Header.Get("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		idToken := BearerToken(c)
		if idToken == "" {
			return response.Error(c, errors.Unauthorized("Authorization header is required", nil))
		}

		uid, err := m.verifier.VerifyToken(c.Request().Context(), idToken)
		if err != nil {
			if stderrors.Is(err, errors.ErrAuthUnavailable) {
				return response.Error(c, errors.New(errors.CodeAuthUnavailable, "Authentication is temporarily unavailable", http.StatusServiceUnavailable, err))
			}
			return response.Error(c, errors.Unauthorized("Invalid or expired token", err))
		}

		c.Set("uid", uid)
		return next(c)
	}
}

// Optional sets uid when a valid token is present and never rejects.
func (m *AuthMiddleware) Optional(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if idToken := BearerToken(c); idToken != "" {
			if uid, err := m.verifier.VerifyToken(c.Request().Context(), idToken); err == nil {
				c.Set("uid", uid)
			}
		}
		return next(c)
	}
}

func (m *AuthMiddleware) GetUIDFromToken(ctx context.Context, token string) (string, error) {
	return m.verifier.VerifyToken(ctx, token)
}
