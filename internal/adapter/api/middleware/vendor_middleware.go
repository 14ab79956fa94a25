package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"deyelegliz/internal/domain/entity"
	"deyelegliz/internal/domain/repository"
	"deyelegliz/pkg/errors"
	"deyelegliz/pkg/response"
)

type VendorMiddleware struct {
	userRepo repository.UserRepository
}

func NewVendorMiddleware(userRepo repository.UserRepository) *VendorMiddleware {
	return &VendorMiddleware{
		userRepo: userRepo,
	}
}

// VendorOnly admits callers with a vendor application that was not rejected.
// The profile is stored under "profile" for handlers.
func (m *VendorMiddleware) VendorOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := c.Get("uid").(string)
		if !ok || uid == "" {
			return response.Error(c, errors.Unauthorized("Authentication required", nil))
		}

		user, err := m.userRepo.GetByID(c.Request().Context(), uid)
		if err != nil {
			if errors.Is(err, errors.CodeNotFound) {
				return response.Error(c, errors.ProfileMissing())
			}
			return response.Error(c, err)
		}

		if !user.IsVendor || user.Vendor == nil {
			return response.Error(c, errors.Forbidden("A vendor account is required", nil))
		}
		if user.Vendor.Status == entity.VendorRejected {
			return response.Error(c, errors.New(errors.CodeVendorRejected, "Your vendor application was rejected", http.StatusForbidden, nil))
		}

		c.Set("profile", user)
		return next(c)
	}
}
