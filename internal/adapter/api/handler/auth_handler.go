package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"deyelegliz/internal/domain/entity"
	"deyelegliz/internal/usecase"
	"deyelegliz/pkg/response"
)

type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
}

func NewAuthHandler(authUseCase *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

// signupCodeRequest is checked by service.ValidateSignup in the use case so
// field rules live in one place.
type signupCodeRequest struct {
	UserType        string         `json:"user_type"`
	Name            string         `json:"name"`
	Email           string         `json:"email"`
	Phone           string         `json:"phone"`
	Address         entity.Address `json:"address"`
	BusinessName    string         `json:"business_name"`
	BusinessAddress string         `json:"business_address"`
	BusinessPhone   string         `json:"business_phone"`
	RecaptchaToken  string         `json:"recaptcha_token"`
}

type loginCodeRequest struct {
	Phone          string `json:"phone" validate:"required,phone_digits"`
	RecaptchaToken string `json:"recaptcha_token"`
}

type verifyRequest struct {
	VerificationID string `json:"verification_id" validate:"required"`
	Code           string `json:"code" validate:"required,len=6,numeric"`
}

type codeSentResponse struct {
	VerificationID string `json:"verification_id"`
	PhoneNumber    string `json:"phone_number"`
	ExpiresAt      string `json:"expires_at"`
}

func challengeInput(c echo.Context, token string) usecase.ChallengeInput {
	return usecase.ChallengeInput{
		Token:     token,
		UserIP:    c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}
}

func codeSent(c echo.Context, v *entity.PhoneVerification) error {
	return response.Created(c, codeSentResponse{
		VerificationID: v.ID,
		PhoneNumber:    v.PhoneNumber,
		ExpiresAt:      v.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

func (h *AuthHandler) SendSignupCode(c echo.Context) error {
	var req signupCodeRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	form := &entity.SignupForm{
		UserType:        req.UserType,
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Address:         req.Address,
		BusinessName:    req.BusinessName,
		BusinessAddress: req.BusinessAddress,
		BusinessPhone:   req.BusinessPhone,
	}
	v, err := h.authUseCase.SendSignupCode(c.Request().Context(), form, challengeInput(c, req.RecaptchaToken))
	if err != nil {
		return response.Error(c, err)
	}
	return codeSent(c, v)
}

func (h *AuthHandler) SendLoginCode(c echo.Context) error {
	var req loginCodeRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	v, err := h.authUseCase.SendLoginCode(c.Request().Context(), req.Phone, challengeInput(c, req.RecaptchaToken))
	if err != nil {
		return response.Error(c, err)
	}
	return codeSent(c, v)
}

func (h *AuthHandler) Verify(c echo.Context) error {
	var req verifyRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Verify(c.Request().Context(), req.VerificationID, req.Code)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, result)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.authUseCase.Logout(c.Request().Context(), uid); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Signed out"})
}

func (h *AuthHandler) Me(c echo.Context) error {
	uid := c.Get("uid").(string)

	profile, err := h.authUseCase.Me(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, profile)
}
