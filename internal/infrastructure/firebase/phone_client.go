package firebase

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"

	"deyelegliz/internal/domain/entity"
	apperrors "deyelegliz/pkg/errors"
)

// PhoneAuthClient drives the Identity Toolkit phone sign-in endpoints.
type PhoneAuthClient struct {
	relyingParty *identitytoolkit.RelyingpartyService
}

func NewPhoneAuthClient(ctx context.Context, apiKey string, opts ...option.ClientOption) (*PhoneAuthClient, error) {
	opts = append(opts, option.WithAPIKey(apiKey))
	svc, err := identitytoolkit.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &PhoneAuthClient{relyingParty: svc.Relyingparty}, nil
}

func (p *PhoneAuthClient) SendCode(ctx context.Context, phoneNumber, recaptchaToken string) (string, error) {
	resp, err := p.relyingParty.SendVerificationCode(&identitytoolkit.IdentitytoolkitRelyingpartySendVerificationCodeRequest{
		PhoneNumber:    phoneNumber,
		RecaptchaToken: recaptchaToken,
	}).Context(ctx).Do()
	if err != nil {
		return "", MapProviderError(err)
	}
	return resp.SessionInfo, nil
}

func (p *PhoneAuthClient) ConfirmCode(ctx context.Context, sessionInfo, code string) (*entity.AuthSession, error) {
	resp, err := p.relyingParty.VerifyPhoneNumber(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPhoneNumberRequest{
		SessionInfo: sessionInfo,
		Code:        code,
	}).Context(ctx).Do()
	if err != nil {
		return nil, MapProviderError(err)
	}
	return &entity.AuthSession{
		UID:          resp.LocalId,
		IDToken:      resp.IdToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		IsNewUser:    resp.IsNewUser,
		PhoneNumber:  resp.PhoneNumber,
	}, nil
}

// MapProviderError turns Identity Toolkit error messages into the auth taxonomy.
func MapProviderError(err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return apperrors.Internal("Phone verification request failed", err)
	}
	msg := gerr.Message
	switch {
	case strings.HasPrefix(msg, "INVALID_CODE"), strings.HasPrefix(msg, "INVALID_SESSION_INFO"),
		strings.HasPrefix(msg, "SESSION_EXPIRED"), strings.HasPrefix(msg, "CODE_EXPIRED"):
		return apperrors.InvalidCredentials("The code is incorrect or has expired", err)
	case strings.HasPrefix(msg, "INVALID_PHONE_NUMBER"), strings.HasPrefix(msg, "MISSING_PHONE_NUMBER"):
		return apperrors.MalformedIdentity("The phone number is not valid", err)
	case strings.HasPrefix(msg, "CAPTCHA_CHECK_FAILED"), strings.HasPrefix(msg, "MISSING_RECAPTCHA_TOKEN"),
		strings.HasPrefix(msg, "INVALID_RECAPTCHA_TOKEN"):
		return apperrors.ChallengeFailed("Security check failed, try again", err)
	case strings.HasPrefix(msg, "TOO_MANY_ATTEMPTS_TRY_LATER"), strings.HasPrefix(msg, "QUOTA_EXCEEDED"):
		return apperrors.TooManyRequests("Too many attempts, try again later", err)
	case strings.HasPrefix(msg, "PHONE_NUMBER_EXISTS"), strings.HasPrefix(msg, "CREDENTIAL_TOO_OLD"):
		return apperrors.IdentityInUse("This phone number is already in use")
	}
	return apperrors.Internal("Phone verification request failed", err)
}
