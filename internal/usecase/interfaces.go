package usecase

import (
	"context"
	"time"

	"deyelegliz/internal/domain/entity"
)

type FirebaseAuthClient interface {
	VerifyToken(ctx context.Context, token string) (string, error)
	SetDisplayName(ctx context.Context, uid, displayName string) error
	RevokeSessions(ctx context.Context, uid string) error
	TestConnection(ctx context.Context) error
}

// PhoneVerifier sends and confirms one-time phone codes.
type PhoneVerifier interface {
	SendCode(ctx context.Context, phoneNumber, recaptchaToken string) (string, error)
	ConfirmCode(ctx context.Context, sessionInfo, code string) (*entity.AuthSession, error)
}

// ChallengeVerifier scores an invisible challenge token. A nil verifier skips the check.
type ChallengeVerifier interface {
	Verify(ctx context.Context, token, action, userIP, userAgent string) error
}

// Clock is swapped in tests.
type Clock func() time.Time
