package repository

import (
	"context"
	"time"

	"deyelegliz/internal/domain/entity"
)

type PhoneVerificationRepository interface {
	Create(ctx context.Context, v *entity.PhoneVerification) error
	GetByID(ctx context.Context, id string) (*entity.PhoneVerification, error)
	RecordAttempt(ctx context.Context, id string) error
	MarkCompleted(ctx context.Context, id string, state entity.VerificationState, uid string) error
	DeleteExpired(ctx context.Context, before time.Time) (int, error)
}
