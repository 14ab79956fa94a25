package repository

import (
	"context"
	"time"

	"deyelegliz/internal/domain/entity"
)

// StoreUpdate is written into the vendorApplication sub-record.
type StoreUpdate struct {
	BusinessName string
	Phone        string
	Address      string
	Country      string
	Department   string
	City         string
	State        string
	ZipCode      string
}

type UserRepository interface {
	// Create fails with a conflict when the profile already exists.
	Create(ctx context.Context, user *entity.UserProfile) error
	GetByID(ctx context.Context, id string) (*entity.UserProfile, error)
	UpdateStore(ctx context.Context, id string, store StoreUpdate) error
	SetLogoURL(ctx context.Context, id, logoURL string) error
	ListExpiredSubscriptions(ctx context.Context, now time.Time) ([]*entity.UserProfile, error)
	DeactivateSubscription(ctx context.Context, id string) error
}
