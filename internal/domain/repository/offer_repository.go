package repository

import (
	"context"

	"deyelegliz/internal/domain/entity"
)

type OfferRepository interface {
	Create(ctx context.Context, offer *entity.Offer) error
	GetByID(ctx context.Context, id string) (*entity.Offer, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Offer, error)
	WatchByOwner(ctx context.Context, ownerID string, emit func([]*entity.Offer)) error
	// Respond moves a pending offer owned by ownerID to status atomically.
	Respond(ctx context.Context, id, ownerID string, status entity.OfferStatus) (*entity.Offer, error)
}
