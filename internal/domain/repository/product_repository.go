package repository

import (
	"context"

	"deyelegliz/internal/domain/entity"
)

// ProductQuery holds the equality filters the store can evaluate.
type ProductQuery struct {
	OwnerID       string
	Categories    []string
	AvailableOnly bool
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, q ProductQuery) ([]*entity.Product, error)
	// Watch calls emit with every result set until ctx is done.
	Watch(ctx context.Context, q ProductQuery, emit func([]*entity.Product)) error
	SetAvailability(ctx context.Context, id string, available bool) error
	SetQuantity(ctx context.Context, id string, quantity int) error
	IncrementViews(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
