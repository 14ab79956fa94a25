package repository

import (
	"context"

	"deyelegliz/internal/domain/entity"
)

type RequestRepository interface {
	Create(ctx context.Context, request *entity.Request) error
	GetByID(ctx context.Context, id string) (*entity.Request, error)
	// List returns every request, or only ownerID's when set.
	List(ctx context.Context, ownerID string) ([]*entity.Request, error)
	Watch(ctx context.Context, ownerID string, emit func([]*entity.Request)) error
	IncrementViews(ctx context.Context, id string) error
	IncrementProposalCount(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type ProposalRepository interface {
	Create(ctx context.Context, proposal *entity.Proposal) error
	ListByRequest(ctx context.Context, requestID string) ([]*entity.Proposal, error)
	WatchByRequest(ctx context.Context, requestID string, emit func([]*entity.Proposal)) error
}
