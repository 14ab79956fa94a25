package repository

import (
	"context"

	"cloud.google.com/go/firestore"

	"deyelegliz/internal/domain/entity"
	"deyelegliz/internal/domain/repository"
	"deyelegliz/pkg/errors"
)

type firestoreRequestRepository struct {
	client *firestore.Client
}

func NewFirestoreRequestRepository(client *firestore.Client) repository.RequestRepository {
	return &firestoreRequestRepository{
		client: client,
	}
}

func decodeRequest(doc *firestore.DocumentSnapshot) (*entity.Request, error) {
	var req entity.Request
	if err := doc.DataTo(&req); err != nil {
		return nil, err
	}
	req.ID = doc.Ref.ID
	return &req, nil
}

func (r *firestoreRequestRepository) Create(ctx context.Context, request *entity.Request) error {
	ref := r.client.Collection(requestsCollection).NewDoc()
	if _, err := ref.Create(ctx, request); err != nil {
		return errors.Internal("Failed to create request", err)
	}
	request.ID = ref.ID
	return nil
}

func (r *firestoreRequestRepository) GetByID(ctx context.Context, id string) (*entity.Request, error) {
	doc, err := r.client.Collection(requestsCollection).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound("Request", err)
		}
		return nil, errors.Internal("Failed to get request", err)
	}
	req, err := decodeRequest(doc)
	if err != nil {
		return nil, errors.Internal("Failed to parse request data", err)
	}
	return req, nil
}

func (r *firestoreRequestRepository) query(ownerID string) firestore.Query {
	query := r.client.Collection(requestsCollection).Query
	if ownerID != "" {
		return query.Where("userId", "==", ownerID)
	}
	return query.OrderBy("createdAt", firestore.Desc)
}

func (r *firestoreRequestRepository) List(ctx context.Context, ownerID string) ([]*entity.Request, error) {
	return collectDocs(r.query(ownerID).Documents(ctx), decodeRequest, "requests")
}

func (r *firestoreRequestRepository) Watch(ctx context.Context, ownerID string, emit func([]*entity.Request)) error {
	return watchQuery(ctx, r.query(ownerID), decodeRequest, "requests", emit)
}

func (r *firestoreRequestRepository) IncrementViews(ctx context.Context, id string) error {
	return updateDoc(ctx, r.client.Collection(requestsCollection).Doc(id), "Request", []firestore.Update{
		{Path: "views", Value: firestore.Increment(1)},
	})
}

func (r *firestoreRequestRepository) IncrementProposalCount(ctx context.Context, id string) error {
	return updateDoc(ctx, r.client.Collection(requestsCollection).Doc(id), "Request", []firestore.Update{
		{Path: "proposalCount", Value: firestore.Increment(1)},
	})
}

func (r *firestoreRequestRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.client.Collection(requestsCollection).Doc(id).Delete(ctx); err != nil {
		return errors.Internal("Failed to delete request", err)
	}
	return nil
}

type firestoreProposalRepository struct {
	client *firestore.Client
}

func NewFirestoreProposalRepository(client *firestore.Client) repository.ProposalRepository {
	return &firestoreProposalRepository{
		client: client,
	}
}

func decodeProposal(doc *firestore.DocumentSnapshot) (*entity.Proposal, error) {
	var p entity.Proposal
	if err := doc.DataTo(&p); err != nil {
		return nil, err
	}
	p.ID = doc.Ref.ID
	return &p, nil
}

func (r *firestoreProposalRepository) Create(ctx context.Context, proposal *entity.Proposal) error {
	ref := r.client.Collection(proposalsCollection).NewDoc()
	if _, err := ref.Create(ctx, proposal); err != nil {
		return errors.Internal("Failed to create proposal", err)
	}
	proposal.ID = ref.ID
	return nil
}

func (r *firestoreProposalRepository) byRequest(requestID string) firestore.Query {
	return r.client.Collection(proposalsCollection).Where("requestId", "==", requestID)
}

func (r *firestoreProposalRepository) ListByRequest(ctx context.Context, requestID string) ([]*entity.Proposal, error) {
	return collectDocs(r.byRequest(requestID).Documents(ctx), decodeProposal, "proposals")
}

func (r *firestoreProposalRepository) WatchByRequest(ctx context.Context, requestID string, emit func([]*entity.Proposal)) error {
	return watchQuery(ctx, r.byRequest(requestID), decodeProposal, "proposals", emit)
}
