package repository

import (
	"context"
	stderrors "errors"
	"net/http"

	"cloud.google.com/go/firestore"

	"deyelegliz/internal/domain/entity"
	"deyelegliz/internal/domain/repository"
	"deyelegliz/pkg/errors"
)

type firestoreOfferRepository struct {
	client *firestore.Client
}

func NewFirestoreOfferRepository(client *firestore.Client) repository.OfferRepository {
	return &firestoreOfferRepository{
		client: client,
	}
}

func decodeOffer(doc *firestore.DocumentSnapshot) (*entity.Offer, error) {
	var offer entity.Offer
	if err := doc.DataTo(&offer); err != nil {
		return nil, err
	}
	offer.ID = doc.Ref.ID
	return &offer, nil
}

func (r *firestoreOfferRepository) Create(ctx context.Context, offer *entity.Offer) error {
	ref := r.client.Collection(offersCollection).NewDoc()
	if _, err := ref.Create(ctx, offer); err != nil {
		return errors.Internal("Failed to create offer", err)
	}
	offer.ID = ref.ID
	return nil
}

func (r *firestoreOfferRepository) GetByID(ctx context.Context, id string) (*entity.Offer, error) {
	doc, err := r.client.Collection(offersCollection).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound("Offer", err)
		}
		return nil, errors.Internal("Failed to get offer", err)
	}
	offer, err := decodeOffer(doc)
	if err != nil {
		return nil, errors.Internal("Failed to parse offer data", err)
	}
	return offer, nil
}

func (r *firestoreOfferRepository) byOwner(ownerID string) firestore.Query {
	return r.client.Collection(offersCollection).Where("productOwnerId", "==", ownerID)
}

func (r *firestoreOfferRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Offer, error) {
	return collectDocs(r.byOwner(ownerID).Documents(ctx), decodeOffer, "offers")
}

func (r *firestoreOfferRepository) WatchByOwner(ctx context.Context, ownerID string, emit func([]*entity.Offer)) error {
	return watchQuery(ctx, r.byOwner(ownerID), decodeOffer, "offers", emit)
}

func (r *firestoreOfferRepository) Respond(ctx context.Context, id, ownerID string, newStatus entity.OfferStatus) (*entity.Offer, error) {
	ref := r.client.Collection(offersCollection).Doc(id)

	var result *entity.Offer
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			if isNotFound(err) {
				return errors.NotFound("Offer", err)
			}
			return err
		}
		offer, err := decodeOffer(doc)
		if err != nil {
			return err
		}
		if offer.ProductOwnerID != ownerID {
			return errors.Forbidden("Only the product owner can respond to this offer", nil)
		}
		if !offer.IsPending() {
			return errors.New(errors.CodeOfferNotPending, "Offer was already "+string(offer.Status), http.StatusConflict, nil)
		}
		if err := tx.Update(ref, []firestore.Update{{Path: "status", Value: string(newStatus)}}); err != nil {
			return err
		}
		offer.Status = newStatus
		result = offer
		return nil
	})
	if err != nil {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, errors.Internal("Failed to update offer", err)
	}
	return result, nil
}
