package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"deyelegliz/internal/domain/entity"
	"deyelegliz/internal/domain/repository"
	"deyelegliz/pkg/errors"
)

type firestorePhoneVerificationRepository struct {
	client *firestore.Client
}

func NewFirestorePhoneVerificationRepository(client *firestore.Client) repository.PhoneVerificationRepository {
	return &firestorePhoneVerificationRepository{
		client: client,
	}
}

func decodeVerification(doc *firestore.DocumentSnapshot) (*entity.PhoneVerification, error) {
	var v entity.PhoneVerification
	if err := doc.DataTo(&v); err != nil {
		return nil, err
	}
	v.ID = doc.Ref.ID
	return &v, nil
}

func (r *firestorePhoneVerificationRepository) Create(ctx context.Context, v *entity.PhoneVerification) error {
	if _, err := r.client.Collection(verificationsCollection).Doc(v.ID).Create(ctx, v); err != nil {
		return errors.Internal("Failed to save verification", err)
	}
	return nil
}

func (r *firestorePhoneVerificationRepository) GetByID(ctx context.Context, id string) (*entity.PhoneVerification, error) {
	doc, err := r.client.Collection(verificationsCollection).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound("Verification", err)
		}
		return nil, errors.Internal("Failed to get verification", err)
	}
	v, err := decodeVerification(doc)
	if err != nil {
		return nil, errors.Internal("Failed to parse verification data", err)
	}
	return v, nil
}

func (r *firestorePhoneVerificationRepository) RecordAttempt(ctx context.Context, id string) error {
	return updateDoc(ctx, r.client.Collection(verificationsCollection).Doc(id), "Verification", []firestore.Update{
		{Path: "attempts", Value: firestore.Increment(1)},
	})
}

func (r *firestorePhoneVerificationRepository) MarkCompleted(ctx context.Context, id string, state entity.VerificationState, uid string) error {
	return updateDoc(ctx, r.client.Collection(verificationsCollection).Doc(id), "Verification", []firestore.Update{
		{Path: "state", Value: string(state)},
		{Path: "uid", Value: uid},
	})
}

func (r *firestorePhoneVerificationRepository) DeleteExpired(ctx context.Context, before time.Time) (int, error) {
	iter := r.client.Collection(verificationsCollection).Where("expiresAt", "<", before).Documents(ctx)
	stale, err := collectDocs(iter, decodeVerification, "verifications")
	if err != nil {
		return 0, err
	}
	if len(stale) == 0 {
		return 0, nil
	}

	bw := r.client.BulkWriter(ctx)
	for _, v := range stale {
		if _, err := bw.Delete(r.client.Collection(verificationsCollection).Doc(v.ID)); err != nil {
			bw.End()
			return 0, errors.Internal("Failed to queue verification delete", err)
		}
	}
	bw.End()
	return len(stale), nil
}
