package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"deyelegliz/internal/domain/entity"
	"deyelegliz/internal/domain/repository"
	"deyelegliz/pkg/errors"
)

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func decodeUser(doc *firestore.DocumentSnapshot) (*entity.UserProfile, error) {
	var user entity.UserProfile
	if err := doc.DataTo(&user); err != nil {
		return nil, err
	}
	user.ID = doc.Ref.ID
	return &user, nil
}

func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.UserProfile) error {
	_, err := r.client.Collection(usersCollection).Doc(user.ID).Create(ctx, user)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return errors.Conflict("Profile already exists")
		}
		return errors.Internal("Failed to create profile", err)
	}
	return nil
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.UserProfile, error) {
	doc, err := r.client.Collection(usersCollection).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound("User", err)
		}
		return nil, errors.Internal("Failed to get user", err)
	}

	user, err := decodeUser(doc)
	if err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}
	return user, nil
}

func (r *firestoreUserRepository) UpdateStore(ctx context.Context, id string, store repository.StoreUpdate) error {
	return updateDoc(ctx, r.client.Collection(usersCollection).Doc(id), "User", []firestore.Update{
		{Path: "vendorApplication.businessName", Value: store.BusinessName},
		{Path: "vendorApplication.phone", Value: store.Phone},
		{Path: "vendorApplication.address", Value: store.Address},
		{Path: "vendorApplication.country", Value: store.Country},
		{Path: "vendorApplication.department", Value: store.Department},
		{Path: "vendorApplication.city", Value: store.City},
		{Path: "vendorApplication.state", Value: store.State},
		{Path: "vendorApplication.zipCode", Value: store.ZipCode},
	})
}

func (r *firestoreUserRepository) SetLogoURL(ctx context.Context, id, logoURL string) error {
	return updateDoc(ctx, r.client.Collection(usersCollection).Doc(id), "User", []firestore.Update{
		{Path: "vendorApplication.logoUrl", Value: logoURL},
	})
}

// ListExpiredSubscriptions filters the expiry in memory so only a single-field index is needed.
func (r *firestoreUserRepository) ListExpiredSubscriptions(ctx context.Context, now time.Time) ([]*entity.UserProfile, error) {
	iter := r.client.Collection(usersCollection).
		Where("vendorApplication.subscription_active", "==", true).
		Documents(ctx)
	users, err := collectDocs(iter, decodeUser, "users")
	if err != nil {
		return nil, err
	}
	var expired []*entity.UserProfile
	for _, u := range users {
		if u.Vendor.Expired(now) {
			expired = append(expired, u)
		}
	}
	return expired, nil
}

func (r *firestoreUserRepository) DeactivateSubscription(ctx context.Context, id string) error {
	return updateDoc(ctx, r.client.Collection(usersCollection).Doc(id), "User", []firestore.Update{
		{Path: "vendorApplication.subscription_active", Value: false},
	})
}
