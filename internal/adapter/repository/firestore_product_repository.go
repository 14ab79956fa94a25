package repository

import (
	"context"

	"cloud.google.com/go/firestore"

	"deyelegliz/internal/domain/entity"
	"deyelegliz/internal/domain/repository"
	"deyelegliz/pkg/errors"
)

type firestoreProductRepository struct {
	client *firestore.Client
}

func NewFirestoreProductRepository(client *firestore.Client) repository.ProductRepository {
	return &firestoreProductRepository{
		client: client,
	}
}

func decodeProduct(doc *firestore.DocumentSnapshot) (*entity.Product, error) {
	var product entity.Product
	if err := doc.DataTo(&product); err != nil {
		return nil, err
	}
	product.ID = doc.Ref.ID
	return &product, nil
}

func (r *firestoreProductRepository) Create(ctx context.Context, product *entity.Product) error {
	ref := r.client.Collection(productsCollection).NewDoc()
	if _, err := ref.Create(ctx, product); err != nil {
		return errors.Internal("Failed to create product", err)
	}
	product.ID = ref.ID
	return nil
}

func (r *firestoreProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	doc, err := r.client.Collection(productsCollection).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound("Product", err)
		}
		return nil, errors.Internal("Failed to get product", err)
	}

	product, err := decodeProduct(doc)
	if err != nil {
		return nil, errors.Internal("Failed to parse product data", err)
	}
	return product, nil
}

func (r *firestoreProductRepository) query(q repository.ProductQuery) firestore.Query {
	query := r.client.Collection(productsCollection).Query
	if q.AvailableOnly {
		query = query.Where("isAvailable", "==", true)
	}
	if q.OwnerID != "" {
		query = query.Where("userId", "==", q.OwnerID)
	}
	switch len(q.Categories) {
	case 0:
	case 1:
		query = query.Where("category", "==", q.Categories[0])
	default:
		query = query.Where("category", "in", q.Categories)
	}
	return query
}

func (r *firestoreProductRepository) List(ctx context.Context, q repository.ProductQuery) ([]*entity.Product, error) {
	return collectDocs(r.query(q).Documents(ctx), decodeProduct, "products")
}

func (r *firestoreProductRepository) Watch(ctx context.Context, q repository.ProductQuery, emit func([]*entity.Product)) error {
	return watchQuery(ctx, r.query(q), decodeProduct, "products", emit)
}

func (r *firestoreProductRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	return updateDoc(ctx, r.client.Collection(productsCollection).Doc(id), "Product", []firestore.Update{
		{Path: "isAvailable", Value: available},
	})
}

func (r *firestoreProductRepository) SetQuantity(ctx context.Context, id string, quantity int) error {
	return updateDoc(ctx, r.client.Collection(productsCollection).Doc(id), "Product", []firestore.Update{
		{Path: "quantity", Value: quantity},
	})
}

func (r *firestoreProductRepository) IncrementViews(ctx context.Context, id string) error {
	return updateDoc(ctx, r.client.Collection(productsCollection).Doc(id), "Product", []firestore.Update{
		{Path: "views", Value: firestore.Increment(1)},
	})
}

func (r *firestoreProductRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(productsCollection).Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete product", err)
	}
	return nil
}
