package usecase

import (
	"context"
	"net/url"
	"strings"

	"deyelegliz/internal/domain/entity"
	"deyelegliz/internal/domain/repository"
	"deyelegliz/internal/domain/service"
	"deyelegliz/pkg/logger"
)

type ListingUseCase struct {
	productRepo   repository.ProductRepository
	requestRepo   repository.RequestRepository
	userRepo      repository.UserRepository
	publicBaseURL string
	supportPhone  string
}

func NewListingUseCase(
	productRepo repository.ProductRepository,
	requestRepo repository.RequestRepository,
	userRepo repository.UserRepository,
	publicBaseURL string,
	supportPhone string,
) *ListingUseCase {
	return &ListingUseCase{
		productRepo:   productRepo,
		requestRepo:   requestRepo,
		userRepo:      userRepo,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		supportPhone:  supportPhone,
	}
}

// MarketQuery is the store-side half of a market listing filter.
func MarketQuery(f service.ListingFilter) repository.ProductQuery {
	return repository.ProductQuery{
		AvailableOnly: true,
		Categories:    f.Normalize().Categories,
	}
}

func FoodQuery() repository.ProductQuery {
	return repository.ProductQuery{
		AvailableOnly: true,
		Categories:    []string{entity.CategoryFood},
	}
}

func (uc *ListingUseCase) ListProducts(ctx context.Context, f service.ListingFilter) ([]*entity.Product, error) {
	products, err := uc.productRepo.List(ctx, MarketQuery(f))
	if err != nil {
		return nil, err
	}
	return service.FilterProducts(products, f), nil
}

func (uc *ListingUseCase) ListFood(ctx context.Context, search string) ([]*entity.Product, error) {
	products, err := uc.productRepo.List(ctx, FoodQuery())
	if err != nil {
		return nil, err
	}
	return service.FilterFood(products, search), nil
}

func (uc *ListingUseCase) ListRequests(ctx context.Context) ([]*entity.Request, error) {
	requests, err := uc.requestRepo.List(ctx, "")
	if err != nil {
		return nil, err
	}
	service.SortRequestsNewest(requests)
	return requests, nil
}

// ProductURL is the public page a contact message links back to.
func (uc *ListingUseCase) ProductURL(p *entity.Product) string {
	return uc.publicBaseURL + "/market/" + url.PathEscape(p.Category) + "/" + url.PathEscape(p.ID)
}

// GetProductDetail joins the owner's public store info. A missing owner
// profile degrades to the support contact.
func (uc *ListingUseCase) GetProductDetail(ctx context.Context, id string) (*entity.ProductDetail, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &entity.ProductDetail{Product: product}
	phone := uc.supportPhone
	owner, err := uc.userRepo.GetByID(ctx, product.UserID)
	if err != nil {
		logger.Warn("owner %s of product %s unavailable: %v", product.UserID, id, err)
	} else {
		if owner.Vendor != nil {
			detail.VendorLogoURL = owner.Vendor.LogoURL
			detail.VendorVerified = owner.Vendor.Status == entity.VendorApproved && owner.Vendor.PaymentVerified
			if owner.Vendor.Phone != "" {
				phone = owner.Vendor.Phone
			}
		} else if owner.Phone != "" {
			phone = owner.Phone
		}
		detail.VendorPhone = phone
	}

	detail.WhatsAppLink = service.WhatsAppLink(phone, service.ProductContactMessage(product.Name, uc.ProductURL(product)))
	return detail, nil
}

// RecordProductView bumps the counter; failures are logged, never surfaced.
func (uc *ListingUseCase) RecordProductView(ctx context.Context, id string) {
	if err := uc.productRepo.IncrementViews(ctx, id); err != nil {
		logger.Warn("increment views on product %s failed: %v", id, err)
	}
}
