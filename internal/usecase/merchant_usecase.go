package usecase

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"time"

	"deyelegliz/internal/domain/entity"
	"deyelegliz/internal/domain/repository"
	"deyelegliz/internal/domain/service"
	"deyelegliz/pkg/errors"
	"deyelegliz/pkg/logger"
)

type MerchantUseCase struct {
	productRepo repository.ProductRepository
	offerRepo   repository.OfferRepository
	userRepo    repository.UserRepository
	blobs       service.FileUploadService
	now         Clock
}

func NewMerchantUseCase(
	productRepo repository.ProductRepository,
	offerRepo repository.OfferRepository,
	userRepo repository.UserRepository,
	blobs service.FileUploadService,
) *MerchantUseCase {
	return &MerchantUseCase{
		productRepo: productRepo,
		offerRepo:   offerRepo,
		userRepo:    userRepo,
		blobs:       blobs,
		now:         time.Now,
	}
}

type CreateProductInput struct {
	Name        string
	Description string
	Price       string
	Category    string
	Quantity    string
	Images      []ImageUpload
}

func (uc *MerchantUseCase) vendor(ctx context.Context, uid string) (*entity.UserProfile, error) {
	profile, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, errors.CodeNotFound) {
			return nil, errors.ProfileMissing()
		}
		return nil, err
	}
	if !profile.IsVendor || profile.Vendor == nil {
		return nil, errors.Forbidden("A vendor account is required", nil)
	}
	return profile, nil
}

// CreateProduct validates everything before any upload, then stores the
// images concurrently and writes the document. A failed write leaves the
// uploaded images behind.
func (uc *MerchantUseCase) CreateProduct(ctx context.Context, uid string, input CreateProductInput) (*entity.Product, error) {
	quantity, errs := service.ValidateProductDraft(service.ProductDraft{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		Quantity:    input.Quantity,
		Images:      imageMetas(input.Images),
	})
	if !errs.Empty() {
		return nil, errors.Validation(errs)
	}

	profile, err := uc.vendor(ctx, uid)
	if err != nil {
		return nil, err
	}
	city := orDefault(profile.Vendor.City, profile.City)
	country := orDefault(profile.Vendor.Country, profile.Country)
	if strings.TrimSpace(city) == "" || strings.TrimSpace(country) == "" {
		return nil, errors.New(errors.CodeVendorLocationNotSet, "Set your store city and country before publishing", http.StatusBadRequest, nil)
	}

	now := uc.now()
	urls, err := uploadAll(ctx, uc.blobs, "products", uid, now, input.Images)
	if err != nil {
		return nil, errors.Internal("Failed to upload product images", err)
	}

	product := &entity.Product{
		UserID:        uid,
		VendorName:    orDefault(profile.Vendor.BusinessName, profile.Name),
		VendorCountry: country,
		VendorCity:    city,
		Name:          strings.TrimSpace(input.Name),
		Description:   strings.TrimSpace(input.Description),
		Price:         strings.TrimSpace(input.Price),
		Category:      input.Category,
		Quantity:      quantity,
		ImageURLs:     urls,
		IsAvailable:   true,
		CreatedAt:     now,
	}
	if err := uc.productRepo.Create(ctx, product); err != nil {
		logger.Error("product write for %s failed, %d images orphaned: %v", uid, len(urls), err)
		return nil, err
	}

	logger.Info("product %s published by %s", product.ID, uid)
	return product, nil
}

func (uc *MerchantUseCase) ListProducts(ctx context.Context, uid string) ([]*entity.Product, error) {
	products, err := uc.productRepo.List(ctx, repository.ProductQuery{OwnerID: uid})
	if err != nil {
		return nil, err
	}
	service.SortProductsNewest(products)
	return products, nil
}

func (uc *MerchantUseCase) owned(ctx context.Context, uid, productID string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.UserID != uid {
		return nil, errors.Forbidden("You do not own this product", nil)
	}
	return product, nil
}

// ToggleAvailability flips the listing flag; quantity is left alone.
func (uc *MerchantUseCase) ToggleAvailability(ctx context.Context, uid, productID string) (*entity.Product, error) {
	product, err := uc.owned(ctx, uid, productID)
	if err != nil {
		return nil, err
	}
	if err := uc.productRepo.SetAvailability(ctx, productID, !product.IsAvailable); err != nil {
		return nil, err
	}
	product.IsAvailable = !product.IsAvailable
	return product, nil
}

func (uc *MerchantUseCase) SetQuantity(ctx context.Context, uid, productID, raw string) (*entity.Product, error) {
	quantity, ok := service.ParseQuantity(raw)
	if !ok {
		return nil, errors.Validation(map[string]string{"quantity": "quantity must be a non-negative integer"})
	}
	product, err := uc.owned(ctx, uid, productID)
	if err != nil {
		return nil, err
	}
	if err := uc.productRepo.SetQuantity(ctx, productID, quantity); err != nil {
		return nil, err
	}
	product.Quantity = quantity
	return product, nil
}

// DeleteProduct always removes the document once ownership is confirmed,
// even when some images cannot be deleted.
func (uc *MerchantUseCase) DeleteProduct(ctx context.Context, uid, productID string) error {
	product, err := uc.owned(ctx, uid, productID)
	if err != nil {
		return err
	}
	deleteAll(ctx, uc.blobs, product.ImageURLs)
	if err := uc.productRepo.Delete(ctx, productID); err != nil {
		return err
	}
	logger.Info("product %s deleted by %s", productID, uid)
	return nil
}

type StoreView struct {
	*entity.VendorApplication
	Subscription entity.SubscriptionStatus `json:"subscription"`
}

func (uc *MerchantUseCase) GetStore(ctx context.Context, uid string) (*StoreView, error) {
	profile, err := uc.vendor(ctx, uid)
	if err != nil {
		return nil, err
	}
	return &StoreView{
		VendorApplication: profile.Vendor,
		Subscription:      profile.Vendor.Subscription(uc.now()),
	}, nil
}

func (uc *MerchantUseCase) UpdateStore(ctx context.Context, uid string, info service.StoreInfo) (*StoreView, error) {
	if errs := service.ValidateStoreInfo(info); !errs.Empty() {
		return nil, errors.Validation(errs)
	}
	if _, err := uc.vendor(ctx, uid); err != nil {
		return nil, err
	}

	loc := info.Location
	err := uc.userRepo.UpdateStore(ctx, uid, repository.StoreUpdate{
		BusinessName: strings.TrimSpace(info.BusinessName),
		Phone:        strings.TrimSpace(info.Phone),
		Address:      strings.TrimSpace(info.Address),
		Country:      loc.Country,
		Department:   loc.Department,
		City:         loc.ResolvedCity(),
		State:        loc.State,
		ZipCode:      loc.ZipCode,
	})
	if err != nil {
		return nil, err
	}
	return uc.GetStore(ctx, uid)
}

func (uc *MerchantUseCase) UploadLogo(ctx context.Context, uid string, logo ImageUpload) (string, error) {
	meta := logo.Meta()
	if errs := service.ValidateImages([]service.ImageMeta{meta}, 1, 1); !errs.Empty() {
		return "", errors.Validation(errs)
	}
	if _, err := uc.vendor(ctx, uid); err != nil {
		return "", err
	}

	url, err := uc.blobs.UploadFile(ctx, bytes.NewReader(logo.Data), meta.ContentType, "logos/"+uid+"/logo.png")
	if err != nil {
		return "", errors.Internal("Failed to upload logo", err)
	}
	if err := uc.userRepo.SetLogoURL(ctx, uid, url); err != nil {
		return "", err
	}
	return url, nil
}

func (uc *MerchantUseCase) Stats(ctx context.Context, uid string) (entity.MerchantStats, error) {
	products, err := uc.productRepo.List(ctx, repository.ProductQuery{OwnerID: uid})
	if err != nil {
		return entity.MerchantStats{}, err
	}
	offers, err := uc.offerRepo.ListByOwner(ctx, uid)
	if err != nil {
		return entity.MerchantStats{}, err
	}
	return service.ComputeStats(products, offers), nil
}
