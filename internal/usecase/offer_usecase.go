package usecase

import (
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

const fallbackBuyerName = "Achtè Deye Legliz"

type OfferUseCase struct {
	offerRepo   repository.OfferRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	now         Clock
}

func NewOfferUseCase(
	offerRepo repository.OfferRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
) *OfferUseCase {
	return &OfferUseCase{
		offerRepo:   offerRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		now:         time.Now,
	}
}

// Create records a pending offer with a snapshot of the product's current price.
func (uc *OfferUseCase) Create(ctx context.Context, buyerID, productID, offerPrice string) (*entity.Offer, error) {
	offerPrice = strings.TrimSpace(offerPrice)
	if !service.ValidOfferPrice(offerPrice) {
		return nil, errors.Validation(map[string]string{"offer_price": "offer_price must start with a number"})
	}

	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.UserID == buyerID {
		return nil, errors.New(errors.CodeSelfOffer, "You cannot make an offer on your own product", http.StatusForbidden, nil)
	}

	buyer, err := uc.userRepo.GetByID(ctx, buyerID)
	if err != nil {
		logger.Warn("buyer %s profile unavailable for offer: %v", buyerID, err)
		buyer = nil
	}

	offer := &entity.Offer{
		ProductID:      product.ID,
		ProductName:    product.Name,
		ProductOwnerID: product.UserID,
		BuyerID:        buyerID,
		BuyerName:      buyer.DisplayName(fallbackBuyerName),
		OriginalPrice:  product.Price,
		OfferPrice:     offerPrice,
		Status:         entity.OfferPending,
		CreatedAt:      uc.now(),
	}
	if err := uc.offerRepo.Create(ctx, offer); err != nil {
		return nil, err
	}

	logger.Info("offer %s on product %s by %s", offer.ID, product.ID, buyerID)
	return offer, nil
}

func OfferViews(offers []*entity.Offer) []entity.OfferView {
	service.SortOffersNewest(offers)
	views := make([]entity.OfferView, len(offers))
	for i, o := range offers {
		views[i] = entity.NewOfferView(o)
	}
	return views
}

func (uc *OfferUseCase) ListForOwner(ctx context.Context, ownerID string) ([]entity.OfferView, error) {
	offers, err := uc.offerRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return OfferViews(offers), nil
}

// Respond accepts or rejects a pending offer. A decided offer stays decided.
func (uc *OfferUseCase) Respond(ctx context.Context, ownerID, offerID string, accept bool) (*entity.OfferView, error) {
	status := entity.OfferRejected
	if accept {
		status = entity.OfferAccepted
	}

	// The transactional Respond re-checks owner and status.
	current, err := uc.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if current.ProductOwnerID != ownerID {
		return nil, errors.Forbidden("Only the product owner can respond to this offer", nil)
	}
	if !current.IsPending() {
		return nil, errors.New(errors.CodeOfferNotPending, "Offer was already "+string(current.Status), http.StatusConflict, nil)
	}

	offer, err := uc.offerRepo.Respond(ctx, offerID, ownerID, status)
	if err != nil {
		return nil, err
	}

	logger.Info("offer %s %s by %s", offerID, status, ownerID)
	view := entity.NewOfferView(offer)
	return &view, nil
}
