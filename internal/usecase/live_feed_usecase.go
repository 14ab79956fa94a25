package usecase

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"deyelegliz/internal/domain/entity"
	"deyelegliz/internal/domain/repository"
	"deyelegliz/internal/domain/service"
	ws "deyelegliz/internal/infrastructure/websocket"
	"deyelegliz/pkg/errors"
)

const (
	ChannelProducts   = "products"
	ChannelFood       = "food"
	ChannelRequests   = "requests"
	ChannelMyProducts = "my_products"
	ChannelMyRequests = "my_requests"
	ChannelOffers     = "offers"
	ChannelProposals  = "proposals"
	ChannelStats      = "stats"
)

// LiveFeedUseCase runs the snapshot listener behind each live channel and
// applies the same filtering and ordering as the one-shot reads.
type LiveFeedUseCase struct {
	productRepo  repository.ProductRepository
	requestRepo  repository.RequestRepository
	proposalRepo repository.ProposalRepository
	offerRepo    repository.OfferRepository
}

func NewLiveFeedUseCase(
	productRepo repository.ProductRepository,
	requestRepo repository.RequestRepository,
	proposalRepo repository.ProposalRepository,
	offerRepo repository.OfferRepository,
) *LiveFeedUseCase {
	return &LiveFeedUseCase{
		productRepo:  productRepo,
		requestRepo:  requestRepo,
		proposalRepo: proposalRepo,
		offerRepo:    offerRepo,
	}
}

func requiresUser(channel string) bool {
	switch channel {
	case ChannelMyProducts, ChannelMyRequests, ChannelOffers, ChannelProposals, ChannelStats:
		return true
	}
	return false
}

func (uc *LiveFeedUseCase) Stream(ctx context.Context, uid string, sub ws.Subscription, emit func(interface{})) error {
	if requiresUser(sub.Channel) && uid == "" {
		return errors.Unauthorized("Sign in to follow "+sub.Channel, nil)
	}

	switch sub.Channel {
	case ChannelProducts:
		filter := service.ListingFilter{
			Categories: service.ParseCategories(sub.Params["category"]),
			Search:     sub.Params["q"],
		}
		return uc.productRepo.Watch(ctx, MarketQuery(filter), func(products []*entity.Product) {
			emit(service.FilterProducts(products, filter))
		})

	case ChannelFood:
		search := sub.Params["q"]
		return uc.productRepo.Watch(ctx, FoodQuery(), func(products []*entity.Product) {
			emit(service.FilterFood(products, search))
		})

	case ChannelRequests, ChannelMyRequests:
		owner := ""
		if sub.Channel == ChannelMyRequests {
			owner = uid
		}
		return uc.requestRepo.Watch(ctx, owner, func(requests []*entity.Request) {
			service.SortRequestsNewest(requests)
			emit(requests)
		})

	case ChannelMyProducts:
		return uc.productRepo.Watch(ctx, repository.ProductQuery{OwnerID: uid}, func(products []*entity.Product) {
			service.SortProductsNewest(products)
			emit(products)
		})

	case ChannelOffers:
		return uc.offerRepo.WatchByOwner(ctx, uid, func(offers []*entity.Offer) {
			emit(OfferViews(offers))
		})

	case ChannelProposals:
		requestID := sub.Params["request_id"]
		if requestID == "" {
			return errors.BadRequest("request_id is required", nil)
		}
		request, err := uc.requestRepo.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if request.UserID != uid {
			return errors.Forbidden("Only the requester can follow proposals", nil)
		}
		return uc.proposalRepo.WatchByRequest(ctx, requestID, func(proposals []*entity.Proposal) {
			emit(ProposalViews(proposals))
		})

	case ChannelStats:
		return uc.streamStats(ctx, uid, emit)
	}

	return errors.BadRequest("unknown channel "+sub.Channel, nil)
}

// streamStats joins two listeners and recomputes on every change once both
// have delivered their first result set.
func (uc *LiveFeedUseCase) streamStats(ctx context.Context, uid string, emit func(interface{})) error {
	var (
		mu       sync.Mutex
		products []*entity.Product
		offers   []*entity.Offer
		haveP    bool
		haveO    bool
	)
	publish := func() {
		if haveP && haveO {
			emit(service.ComputeStats(products, offers))
		}
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return uc.productRepo.Watch(egCtx, repository.ProductQuery{OwnerID: uid}, func(ps []*entity.Product) {
			mu.Lock()
			defer mu.Unlock()
			products, haveP = ps, true
			publish()
		})
	})
	eg.Go(func() error {
		return uc.offerRepo.WatchByOwner(egCtx, uid, func(os []*entity.Offer) {
			mu.Lock()
			defer mu.Unlock()
			offers, haveO = os, true
			publish()
		})
	})
	return eg.Wait()
}
