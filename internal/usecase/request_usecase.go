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
	"deyelegliz/pkg/utils"
)

const (
	fallbackRequesterName = "Itilizatè Deye Legliz"
	unspecifiedLocation   = "Pa presize"
)

type RequestUseCase struct {
	requestRepo  repository.RequestRepository
	proposalRepo repository.ProposalRepository
	userRepo     repository.UserRepository
	blobs        service.FileUploadService
	now          Clock
}

func NewRequestUseCase(
	requestRepo repository.RequestRepository,
	proposalRepo repository.ProposalRepository,
	userRepo repository.UserRepository,
	blobs service.FileUploadService,
) *RequestUseCase {
	return &RequestUseCase{
		requestRepo:  requestRepo,
		proposalRepo: proposalRepo,
		userRepo:     userRepo,
		blobs:        blobs,
		now:          time.Now,
	}
}

type CreateRequestInput struct {
	Title             string
	Description       string
	RequesterWhatsapp string
	Image             *ImageUpload
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func (uc *RequestUseCase) Create(ctx context.Context, uid string, input CreateRequestInput) (*entity.Request, error) {
	draft := service.RequestDraft{
		Title:             input.Title,
		Description:       input.Description,
		RequesterWhatsapp: input.RequesterWhatsapp,
	}
	if input.Image != nil {
		meta := input.Image.Meta()
		draft.Image = &meta
	}
	if errs := service.ValidateRequestDraft(draft); !errs.Empty() {
		return nil, errors.Validation(errs)
	}

	profile, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, errors.CodeNotFound) {
			return nil, errors.ProfileMissing()
		}
		return nil, err
	}

	now := uc.now()
	var imageURL string
	if input.Image != nil {
		imageURL, err = uc.blobs.UploadFile(ctx, bytes.NewReader(input.Image.Data), draft.Image.ContentType,
			objectName("requests", uid, now, input.Image.Filename))
		if err != nil {
			return nil, errors.Internal("Failed to upload request image", err)
		}
	}

	request := &entity.Request{
		Title:             strings.TrimSpace(input.Title),
		Description:       strings.TrimSpace(input.Description),
		ImageURL:          imageURL,
		RequesterWhatsapp: utils.Digits(input.RequesterWhatsapp),
		UserID:            uid,
		UserName:          profile.DisplayName(fallbackRequesterName),
		City:              orDefault(profile.City, unspecifiedLocation),
		Country:           orDefault(profile.Country, unspecifiedLocation),
		CreatedAt:         now,
	}
	if err := uc.requestRepo.Create(ctx, request); err != nil {
		if imageURL != "" {
			logger.Warn("orphaned request image %s: %v", imageURL, err)
		}
		return nil, err
	}
	return request, nil
}

// Contact counts a view and returns the requester's WhatsApp link.
func (uc *RequestUseCase) Contact(ctx context.Context, requestID string) (string, error) {
	request, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return "", err
	}
	if err := uc.requestRepo.IncrementViews(ctx, requestID); err != nil {
		logger.Warn("increment views on request %s failed: %v", requestID, err)
	}
	return service.WhatsAppLink(request.RequesterWhatsapp, service.RequestContactMessage(request.Title)), nil
}

// Propose records a vendor's price for a request. The proposal counter is
// bumped afterwards without a transaction and may drift on failure.
func (uc *RequestUseCase) Propose(ctx context.Context, vendorID, requestID, price string) (*entity.Proposal, error) {
	price = strings.TrimSpace(price)
	if price == "" {
		return nil, errors.Validation(map[string]string{"proposed_price": "proposed_price is required"})
	}

	request, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.UserID == vendorID {
		return nil, errors.New(errors.CodeSelfProposal, "You cannot respond to your own request", http.StatusForbidden, nil)
	}

	vendor, err := uc.userRepo.GetByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, errors.CodeNotFound) {
			return nil, errors.ProfileMissing()
		}
		return nil, err
	}

	name, phone := vendor.DisplayName(fallbackRequesterName), vendor.Phone
	if vendor.Vendor != nil {
		name = orDefault(vendor.Vendor.BusinessName, name)
		phone = orDefault(vendor.Vendor.Phone, phone)
	}

	proposal := &entity.Proposal{
		RequestID:     request.ID,
		RequesterID:   request.UserID,
		VendorID:      vendorID,
		VendorName:    name,
		VendorPhone:   phone,
		ProposedPrice: price,
		CreatedAt:     uc.now(),
	}
	if err := uc.proposalRepo.Create(ctx, proposal); err != nil {
		return nil, err
	}

	if err := uc.requestRepo.IncrementProposalCount(ctx, request.ID); err != nil {
		logger.Warn("proposal %s saved but proposalCount on %s not incremented: %v", proposal.ID, request.ID, err)
	}
	return proposal, nil
}

func (uc *RequestUseCase) ListMine(ctx context.Context, uid string) ([]*entity.Request, error) {
	requests, err := uc.requestRepo.List(ctx, uid)
	if err != nil {
		return nil, err
	}
	service.SortRequestsNewest(requests)
	return requests, nil
}

func (uc *RequestUseCase) owned(ctx context.Context, uid, requestID string) (*entity.Request, error) {
	request, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.UserID != uid {
		return nil, errors.Forbidden("Only the requester can do this", nil)
	}
	return request, nil
}

// Delete removes the image best-effort, then the document.
func (uc *RequestUseCase) Delete(ctx context.Context, uid, requestID string) error {
	request, err := uc.owned(ctx, uid, requestID)
	if err != nil {
		return err
	}
	deleteAll(ctx, uc.blobs, []string{request.ImageURL})
	return uc.requestRepo.Delete(ctx, requestID)
}

func ProposalViews(proposals []*entity.Proposal) []entity.ProposalView {
	service.SortProposalsNewest(proposals)
	views := make([]entity.ProposalView, len(proposals))
	for i, p := range proposals {
		views[i] = entity.ProposalView{
			Proposal:     p,
			CallLink:     service.CallLink(p.VendorPhone),
			WhatsAppLink: service.WhatsAppLink(p.VendorPhone, service.ProposalContactMessage),
		}
	}
	return views
}

func (uc *RequestUseCase) Proposals(ctx context.Context, uid, requestID string) ([]entity.ProposalView, error) {
	if _, err := uc.owned(ctx, uid, requestID); err != nil {
		return nil, err
	}
	proposals, err := uc.proposalRepo.ListByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return ProposalViews(proposals), nil
}
