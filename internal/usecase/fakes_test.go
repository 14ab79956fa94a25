package usecase

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"deyelegliz/internal/domain/entity"
	"deyelegliz/internal/domain/repository"
	"deyelegliz/pkg/errors"
)

var (
	fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
)

func fixedClock() time.Time { return fixedNow }

func pngUpload(name string) ImageUpload {
	return ImageUpload{Filename: name, Size: int64(len(pngBytes)), Data: pngBytes}
}

type memUsers struct {
	mu       sync.Mutex
	profiles map[string]*entity.UserProfile
	getErr   error
}

func newMemUsers(profiles ...*entity.UserProfile) *memUsers {
	m := &memUsers{profiles: map[string]*entity.UserProfile{}}
	for _, p := range profiles {
		m.profiles[p.ID] = p
	}
	return m
}

func (m *memUsers) Create(ctx context.Context, user *entity.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[user.ID]; ok {
		return errors.Conflict("Profile already exists")
	}
	m.profiles[user.ID] = user
	return nil
}

func (m *memUsers) GetByID(ctx context.Context, id string) (*entity.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	p, ok := m.profiles[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return p, nil
}

func (m *memUsers) UpdateStore(ctx context.Context, id string, store repository.StoreUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[id]
	if !ok || p.Vendor == nil {
		return errors.NotFound("User", nil)
	}
	p.Vendor.BusinessName = store.BusinessName
	p.Vendor.Phone = store.Phone
	p.Vendor.Address = store.Address
	p.Vendor.Country = store.Country
	p.Vendor.Department = store.Department
	p.Vendor.City = store.City
	p.Vendor.State = store.State
	p.Vendor.ZipCode = store.ZipCode
	return nil
}

func (m *memUsers) SetLogoURL(ctx context.Context, id, logoURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[id].Vendor.LogoURL = logoURL
	return nil
}

func (m *memUsers) ListExpiredSubscriptions(ctx context.Context, now time.Time) ([]*entity.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.UserProfile
	for _, p := range m.profiles {
		if p.Vendor.Expired(now) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memUsers) DeactivateSubscription(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[id].Vendor.SubscriptionActive = false
	return nil
}

type memProducts struct {
	mu       sync.Mutex
	products map[string]*entity.Product
	seq      int
	writes   int
	viewErr  error
}

func newMemProducts(products ...*entity.Product) *memProducts {
	m := &memProducts{products: map[string]*entity.Product{}}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *memProducts) Create(ctx context.Context, product *entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.writes++
	product.ID = fmt.Sprintf("prod-%d", m.seq)
	m.products[product.ID] = product
	return nil
}

func (m *memProducts) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, errors.NotFound("Product", nil)
	}
	cp := *p
	return &cp, nil
}

func (m *memProducts) match(q repository.ProductQuery) []*entity.Product {
	var out []*entity.Product
	for _, p := range m.products {
		if q.OwnerID != "" && p.UserID != q.OwnerID {
			continue
		}
		if q.AvailableOnly && !p.IsAvailable {
			continue
		}
		if len(q.Categories) > 0 {
			found := false
			for _, c := range q.Categories {
				found = found || c == p.Category
			}
			if !found {
				continue
			}
		}
		cp := *p
		out = append(out, &cp)
	}
	return out
}

func (m *memProducts) List(ctx context.Context, q repository.ProductQuery) ([]*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.match(q), nil
}

// Watch delivers the current result set once and then waits for cancellation.
func (m *memProducts) Watch(ctx context.Context, q repository.ProductQuery, emit func([]*entity.Product)) error {
	m.mu.Lock()
	items := m.match(q)
	m.mu.Unlock()
	emit(items)
	<-ctx.Done()
	return nil
}

func (m *memProducts) SetAvailability(ctx context.Context, id string, available bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	m.products[id].IsAvailable = available
	return nil
}

func (m *memProducts) SetQuantity(ctx context.Context, id string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	m.products[id].Quantity = quantity
	return nil
}

func (m *memProducts) IncrementViews(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.viewErr != nil {
		return m.viewErr
	}
	m.products[id].Views++
	return nil
}

func (m *memProducts) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	delete(m.products, id)
	return nil
}

type memRequests struct {
	mu       sync.Mutex
	requests map[string]*entity.Request
	seq      int
	countErr error
}

func newMemRequests(requests ...*entity.Request) *memRequests {
	m := &memRequests{requests: map[string]*entity.Request{}}
	for _, r := range requests {
		m.requests[r.ID] = r
	}
	return m
}

func (m *memRequests) Create(ctx context.Context, request *entity.Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	request.ID = fmt.Sprintf("req-%d", m.seq)
	m.requests[request.ID] = request
	return nil
}

func (m *memRequests) GetByID(ctx context.Context, id string) (*entity.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[id]
	if !ok {
		return nil, errors.NotFound("Request", nil)
	}
	cp := *r
	return &cp, nil
}

func (m *memRequests) List(ctx context.Context, ownerID string) ([]*entity.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Request
	for _, r := range m.requests {
		if ownerID == "" || r.UserID == ownerID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memRequests) Watch(ctx context.Context, ownerID string, emit func([]*entity.Request)) error {
	items, _ := m.List(ctx, ownerID)
	emit(items)
	<-ctx.Done()
	return nil
}

func (m *memRequests) IncrementViews(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[id].Views++
	return nil
}

func (m *memRequests) IncrementProposalCount(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.countErr != nil {
		return m.countErr
	}
	m.requests[id].ProposalCount++
	return nil
}

func (m *memRequests) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.requests, id)
	return nil
}

type memProposals struct {
	mu        sync.Mutex
	proposals []*entity.Proposal
}

func (m *memProposals) Create(ctx context.Context, proposal *entity.Proposal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	proposal.ID = fmt.Sprintf("prop-%d", len(m.proposals)+1)
	m.proposals = append(m.proposals, proposal)
	return nil
}

func (m *memProposals) ListByRequest(ctx context.Context, requestID string) ([]*entity.Proposal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Proposal
	for _, p := range m.proposals {
		if p.RequestID == requestID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memProposals) WatchByRequest(ctx context.Context, requestID string, emit func([]*entity.Proposal)) error {
	items, _ := m.ListByRequest(ctx, requestID)
	emit(items)
	<-ctx.Done()
	return nil
}

type memOffers struct {
	mu       sync.Mutex
	offers   map[string]*entity.Offer
	seq      int
	responds int
}

func newMemOffers(offers ...*entity.Offer) *memOffers {
	m := &memOffers{offers: map[string]*entity.Offer{}}
	for _, o := range offers {
		m.offers[o.ID] = o
	}
	return m
}

func (m *memOffers) Create(ctx context.Context, offer *entity.Offer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	offer.ID = fmt.Sprintf("offer-%d", m.seq)
	m.offers[offer.ID] = offer
	return nil
}

func (m *memOffers) GetByID(ctx context.Context, id string) (*entity.Offer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.offers[id]
	if !ok {
		return nil, errors.NotFound("Offer", nil)
	}
	cp := *o
	return &cp, nil
}

func (m *memOffers) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Offer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Offer
	for _, o := range m.offers {
		if o.ProductOwnerID == ownerID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memOffers) WatchByOwner(ctx context.Context, ownerID string, emit func([]*entity.Offer)) error {
	items, _ := m.ListByOwner(ctx, ownerID)
	emit(items)
	<-ctx.Done()
	return nil
}

func (m *memOffers) Respond(ctx context.Context, id, ownerID string, status entity.OfferStatus) (*entity.Offer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responds++
	o, ok := m.offers[id]
	if !ok {
		return nil, errors.NotFound("Offer", nil)
	}
	if o.ProductOwnerID != ownerID {
		return nil, errors.Forbidden("Only the product owner can respond to this offer", nil)
	}
	if !o.IsPending() {
		return nil, errors.New(errors.CodeOfferNotPending, "Offer was already "+string(o.Status), http.StatusConflict, nil)
	}
	o.Status = status
	cp := *o
	return &cp, nil
}

type memVerifications struct {
	mu    sync.Mutex
	items map[string]*entity.PhoneVerification
}

func newMemVerifications() *memVerifications {
	return &memVerifications{items: map[string]*entity.PhoneVerification{}}
}

func (m *memVerifications) Create(ctx context.Context, v *entity.PhoneVerification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[v.ID] = v
	return nil
}

func (m *memVerifications) GetByID(ctx context.Context, id string) (*entity.PhoneVerification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[id]
	if !ok {
		return nil, errors.NotFound("Verification", nil)
	}
	cp := *v
	return &cp, nil
}

func (m *memVerifications) RecordAttempt(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[id].Attempts++
	return nil
}

func (m *memVerifications) MarkCompleted(ctx context.Context, id string, state entity.VerificationState, uid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[id].State = state
	m.items[id].UID = uid
	return nil
}

func (m *memVerifications) DeleteExpired(ctx context.Context, before time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, v := range m.items {
		if v.ExpiresAt.Before(before) {
			delete(m.items, id)
			n++
		}
	}
	return n, nil
}

type fakeBlobs struct {
	mu        sync.Mutex
	uploaded  []string
	deleted   []string
	uploadErr error
	deleteErr error
}

func (f *fakeBlobs) UploadFile(ctx context.Context, file io.Reader, contentType, objectName string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploaded = append(f.uploaded, objectName)
	return "https://storage.googleapis.com/test-bucket/" + objectName, nil
}

func (f *fakeBlobs) DeleteFile(ctx context.Context, fileURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, fileURL)
	return f.deleteErr
}

type fakeAuth struct {
	mu        sync.Mutex
	tokens    map[string]string
	verifyErr error
	revoked   []string
	names     map[string]string
}

func (f *fakeAuth) VerifyToken(ctx context.Context, token string) (string, error) {
	if f.verifyErr != nil {
		return "", f.verifyErr
	}
	uid, ok := f.tokens[token]
	if !ok {
		return "", fmt.Errorf("invalid token")
	}
	return uid, nil
}

func (f *fakeAuth) SetDisplayName(ctx context.Context, uid, displayName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.names == nil {
		f.names = map[string]string{}
	}
	f.names[uid] = displayName
	return nil
}

func (f *fakeAuth) RevokeSessions(ctx context.Context, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked = append(f.revoked, uid)
	return nil
}

func (f *fakeAuth) TestConnection(ctx context.Context) error { return nil }

type fakePhone struct {
	sent       []string
	sendErr    error
	session    *entity.AuthSession
	confirmErr error
}

func (f *fakePhone) SendCode(ctx context.Context, phoneNumber, recaptchaToken string) (string, error) {
	if f.sendErr != nil {
		return "", f.sendErr
	}
	f.sent = append(f.sent, phoneNumber)
	return "session-info", nil
}

func (f *fakePhone) ConfirmCode(ctx context.Context, sessionInfo, code string) (*entity.AuthSession, error) {
	if f.confirmErr != nil {
		return nil, f.confirmErr
	}
	return f.session, nil
}

type fakeChallenge struct {
	err   error
	calls int
}

func (f *fakeChallenge) Verify(ctx context.Context, token, action, userIP, userAgent string) error {
	f.calls++
	return f.err
}

func vendorProfile(uid string) *entity.UserProfile {
	addr := entity.Address{Country: entity.CountryHaiti, Department: "Lwès", City: "Pòtoprens"}
	return &entity.UserProfile{
		ID:       uid,
		Name:     "Jean Baptiste",
		Phone:    "+50934123456",
		Country:  entity.CountryHaiti,
		City:     "Pòtoprens",
		IsVendor: true,
		Vendor:   entity.NewVendorApplication("Boutik Jean", "12 Ri Kapwa, Pòtoprens", "+50934123456", addr, fixedNow, 30*24*time.Hour),
	}
}

func buyerProfile(uid string) *entity.UserProfile {
	return &entity.UserProfile{ID: uid, Name: "Marie Claire", Phone: "+50937000000", Country: entity.CountryHaiti, City: "Okap"}
}
