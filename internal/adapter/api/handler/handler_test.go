package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deyelegliz/internal/adapter/api"
	"deyelegliz/internal/domain/entity"
	"deyelegliz/internal/domain/repository"
	"deyelegliz/internal/domain/service"
	"deyelegliz/internal/infrastructure/session"
	"deyelegliz/internal/usecase"
)

type envelope struct {
	Success  bool            `json:"success"`
	Degraded bool            `json:"degraded"`
	Data     json.RawMessage `json:"data"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

type stubTester struct{ err error }

func (s stubTester) TestConnection(ctx context.Context) error { return s.err }

// stubProducts only implements List; other calls panic on the nil interface.
type stubProducts struct {
	repository.ProductRepository
	products []*entity.Product
	err      error
}

func (s *stubProducts) List(ctx context.Context, q repository.ProductQuery) ([]*entity.Product, error) {
	return s.products, s.err
}

func TestHealthCheck(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewHealthHandler(stubTester{}, func() int { return 3 })

	if assert.NoError(t, h.CheckHealth(c)) {
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"websocket_clients":3`)
	}
}

func TestFirebaseHealthUnavailable(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/firebase-health", nil), rec)

	h := NewHealthHandler(stubTester{err: fmt.Errorf("dial timeout")}, nil)

	require.NoError(t, h.CheckFirebaseHealth(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestNavigationOnboardingCookieRoundTrip(t *testing.T) {
	e := echo.New()
	h := NewNavigationHandler(usecase.NewNavigationUseCase(nil, nil), session.NewOnboardingStore("test-secret", false))

	decide := func(cookies []*http.Cookie) service.GateDecision {
		req := httptest.NewRequest(http.MethodGet, "/v1/navigation?route=/market", nil)
		for _, ck := range cookies {
			req.AddCookie(ck)
		}
		rec := httptest.NewRecorder()
		require.NoError(t, h.Decide(e.NewContext(req, rec)))
		require.Equal(t, http.StatusOK, rec.Code)

		var d service.GateDecision
		require.NoError(t, json.Unmarshal(decode(t, rec).Data, &d))
		return d
	}

	first := decide(nil)
	assert.Equal(t, service.GateRedirect, first.Action)
	assert.Equal(t, service.RouteOnboarding, first.RedirectTo)

	rec := httptest.NewRecorder()
	require.NoError(t, h.CompleteOnboarding(e.NewContext(httptest.NewRequest(http.MethodPost, "/v1/onboarding/complete", nil), rec)))
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	after := decide(cookies)
	assert.Equal(t, service.GateRedirect, after.Action)
	assert.Equal(t, service.RouteAuth, after.RedirectTo)
}

func TestListProductsDegradesOnReadFailure(t *testing.T) {
	e := echo.New()
	listing := usecase.NewListingUseCase(&stubProducts{err: fmt.Errorf("unavailable")}, nil, nil, "https://example.test", "50900000000")
	h := NewProductHandler(listing, nil)

	rec := httptest.NewRecorder()
	require.NoError(t, h.ListProducts(e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/products", nil), rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.True(t, env.Success)
	assert.True(t, env.Degraded)
	assert.Contains(t, string(env.Data), `"items":[]`)
}

func TestListProductsPaginates(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var products []*entity.Product
	for i := 0; i < 3; i++ {
		products = append(products, &entity.Product{
			ID:          fmt.Sprintf("p%d", i),
			Name:        "Telefòn",
			Category:    entity.CategoryPhones,
			IsAvailable: true,
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
		})
	}

	e := echo.New()
	listing := usecase.NewListingUseCase(&stubProducts{products: products}, nil, nil, "https://example.test", "50900000000")
	h := NewProductHandler(listing, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/products?page=2&limit=2", nil)
	require.NoError(t, h.ListProducts(e.NewContext(req, rec)))

	var page struct {
		Items []entity.Product `json:"items"`
		Total int64            `json:"total"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &page))
	assert.Equal(t, int64(3), page.Total)
	require.Len(t, page.Items, 1)
	// Newest first, so the oldest product lands on the last page.
	assert.Equal(t, "p0", page.Items[0].ID)
}

func TestListProductsHugePageIsEmpty(t *testing.T) {
	e := echo.New()
	listing := usecase.NewListingUseCase(&stubProducts{products: []*entity.Product{{ID: "p0", IsAvailable: true}}}, nil, nil, "https://example.test", "50900000000")
	h := NewProductHandler(listing, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/products?page=9223372036854775807&limit=20", nil)
	require.NoError(t, h.ListProducts(e.NewContext(req, rec)))

	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Items []entity.Product `json:"items"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &page))
	assert.Empty(t, page.Items)
}

func TestCreateOfferRejectsMissingPrice(t *testing.T) {
	e := echo.New()
	e.Validator = api.NewValidator()
	// No offer use case: the request must be refused before it is reached.
	h := NewProductHandler(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/products/phone-1/offers", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("uid", "buyer-1")

	require.NoError(t, h.CreateOffer(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"VALIDATION_ERROR"`)
	assert.Contains(t, rec.Body.String(), `"offer_price"`)
}

func multipartRequest(t *testing.T, field string, payloads ...[]byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("name", "Soulye"))
	for i, p := range payloads {
		part, err := w.CreateFormFile(field, fmt.Sprintf("f%d.png", i))
		require.NoError(t, err)
		_, err = part.Write(p)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func TestFormImagesCapsReadButKeepsDeclaredSize(t *testing.T) {
	big := bytes.Repeat([]byte{0x1}, service.MaxImageBytes+10)
	e := echo.New()
	c := e.NewContext(multipartRequest(t, "images", []byte("small"), big), httptest.NewRecorder())

	form, err := parseForm(c)
	require.NoError(t, err)
	assert.Equal(t, "Soulye", formValue(form, "name"))

	images, err := formImages(form, "images")
	require.NoError(t, err)
	require.Len(t, images, 2)

	assert.Equal(t, "f0.png", images[0].Filename)
	assert.Equal(t, []byte("small"), images[0].Data)
	assert.Len(t, images[1].Data, service.MaxImageBytes+1)
	assert.Equal(t, int64(service.MaxImageBytes+10), images[1].Size)
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://deyelegliz.com"})

	req := httptest.NewRequest(http.MethodGet, "/v1/ws", nil)
	assert.True(t, check(req))

	req.Header.Set("Origin", "https://deyelegliz.com")
	assert.True(t, check(req))

	req.Header.Set("Origin", "https://evil.example")
	assert.False(t, check(req))

	assert.True(t, originChecker([]string{"*"})(req))
}
