package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"deyelegliz/internal/domain/service"
	"deyelegliz/internal/usecase"
	"deyelegliz/pkg/logger"
	"deyelegliz/pkg/response"
	"deyelegliz/pkg/utils"
)

type ProductHandler struct {
	listingUseCase *usecase.ListingUseCase
	offerUseCase   *usecase.OfferUseCase
}

func NewProductHandler(listingUseCase *usecase.ListingUseCase, offerUseCase *usecase.OfferUseCase) *ProductHandler {
	return &ProductHandler{
		listingUseCase: listingUseCase,
		offerUseCase:   offerUseCase,
	}
}

type createOfferRequest struct {
	OfferPrice string `json:"offer_price" validate:"required"`
}

// ListProducts serves the market listing. A failed store read still answers
// 200 with an empty, degraded page.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)
	filter := service.ListingFilter{
		Categories: service.ParseCategories(c.QueryParam("category")),
		Search:     c.QueryParam("q"),
	}

	products, err := h.listingUseCase.ListProducts(c.Request().Context(), filter)
	if err != nil {
		logger.Warn("market listing degraded: %v", err)
		return response.Degraded(c, pagination.Page, pagination.PageSize)
	}

	start, end := pagination.Window(len(products))
	return response.Paginated(c, products[start:end], int64(len(products)), pagination.Page, pagination.PageSize)
}

func (h *ProductHandler) ListFood(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	products, err := h.listingUseCase.ListFood(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		logger.Warn("food listing degraded: %v", err)
		return response.Degraded(c, pagination.Page, pagination.PageSize)
	}

	start, end := pagination.Window(len(products))
	return response.Paginated(c, products[start:end], int64(len(products)), pagination.Page, pagination.PageSize)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id := c.Param("id")

	detail, err := h.listingUseCase.GetProductDetail(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, detail)
}

func (h *ProductHandler) RecordView(c echo.Context) error {
	h.listingUseCase.RecordProductView(c.Request().Context(), c.Param("id"))
	return c.NoContent(http.StatusAccepted)
}

func (h *ProductHandler) CreateOffer(c echo.Context) error {
	var req createOfferRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	buyerID := c.Get("uid").(string)

	offer, err := h.offerUseCase.Create(c.Request().Context(), buyerID, c.Param("id"), req.OfferPrice)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, offer)
}
