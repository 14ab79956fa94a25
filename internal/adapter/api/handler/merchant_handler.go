package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"deyelegliz/internal/domain/entity"
	"deyelegliz/internal/domain/service"
	"deyelegliz/internal/usecase"
	"deyelegliz/pkg/errors"
	"deyelegliz/pkg/response"
)

type MerchantHandler struct {
	merchantUseCase *usecase.MerchantUseCase
	offerUseCase    *usecase.OfferUseCase
}

func NewMerchantHandler(merchantUseCase *usecase.MerchantUseCase, offerUseCase *usecase.OfferUseCase) *MerchantHandler {
	return &MerchantHandler{
		merchantUseCase: merchantUseCase,
		offerUseCase:    offerUseCase,
	}
}

type setQuantityRequest struct {
	Quantity string `json:"quantity"`
}

type updateStoreRequest struct {
	BusinessName string         `json:"business_name"`
	Phone        string         `json:"phone"`
	Address      string         `json:"address"`
	Location     entity.Address `json:"location"`
}

// CreateProduct takes a multipart form with one to four "images" files.
func (h *MerchantHandler) CreateProduct(c echo.Context) error {
	form, err := parseForm(c)
	if err != nil {
		return response.Error(c, err)
	}
	images, err := formImages(form, "images")
	if err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	product, err := h.merchantUseCase.CreateProduct(c.Request().Context(), uid, usecase.CreateProductInput{
		Name:        formValue(form, "name"),
		Description: formValue(form, "description"),
		Price:       formValue(form, "price"),
		Category:    formValue(form, "category"),
		Quantity:    formValue(form, "quantity"),
		Images:      images,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, product)
}

func (h *MerchantHandler) ListProducts(c echo.Context) error {
	uid := c.Get("uid").(string)

	products, err := h.merchantUseCase.ListProducts(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, products)
}

func (h *MerchantHandler) ToggleAvailability(c echo.Context) error {
	uid := c.Get("uid").(string)

	product, err := h.merchantUseCase.ToggleAvailability(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, product)
}

func (h *MerchantHandler) SetQuantity(c echo.Context) error {
	var req setQuantityRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	product, err := h.merchantUseCase.SetQuantity(c.Request().Context(), uid, c.Param("id"), req.Quantity)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, product)
}

func (h *MerchantHandler) DeleteProduct(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.merchantUseCase.DeleteProduct(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *MerchantHandler) ListOffers(c echo.Context) error {
	uid := c.Get("uid").(string)

	offers, err := h.offerUseCase.ListForOwner(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, offers)
}

func (h *MerchantHandler) AcceptOffer(c echo.Context) error {
	return h.respond(c, true)
}

func (h *MerchantHandler) RejectOffer(c echo.Context) error {
	return h.respond(c, false)
}

func (h *MerchantHandler) respond(c echo.Context, accept bool) error {
	uid := c.Get("uid").(string)

	offer, err := h.offerUseCase.Respond(c.Request().Context(), uid, c.Param("id"), accept)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, offer)
}

func (h *MerchantHandler) GetStore(c echo.Context) error {
	uid := c.Get("uid").(string)

	store, err := h.merchantUseCase.GetStore(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, store)
}

func (h *MerchantHandler) UpdateStore(c echo.Context) error {
	var req updateStoreRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	store, err := h.merchantUseCase.UpdateStore(c.Request().Context(), uid, service.StoreInfo{
		BusinessName: req.BusinessName,
		Phone:        req.Phone,
		Address:      req.Address,
		Location:     req.Location,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, store)
}

func (h *MerchantHandler) UploadLogo(c echo.Context) error {
	form, err := parseForm(c)
	if err != nil {
		return response.Error(c, err)
	}
	headers := form.File["logo"]
	if len(headers) == 0 {
		return response.Error(c, errors.BadRequest("logo file is required", nil))
	}
	logo, err := readUpload(headers[0])
	if err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	url, err := h.merchantUseCase.UploadLogo(c.Request().Context(), uid, logo)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"logo_url": url})
}

func (h *MerchantHandler) Stats(c echo.Context) error {
	uid := c.Get("uid").(string)

	stats, err := h.merchantUseCase.Stats(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, stats)
}
