package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"deyelegliz/internal/usecase"
	"deyelegliz/pkg/logger"
	"deyelegliz/pkg/response"
	"deyelegliz/pkg/utils"
)

type RequestHandler struct {
	listingUseCase *usecase.ListingUseCase
	requestUseCase *usecase.RequestUseCase
}

func NewRequestHandler(listingUseCase *usecase.ListingUseCase, requestUseCase *usecase.RequestUseCase) *RequestHandler {
	return &RequestHandler{
		listingUseCase: listingUseCase,
		requestUseCase: requestUseCase,
	}
}

type proposeRequest struct {
	ProposedPrice string `json:"proposed_price"`
}

func (h *RequestHandler) ListRequests(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	requests, err := h.listingUseCase.ListRequests(c.Request().Context())
	if err != nil {
		logger.Warn("request listing degraded: %v", err)
		return response.Degraded(c, pagination.Page, pagination.PageSize)
	}

	start, end := pagination.Window(len(requests))
	return response.Paginated(c, requests[start:end], int64(len(requests)), pagination.Page, pagination.PageSize)
}

// CreateRequest takes a multipart form with an optional "image" file.
func (h *RequestHandler) CreateRequest(c echo.Context) error {
	form, err := parseForm(c)
	if err != nil {
		return response.Error(c, err)
	}

	input := usecase.CreateRequestInput{
		Title:             formValue(form, "title"),
		Description:       formValue(form, "description"),
		RequesterWhatsapp: formValue(form, "requester_whatsapp"),
	}
	if headers := form.File["image"]; len(headers) > 0 {
		img, err := readUpload(headers[0])
		if err != nil {
			return response.Error(c, err)
		}
		input.Image = &img
	}

	uid := c.Get("uid").(string)

	request, err := h.requestUseCase.Create(c.Request().Context(), uid, input)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, request)
}

// Contact counts the view and hands back the requester's WhatsApp link.
func (h *RequestHandler) Contact(c echo.Context) error {
	link, err := h.requestUseCase.Contact(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"whatsapp_link": link})
}

func (h *RequestHandler) Propose(c echo.Context) error {
	var req proposeRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	vendorID := c.Get("uid").(string)

	proposal, err := h.requestUseCase.Propose(c.Request().Context(), vendorID, c.Param("id"), req.ProposedPrice)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, proposal)
}

func (h *RequestHandler) ListMine(c echo.Context) error {
	uid := c.Get("uid").(string)

	requests, err := h.requestUseCase.ListMine(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, requests)
}

func (h *RequestHandler) DeleteMine(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.requestUseCase.Delete(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *RequestHandler) ListProposals(c echo.Context) error {
	uid := c.Get("uid").(string)

	proposals, err := h.requestUseCase.Proposals(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, proposals)
}
