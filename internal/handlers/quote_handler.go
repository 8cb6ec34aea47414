package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"probuild/internal/models"
	"probuild/internal/services"
)

type QuoteHandler struct {
	Service *services.QuoteService
}

func NewQuoteHandler(service *services.QuoteService) *QuoteHandler {
	return &QuoteHandler{Service: service}
}

type createQuoteRequest struct {
	LeadID   *int64  `json:"leadId"`
	ClientID *int64  `json:"clientId"`
	Total    float64 `json:"total"`
}

type updateQuoteRequest struct {
	Status *models.QuoteStatus `json:"status"`
	Total  *float64            `json:"total"`
}

func (h *QuoteHandler) List(c *gin.Context) {
	quotes, err := h.Service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quotes)
}

func (h *QuoteHandler) Create(c *gin.Context) {
	var req createQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	q := &models.Quote{LeadID: req.LeadID, ClientID: req.ClientID, Total: req.Total}
	if err := h.Service.Create(c.Request.Context(), q); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, q)
}

func (h *QuoteHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	q, err := h.Service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

func (h *QuoteHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req updateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	q, err := h.Service.Update(c.Request.Context(), id, services.QuotePatch(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}
