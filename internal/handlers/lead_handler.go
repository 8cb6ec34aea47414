package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"probuild/internal/models"
	"probuild/internal/services"
)

type LeadHandler struct {
	Service *services.LeadService
}

func NewLeadHandler(service *services.LeadService) *LeadHandler {
	return &LeadHandler{Service: service}
}

type leadRequest struct {
	Stage              *models.LeadStage `json:"stage"`
	ClientID           *int64            `json:"clientId"`
	SiteAddress        *string           `json:"siteAddress"`
	FenceStyle         *string           `json:"fenceStyle"`
	FenceLength        *float64          `json:"fenceLength"`
	Source             *string           `json:"source"`
	LeadType           *string           `json:"leadType"`
	JobFulfillmentType *string           `json:"jobFulfillmentType"`
	Notes              *string           `json:"notes"`
	AssignedTo         *int64            `json:"assignedTo"`
}

func (r *leadRequest) apply(l *models.Lead) {
	if r.Stage != nil {
		l.Stage = *r.Stage
	}
	if r.ClientID != nil {
		l.ClientID = r.ClientID
	}
	if r.SiteAddress != nil {
		l.SiteAddress = *r.SiteAddress
	}
	if r.FenceStyle != nil {
		l.FenceStyle = *r.FenceStyle
	}
	if r.FenceLength != nil {
		l.FenceLength = *r.FenceLength
	}
	if r.Source != nil {
		l.Source = *r.Source
	}
	if r.LeadType != nil {
		l.LeadType = *r.LeadType
	}
	if r.JobFulfillmentType != nil {
		l.JobFulfillmentType = *r.JobFulfillmentType
	}
	if r.Notes != nil {
		l.Notes = *r.Notes
	}
	if r.AssignedTo != nil {
		l.AssignedTo = r.AssignedTo
	}
}

func (h *LeadHandler) Create(c *gin.Context) {
	var req leadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	lead := &models.Lead{AssignedTo: currentUser(c)}
	req.apply(lead)
	if err := h.Service.Create(c.Request.Context(), lead); err != nil {
		respondError(c, err)
		return
	}
	view, err := h.Service.GetByID(c.Request.Context(), lead.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *LeadHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req leadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	current, err := h.Service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	lead := *current.Lead
	req.apply(&lead)
	if err := h.Service.Update(c.Request.Context(), &lead); err != nil {
		respondError(c, err)
		return
	}
	updated, err := h.Service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *LeadHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	lead, err := h.Service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

func (h *LeadHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// List accepts ?status=<bucket>&page=&size=.
func (h *LeadHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	leads, err := h.Service.List(c.Request.Context(), c.Query("status"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, leads)
}

func (h *LeadHandler) Board(c *gin.Context) {
	board, err := h.Service.Board(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

func (h *LeadHandler) SetStage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Stage string `json:"stage" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	lead, err := h.Service.SetStage(c.Request.Context(), id, req.Stage)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

// Move godoc
// @Summary      Move a lead on the board
// @Description  Dropping into the lead's own bucket keeps its stage; otherwise the bucket's canonical stage is stored.
// @Tags         Leads
// @Accept       json
// @Produce      json
// @Param        id    path      int     true  "Lead ID"
// @Param        body  body      object  true  "{\"status\": \"quoted\"}"
// @Success      200   {object}  models.LeadView
// @Security     BearerAuth
// @Router       /api/leads/{id}/move [post]
func (h *LeadHandler) Move(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	lead, err := h.Service.Move(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

func (h *LeadHandler) Convert(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	job, err := h.Service.Convert(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}
