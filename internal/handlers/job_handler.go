package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"probuild/internal/repositories"
	"probuild/internal/services"
)

type JobHandler struct {
	Service *services.JobService
}

func NewJobHandler(service *services.JobService) *JobHandler {
	return &JobHandler{Service: service}
}

type jobPatchRequest struct {
	SiteAddress   *string  `json:"siteAddress"`
	TotalAmount   *float64 `json:"totalAmount"`
	DepositAmount *float64 `json:"depositAmount"`
	DepositPaid   *bool    `json:"depositPaid"`
	AmountPaid    *float64 `json:"amountPaid"`
}

func (h *JobHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	clientID, _ := strconv.ParseInt(c.Query("clientId"), 10, 64)
	jobs, err := h.Service.List(c.Request.Context(), repositories.JobFilter{
		Status:   c.Query("status"),
		ClientID: clientID,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	job, err := h.Service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req jobPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	job, err := h.Service.Update(c.Request.Context(), id, services.JobPatch(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// ChangeStatus godoc
// @Summary      Move a job to another status
// @Description  Mandatory prerequisites the job never reached block the move with 409; skipped advisory ones come back as warnings.
// @Tags         Jobs
// @Accept       json
// @Produce      json
// @Param        id    path      int     true  "Job ID"
// @Param        body  body      object  true  "{\"status\": \"qa_check\"}"
// @Success      200   {object}  services.StatusChangeResult
// @Failure      409   {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /api/jobs/{id}/status [post]
func (h *JobHandler) ChangeStatus(c *gin.Context) {
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
	res, err := h.Service.ChangeStatus(c.Request.Context(), id, req.Status, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *JobHandler) History(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	history, err := h.Service.History(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}
