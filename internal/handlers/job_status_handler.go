package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"probuild/internal/models"
	"probuild/internal/services"
)

type JobStatusHandler struct {
	Service *services.JobStatusService
}

func NewJobStatusHandler(service *services.JobStatusService) *JobStatusHandler {
	return &JobStatusHandler{Service: service}
}

type createStatusRequest struct {
	Key         string  `json:"key" binding:"required"`
	Label       string  `json:"label" binding:"required"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

type updateStatusRequest struct {
	Key         *string `json:"key"`
	Label       *string `json:"label"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

type dependencyInput struct {
	PrerequisiteKey string                `json:"prerequisiteKey"`
	DependencyType  models.DependencyType `json:"dependencyType"`
}

type saveDependenciesRequest struct {
	Dependencies []dependencyInput `json:"dependencies"`
}

// List godoc
// @Summary      List job statuses
// @Tags         JobStatuses
// @Produce      json
// @Success      200  {array}   models.JobStatus
// @Security     BearerAuth
// @Router       /api/job-statuses [get]
func (h *JobStatusHandler) List(c *gin.Context) {
	list, err := h.Service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Create godoc
// @Summary      Create a job status
// @Description  The key is lowercased, whitespace becomes "_", and it cannot change later.
// @Tags         JobStatuses
// @Accept       json
// @Produce      json
// @Param        status  body      createStatusRequest  true  "New status"
// @Success      201     {object}  models.JobStatus
// @Failure      400     {object}  map[string]interface{}
// @Failure      409     {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /api/job-statuses [post]
func (h *JobStatusHandler) Create(c *gin.Context) {
	var req createStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	st := &models.JobStatus{Key: req.Key, Label: req.Label, Description: req.Description, IsActive: true}
	if req.IsActive != nil {
		st.IsActive = *req.IsActive
	}
	if err := h.Service.Create(c.Request.Context(), st); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, st)
}

func (h *JobStatusHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	st, err := h.Service.Update(c.Request.Context(), id, services.StatusPatch{
		Key:         req.Key,
		Label:       req.Label,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// Delete godoc
// @Summary      Delete a job status
// @Description  Removes dependency edges and kanban memberships. Jobs keep the key; the response reports how many.
// @Tags         JobStatuses
// @Produce      json
// @Param        id   path      int  true  "Status ID"
// @Success      200  {object}  services.StatusDeletion
// @Failure      409  {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /api/job-statuses/{id} [delete]
func (h *JobStatusHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	res, err := h.Service.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *JobStatusHandler) Reorder(c *gin.Context) {
	var req idsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.Service.Reorder(c.Request.Context(), req.IDs); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *JobStatusHandler) ListDependencies(c *gin.Context) {
	deps, err := h.Service.ListDependencies(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deps)
}

func (h *JobStatusHandler) GetDependencies(c *gin.Context) {
	deps, err := h.Service.GetDependencies(c.Request.Context(), c.Param("statusKey"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deps)
}

// SaveDependencies godoc
// @Summary      Replace a status's prerequisites
// @Description  Full replace. An empty list clears every prerequisite. Sets that close a cycle get 409.
// @Tags         JobStatuses
// @Accept       json
// @Produce      json
// @Param        statusKey  path      string                   true  "Status key"
// @Param        body       body      saveDependenciesRequest  true  "Prerequisites"
// @Success      200        {array}   models.JobStatusDependency
// @Failure      409        {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /api/job-status-dependencies/{statusKey} [put]
func (h *JobStatusHandler) SaveDependencies(c *gin.Context) {
	var req saveDependenciesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Dependencies == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dependencies is required"})
		return
	}
	deps := make([]models.JobStatusDependency, len(req.Dependencies))
	for i, d := range req.Dependencies {
		deps[i] = models.JobStatusDependency{PrerequisiteKey: d.PrerequisiteKey, DependencyType: d.DependencyType}
	}
	saved, err := h.Service.SaveDependencies(c.Request.Context(), c.Param("statusKey"), deps)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// Available lists prerequisites that can still be added. ?selected=a,b
// overrides the stored selection.
func (h *JobStatusHandler) Available(c *gin.Context) {
	var selected []string
	if raw, ok := c.GetQuery("selected"); ok {
		selected = []string{}
		for _, k := range strings.Split(raw, ",") {
			if k = strings.TrimSpace(k); k != "" {
				selected = append(selected, k)
			}
		}
	}
	list, err := h.Service.Available(c.Request.Context(), c.Param("statusKey"), selected)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
