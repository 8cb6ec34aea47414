package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"probuild/internal/models"
	"probuild/internal/services"
)

type JobPipelineHandler struct {
	Service *services.PipelineService
}

func NewJobPipelineHandler(service *services.PipelineService) *JobPipelineHandler {
	return &JobPipelineHandler{Service: service}
}

type pipelineRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

type stageRequest struct {
	Name           *string                `json:"name"`
	Icon           *string                `json:"icon"`
	CompletionType *models.CompletionType `json:"completionType"`
	IsActive       *bool                  `json:"isActive"`
}

func (h *JobPipelineHandler) List(c *gin.Context) {
	list, err := h.Service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *JobPipelineHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	p, err := h.Service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *JobPipelineHandler) Create(c *gin.Context) {
	var req pipelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p := &models.JobPipeline{Description: req.Description, IsActive: true}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if err := h.Service.Create(c.Request.Context(), p); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *JobPipelineHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req pipelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.Service.Update(c.Request.Context(), id, services.PipelinePatch{
		Name: req.Name, Description: req.Description, IsActive: req.IsActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *JobPipelineHandler) Delete(c *gin.Context) {
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

func (h *JobPipelineHandler) ListStages(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	stages, err := h.Service.ListStages(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stages)
}

func (h *JobPipelineHandler) CreateStage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req stageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	st := &models.JobPipelineStage{PipelineID: id, Icon: req.Icon, IsActive: true}
	if req.Name != nil {
		st.Name = *req.Name
	}
	if req.CompletionType != nil {
		st.CompletionType = *req.CompletionType
	}
	if req.IsActive != nil {
		st.IsActive = *req.IsActive
	}
	if err := h.Service.CreateStage(c.Request.Context(), st); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, st)
}

func (h *JobPipelineHandler) UpdateStage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	stageID, ok := parseID(c, "stageId")
	if !ok {
		return
	}
	var req stageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	st, err := h.Service.UpdateStage(c.Request.Context(), id, stageID, services.StagePatch{
		Name: req.Name, Icon: req.Icon, CompletionType: req.CompletionType, IsActive: req.IsActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *JobPipelineHandler) DeleteStage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	stageID, ok := parseID(c, "stageId")
	if !ok {
		return
	}
	if err := h.Service.DeleteStage(c.Request.Context(), id, stageID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *JobPipelineHandler) ReorderStages(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req idsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.Service.ReorderStages(c.Request.Context(), id, req.IDs); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
