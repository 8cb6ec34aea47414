package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"probuild/internal/services"
	"probuild/internal/workflow"
)

type KanbanColumnHandler struct {
	Service *services.KanbanService
}

func NewKanbanColumnHandler(service *services.KanbanService) *KanbanColumnHandler {
	return &KanbanColumnHandler{Service: service}
}

type columnRequest struct {
	Title         string   `json:"title"`
	Statuses      []string `json:"statuses"`
	DefaultStatus string   `json:"defaultStatus"`
	Color         string   `json:"color"`
	IsActive      *bool    `json:"isActive"`
}

func (r columnRequest) form() workflow.ColumnForm {
	f := workflow.ColumnForm{
		Title:         r.Title,
		Statuses:      r.Statuses,
		DefaultStatus: r.DefaultStatus,
		Color:         r.Color,
		IsActive:      true,
	}
	if r.IsActive != nil {
		f.IsActive = *r.IsActive
	}
	return f
}

func (h *KanbanColumnHandler) List(c *gin.Context) {
	list, err := h.Service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *KanbanColumnHandler) Create(c *gin.Context) {
	var req columnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	col, err := h.Service.Create(c.Request.Context(), req.form())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, col)
}

func (h *KanbanColumnHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req columnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	col, err := h.Service.Update(c.Request.Context(), id, req.form())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, col)
}

func (h *KanbanColumnHandler) Delete(c *gin.Context) {
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

func (h *KanbanColumnHandler) Reorder(c *gin.Context) {
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

// Board godoc
// @Summary      Jobs grouped by kanban column
// @Tags         Kanban
// @Produce      json
// @Success      200  {object}  models.KanbanBoard
// @Security     BearerAuth
// @Router       /api/kanban-columns/board [get]
func (h *KanbanColumnHandler) Board(c *gin.Context) {
	board, err := h.Service.Board(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}
