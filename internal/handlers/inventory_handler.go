package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"probuild/internal/models"
	"probuild/internal/services"
)

type InventoryHandler struct {
	Service *services.InventoryService
}

func NewInventoryHandler(service *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{Service: service}
}

type inventoryPatchRequest struct {
	Name         *string `json:"name"`
	Unit         *string `json:"unit"`
	Quantity     *int    `json:"quantity"`
	ReorderLevel *int    `json:"reorderLevel"`
}

// List accepts ?lowStock=true to return only items at or below their reorder level.
func (h *InventoryHandler) List(c *gin.Context) {
	items, err := h.Service.List(c.Request.Context(), c.Query("lowStock") == "true")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *InventoryHandler) Create(c *gin.Context) {
	var item models.InventoryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		badRequest(c, err)
		return
	}
	item.ID = 0
	if err := h.Service.Create(c.Request.Context(), &item); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *InventoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req inventoryPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	item, err := h.Service.Update(c.Request.Context(), id, services.InventoryPatch(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}
