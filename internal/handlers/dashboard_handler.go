package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"probuild/internal/services"
)

type DashboardHandler struct {
	Service *services.DashboardService
}

func NewDashboardHandler(service *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{Service: service}
}

// Stats godoc
// @Summary      Dashboard figures
// @Description  Counts of new leads, quotes awaiting follow-up, jobs in production, low stock items and pending payments.
// @Tags         Dashboard
// @Produce      json
// @Success      200  {object}  models.DashboardStats
// @Security     BearerAuth
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.Service.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
