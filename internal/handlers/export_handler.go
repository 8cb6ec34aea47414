package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"probuild/internal/middleware"
	"probuild/internal/services"
)

type ExportHandler struct {
	ClientSvc *services.ClientService
	LeadSvc   *services.LeadService
}

func NewExportHandler(clients *services.ClientService, leads *services.LeadService) *ExportHandler {
	return &ExportHandler{ClientSvc: clients, LeadSvc: leads}
}

func writeCSV(c *gin.Context, name string, header []string, rows [][]string) {
	filename := fmt.Sprintf("%s-%s.csv", name, time.Now().Format("20060102"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write(header)
	_ = w.WriteAll(rows)
	if err := w.Error(); err != nil {
		l := middleware.Logger(c)
		l.Error().Err(err).Str("export", name).Msg("csv export failed")
	}
}

func (h *ExportHandler) Clients(c *gin.Context) {
	clients, err := h.ClientSvc.List(c.Request.Context(), "", 0, 0)
	if err != nil {
		respondError(c, err)
		return
	}
	rows := make([][]string, len(clients))
	for i, cl := range clients {
		rows[i] = []string{strconv.FormatInt(cl.ID, 10), cl.Name, cl.Email, cl.Phone, cl.Address, cl.CreatedAt.Format(time.RFC3339)}
	}
	writeCSV(c, "clients", []string{"id", "name", "email", "phone", "address", "created_at"}, rows)
}

func (h *ExportHandler) Leads(c *gin.Context) {
	leads, err := h.LeadSvc.List(c.Request.Context(), c.Query("status"), 0, 0)
	if err != nil {
		respondError(c, err)
		return
	}
	rows := make([][]string, len(leads))
	for i, l := range leads {
		rows[i] = []string{
			strconv.FormatInt(l.ID, 10),
			string(l.Stage),
			string(l.Status),
			l.ClientName,
			l.SiteAddress,
			l.FenceStyle,
			strconv.FormatFloat(l.FenceLength, 'f', 2, 64),
			l.Source,
			l.CreatedAt.Format(time.RFC3339),
		}
	}
	writeCSV(c, "leads", []string{"id", "stage", "status", "client", "site_address", "fence_style", "fence_length", "source", "created_at"}, rows)
}
