package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"probuild/internal/models"
	"probuild/internal/services"
)

type ClientHandler struct {
	Service *services.ClientService
}

func NewClientHandler(service *services.ClientService) *ClientHandler {
	return &ClientHandler{Service: service}
}

type clientRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	client := &models.Client{Name: req.Name, Email: req.Email, Phone: req.Phone, Address: req.Address}
	if err := h.Service.Create(c.Request.Context(), client); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	client, err := h.Service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	client.Name, client.Email, client.Phone, client.Address = req.Name, req.Email, req.Phone, req.Address
	if err := h.Service.Update(c.Request.Context(), client); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	client, err := h.Service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	clients, err := h.Service.List(c.Request.Context(), c.Query("search"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (h *ClientHandler) Delete(c *gin.Context) {
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
