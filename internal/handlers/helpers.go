package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"probuild/internal/apperr"
	"probuild/internal/middleware"
)

type idsRequest struct {
	IDs []int64 `json:"ids" binding:"required"`
}

func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func pagination(c *gin.Context) (limit, offset int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "0"))
	if page < 1 {
		page = 1
	}
	if size < 0 {
		size = 0
	}
	return size, (page - 1) * size
}

func currentUser(c *gin.Context) *int64 {
	if id, ok := middleware.UserID(c); ok && id > 0 {
		return &id
	}
	return nil
}

// respondError maps the error taxonomy to a status code. Unexpected errors
// are logged and hidden behind a generic message.
func respondError(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, apperr.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		status = http.StatusConflict
	default:
		l := middleware.Logger(c)
		l.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	body := gin.H{"error": apperr.Message(err)}
	var unmet *apperr.UnmetError
	if errors.As(err, &unmet) {
		body["missing"] = unmet.Missing
	}
	var cycle *apperr.CycleError
	if errors.As(err, &cycle) {
		body["cycle"] = cycle.Path
	}
	c.JSON(status, body)
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
