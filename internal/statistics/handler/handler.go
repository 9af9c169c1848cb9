// Package handler provides HTTP handlers for statistics endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	eventModel "github.com/ehub-platform/event-service/internal/event/model"
	"github.com/ehub-platform/event-service/internal/statistics/service"
)

// Handler handles HTTP requests for statistics endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new statistics handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// GetEventStatistics handles GET /events/:id/statistics.
func (h *Handler) GetEventStatistics(c *gin.Context) {
	resp, err := h.service.GetEventStatistics(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, eventModel.ErrEventNotFound) {
			errorResponse(c, "EVENT_NOT_FOUND", err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Errorw("error getting event statistics", "event_id", c.Param("id"), "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}
