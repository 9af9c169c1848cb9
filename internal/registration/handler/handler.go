// Package handler provides HTTP handlers for registration endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	eventModel "github.com/ehub-platform/event-service/internal/event/model"
	"github.com/ehub-platform/event-service/internal/registration/model"
	"github.com/ehub-platform/event-service/internal/registration/service"
)

// Handler handles HTTP requests for registration endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new registration handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// handleError maps domain sentinels to HTTP error responses.
func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, eventModel.ErrEventNotFound):
		errorResponse(c, "EVENT_NOT_FOUND", err.Error(), http.StatusNotFound)
	case errors.Is(err, model.ErrRegistrationNotFound):
		errorResponse(c, "REGISTRATION_NOT_FOUND", err.Error(), http.StatusNotFound)
	case errors.Is(err, model.ErrAlreadyRegistered):
		errorResponse(c, "ALREADY_REGISTERED", err.Error(), http.StatusConflict)
	case errors.Is(err, model.ErrRegistrationClosed):
		errorResponse(c, "REGISTRATION_CLOSED", err.Error(), http.StatusConflict)
	case errors.Is(err, model.ErrCapacityReached):
		errorResponse(c, "CAPACITY_REACHED", err.Error(), http.StatusConflict)
	case errors.Is(err, eventModel.ErrNotOrganizer):
		errorResponse(c, "NOT_ORGANIZER", err.Error(), http.StatusForbidden)
	case errors.Is(err, model.ErrInvalidStatus), errors.Is(err, model.ErrMissingUserID):
		errorResponse(c, "INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	default:
		h.logger.Errorw("registration handler error", "path", c.Request.URL.Path, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}

// Register handles POST /events/:id/registrations.
func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Register(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// List handles GET /events/:id/registrations.
func (h *Handler) List(c *gin.Context) {
	registrations, err := h.service.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"registrations": registrations})
}

// SetStatus handles PUT /registrations/:registrationId/status.
func (h *Handler) SetStatus(c *gin.Context) {
	var req model.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	err := h.service.SetStatus(c.Request.Context(), c.Param("registrationId"), req.Status, requesterID(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "registration status updated"})
}

// Cancel handles DELETE /registrations/:registrationId.
func (h *Handler) Cancel(c *gin.Context) {
	if err := h.service.Cancel(c.Request.Context(), c.Param("registrationId")); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "registration cancelled"})
}
