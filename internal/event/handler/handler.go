// Package handler provides HTTP handlers for event endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ehub-platform/event-service/internal/event/model"
	"github.com/ehub-platform/event-service/internal/event/service"
)

// Handler handles HTTP requests for event endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new event handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// handleError maps domain sentinels to HTTP error responses.
func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrEventNotFound):
		errorResponse(c, "EVENT_NOT_FOUND", err.Error(), http.StatusNotFound)
	case errors.Is(err, model.ErrProblemNotFound):
		errorResponse(c, "PROBLEM_NOT_FOUND", err.Error(), http.StatusNotFound)
	case errors.Is(err, model.ErrNotOrganizer):
		errorResponse(c, "NOT_ORGANIZER", err.Error(), http.StatusForbidden)
	case errors.Is(err, model.ErrEventCodeExists):
		errorResponse(c, "CODE_CONFLICT", err.Error(), http.StatusConflict)
	case errors.Is(err, model.ErrInvalidEventName), errors.Is(err, model.ErrInvalidStatement):
		errorResponse(c, "INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	default:
		h.logger.Errorw("event handler error", "path", c.Request.URL.Path, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}

// CreateEvent handles POST /events.
func (h *Handler) CreateEvent(c *gin.Context) {
	organizerID := requesterID(c)
	if organizerID == "" {
		errorResponse(c, "MISSING_IDENTITY", "X-User-Id header is required", http.StatusUnauthorized)
		return
	}

	var req model.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.CreateEvent(c.Request.Context(), &req, organizerID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListEvents handles GET /events with optional organizer_id / participant_id filters.
func (h *Handler) ListEvents(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		events []model.EventResponse
		err    error
	)
	switch {
	case c.Query("organizer_id") != "":
		events, err = h.service.ListEventsByOrganizer(ctx, c.Query("organizer_id"))
	case c.Query("participant_id") != "":
		events, err = h.service.ListEventsByParticipant(ctx, c.Query("participant_id"))
	default:
		events, err = h.service.ListEvents(ctx)
	}
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

// GetEvent handles GET /events/:id.
func (h *Handler) GetEvent(c *gin.Context) {
	resp, err := h.service.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetEventByShortCode handles GET /lookup/events/:shortCode.
func (h *Handler) GetEventByShortCode(c *gin.Context) {
	resp, err := h.service.GetEventByShortCode(c.Request.Context(), c.Param("shortCode"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateEvent handles PUT /events/:id.
func (h *Handler) UpdateEvent(c *gin.Context) {
	var req model.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.UpdateEvent(c.Request.Context(), c.Param("id"), &req, requesterID(c)); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "event updated"})
}

// DeleteEvent handles DELETE /events/:id.
func (h *Handler) DeleteEvent(c *gin.Context) {
	if err := h.service.DeleteEvent(c.Request.Context(), c.Param("id"), requesterID(c)); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}

// FinalizeResults handles POST /events/:id/finalize.
func (h *Handler) FinalizeResults(c *gin.Context) {
	if err := h.service.FinalizeResults(c.Request.Context(), c.Param("id"), requesterID(c)); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "results finalized"})
}

// AddProblemStatement handles POST /events/:id/problems.
func (h *Handler) AddProblemStatement(c *gin.Context) {
	var req model.ProblemStatementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	err := h.service.AddProblemStatements(c.Request.Context(), c.Param("id"),
		[]model.ProblemStatementRequest{req}, requesterID(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "problem statement added"})
}

// AddProblemStatements handles POST /events/:id/problems/batch.
func (h *Handler) AddProblemStatements(c *gin.Context) {
	var reqs []model.ProblemStatementRequest
	if err := c.ShouldBindJSON(&reqs); err != nil || len(reqs) == 0 {
		errorResponse(c, "INVALID_REQUEST", "a non-empty array of problem statements is required", http.StatusBadRequest)
		return
	}

	if err := h.service.AddProblemStatements(c.Request.Context(), c.Param("id"), reqs, requesterID(c)); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "problem statements added"})
}

// UpdateProblemStatement handles PUT /problems/:problemId.
func (h *Handler) UpdateProblemStatement(c *gin.Context) {
	var req model.ProblemStatementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.UpdateProblemStatement(c.Request.Context(), c.Param("problemId"), &req, requesterID(c)); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "problem statement updated"})
}

// DeleteProblemStatement handles DELETE /problems/:problemId.
func (h *Handler) DeleteProblemStatement(c *gin.Context) {
	if err := h.service.DeleteProblemStatement(c.Request.Context(), c.Param("problemId"), requesterID(c)); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "problem statement deleted"})
}
