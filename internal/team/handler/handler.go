// Package handler provides HTTP handlers for team endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	eventModel "github.com/ehub-platform/event-service/internal/event/model"
	"github.com/ehub-platform/event-service/internal/team/model"
	"github.com/ehub-platform/event-service/internal/team/service"
)

// Handler handles HTTP requests for team endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new team handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// handleError maps domain sentinels to HTTP error responses.
func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, eventModel.ErrEventNotFound):
		errorResponse(c, "EVENT_NOT_FOUND", err.Error(), http.StatusNotFound)
	case errors.Is(err, eventModel.ErrProblemNotFound):
		errorResponse(c, "PROBLEM_NOT_FOUND", err.Error(), http.StatusNotFound)
	case errors.Is(err, model.ErrTeamNotFound):
		errorResponse(c, "TEAM_NOT_FOUND", err.Error(), http.StatusNotFound)
	case errors.Is(err, model.ErrMembershipNotFound):
		errorResponse(c, "MEMBERSHIP_NOT_FOUND", err.Error(), http.StatusNotFound)
	case errors.Is(err, model.ErrNotLeader):
		errorResponse(c, "NOT_LEADER", err.Error(), http.StatusForbidden)
	case errors.Is(err, model.ErrAlreadyMember),
		errors.Is(err, model.ErrAlreadyInTeam),
		errors.Is(err, model.ErrTeamFull),
		errors.Is(err, model.ErrEventStarted),
		errors.Is(err, model.ErrSubmissionsNotOpen),
		errors.Is(err, model.ErrSubmissionsClosed),
		errors.Is(err, model.ErrLeaderCannotLeave):
		errorResponse(c, "CONFLICT", err.Error(), http.StatusConflict)
	case errors.Is(err, model.ErrRegistrationRequired),
		errors.Is(err, model.ErrRegistrationNotApproved):
		errorResponse(c, "REGISTRATION_NOT_APPROVED", err.Error(), http.StatusForbidden)
	case errors.Is(err, model.ErrInvalidTeamName),
		errors.Is(err, model.ErrProblemNotInEvent):
		errorResponse(c, "INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	default:
		h.logger.Errorw("team handler error", "path", c.Request.URL.Path, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}

// Create handles POST /events/:id/teams.
func (h *Handler) Create(c *gin.Context) {
	var req model.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListByEvent handles GET /events/:id/teams.
func (h *Handler) ListByEvent(c *gin.Context) {
	teams, err := h.service.ListByEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"teams": teams})
}

// GetByShortCode handles GET /lookup/teams/:shortCode.
func (h *Handler) GetByShortCode(c *gin.Context) {
	resp, err := h.service.GetByShortCode(c.Request.Context(), c.Param("shortCode"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Invite handles POST /teams/:teamId/invite.
func (h *Handler) Invite(c *gin.Context) {
	var req model.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.Invite(c.Request.Context(), c.Param("teamId"), &req, requesterID(c)); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "invitation sent"})
}

// RequestToJoin handles POST /teams/:teamId/join.
func (h *Handler) RequestToJoin(c *gin.Context) {
	var req model.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.RequestToJoin(c.Request.Context(), c.Param("teamId"), &req); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "join request recorded"})
}

// Respond handles POST /teams/:teamId/respond.
func (h *Handler) Respond(c *gin.Context) {
	var req model.RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.Respond(c.Request.Context(), c.Param("teamId"), req.UserID, req.Accept); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "response recorded"})
}

// TransferLeadership handles POST /teams/:teamId/transfer.
func (h *Handler) TransferLeadership(c *gin.Context) {
	var req model.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	err := h.service.TransferLeadership(c.Request.Context(), c.Param("teamId"), requesterID(c), req.NewLeaderID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "leadership transferred"})
}

// Leave handles POST /teams/:teamId/leave.
func (h *Handler) Leave(c *gin.Context) {
	if err := h.service.Leave(c.Request.Context(), c.Param("teamId"), requesterID(c)); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "left the team"})
}

// Dismantle handles DELETE /teams/:teamId.
func (h *Handler) Dismantle(c *gin.Context) {
	if err := h.service.Dismantle(c.Request.Context(), c.Param("teamId"), requesterID(c)); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "team dismantled"})
}

// SetProblemStatement handles PUT /teams/:teamId/problem.
func (h *Handler) SetProblemStatement(c *gin.Context) {
	var req model.SelectProblemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	err := h.service.SetProblemStatement(c.Request.Context(), c.Param("teamId"), requesterID(c), req.ProblemStatementID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "problem statement selected"})
}

// Submit handles POST /teams/:teamId/submit.
func (h *Handler) Submit(c *gin.Context) {
	var req model.SubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.Submit(c.Request.Context(), c.Param("teamId"), requesterID(c), &req); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "submission recorded"})
}

// EvaluationContext handles GET /teams/:teamId/evaluation.
func (h *Handler) EvaluationContext(c *gin.Context) {
	resp, err := h.service.EvaluationContext(c.Request.Context(), c.Param("teamId"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// EventEvaluationContexts handles GET /events/:id/evaluation.
func (h *Handler) EventEvaluationContexts(c *gin.Context) {
	contexts, err := h.service.EventEvaluationContexts(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"teams": contexts})
}

// UpdateScore handles PUT /teams/:teamId/score.
func (h *Handler) UpdateScore(c *gin.Context) {
	var req model.ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.UpdateScore(c.Request.Context(), c.Param("teamId"), req.Score); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "score updated"})
}
