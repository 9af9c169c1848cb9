// Package router provides team module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	eventRepository "github.com/ehub-platform/event-service/internal/event/repository"
	"github.com/ehub-platform/event-service/internal/idgen"
	"github.com/ehub-platform/event-service/internal/notifier"
	registrationRepository "github.com/ehub-platform/event-service/internal/registration/repository"
	"github.com/ehub-platform/event-service/internal/team/handler"
	"github.com/ehub-platform/event-service/internal/team/repository"
	"github.com/ehub-platform/event-service/internal/team/service"
)

// RegisterRoutes registers team module routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, ids idgen.Issuer, dispatcher notifier.Dispatcher, logger *zap.SugaredLogger) {
	repo := repository.New(db)
	eventRepo := eventRepository.New(db)
	regRepo := registrationRepository.New(db)
	svc := service.New(repo, eventRepo, regRepo, db, ids, dispatcher, logger)
	h := handler.New(svc, logger)

	r.POST("/events/:id/teams", h.Create)
	r.GET("/events/:id/teams", h.ListByEvent)
	r.GET("/events/:id/evaluation", h.EventEvaluationContexts)
	r.GET("/lookup/teams/:shortCode", h.GetByShortCode)

	r.POST("/teams/:teamId/invite", h.Invite)
	r.POST("/teams/:teamId/join", h.RequestToJoin)
	r.POST("/teams/:teamId/respond", h.Respond)
	r.POST("/teams/:teamId/transfer", h.TransferLeadership)
	r.POST("/teams/:teamId/leave", h.Leave)
	r.POST("/teams/:teamId/submit", h.Submit)
	r.PUT("/teams/:teamId/problem", h.SetProblemStatement)
	r.PUT("/teams/:teamId/score", h.UpdateScore)
	r.GET("/teams/:teamId/evaluation", h.EvaluationContext)
	r.DELETE("/teams/:teamId", h.Dismantle)
}
