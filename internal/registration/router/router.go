// Package router provides registration module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	eventRepository "github.com/ehub-platform/event-service/internal/event/repository"
	"github.com/ehub-platform/event-service/internal/idgen"
	"github.com/ehub-platform/event-service/internal/notifier"
	"github.com/ehub-platform/event-service/internal/registration/handler"
	"github.com/ehub-platform/event-service/internal/registration/repository"
	"github.com/ehub-platform/event-service/internal/registration/service"
)

// RegisterRoutes registers registration module routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, ids idgen.Issuer, dispatcher notifier.Dispatcher, logger *zap.SugaredLogger) {
	repo := repository.New(db)
	eventRepo := eventRepository.New(db)
	svc := service.New(repo, eventRepo, db, ids, dispatcher, logger)
	h := handler.New(svc, logger)

	r.POST("/events/:id/registrations", h.Register)
	r.GET("/events/:id/registrations", h.List)
	r.PUT("/registrations/:registrationId/status", h.SetStatus)
	r.DELETE("/registrations/:registrationId", h.Cancel)
}
