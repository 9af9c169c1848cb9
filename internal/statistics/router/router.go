// Package router provides statistics module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	eventRepository "github.com/ehub-platform/event-service/internal/event/repository"
	"github.com/ehub-platform/event-service/internal/statistics/handler"
	"github.com/ehub-platform/event-service/internal/statistics/repository"
	"github.com/ehub-platform/event-service/internal/statistics/service"
)

// RegisterRoutes registers statistics module routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	eventRepo := eventRepository.New(db)
	svc := service.New(repo, eventRepo, logger)
	h := handler.New(svc, logger)

	r.GET("/events/:id/statistics", h.GetEventStatistics)
}
