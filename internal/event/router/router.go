// Package router provides event module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ehub-platform/event-service/internal/event/handler"
	"github.com/ehub-platform/event-service/internal/event/repository"
	"github.com/ehub-platform/event-service/internal/event/service"
	"github.com/ehub-platform/event-service/internal/idgen"
)

// RegisterRoutes registers event module routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, ids idgen.Issuer, logger *zap.SugaredLogger) {
	repo := repository.New(db)
	svc := service.New(repo, db, ids, logger)
	h := handler.New(svc, logger)

	r.POST("/events", h.CreateEvent)
	r.GET("/events", h.ListEvents)
	r.GET("/events/:id", h.GetEvent)
	r.PUT("/events/:id", h.UpdateEvent)
	r.DELETE("/events/:id", h.DeleteEvent)
	r.POST("/events/:id/finalize", h.FinalizeResults)
	r.POST("/events/:id/problems", h.AddProblemStatement)
	r.POST("/events/:id/problems/batch", h.AddProblemStatements)
	r.PUT("/problems/:problemId", h.UpdateProblemStatement)
	r.DELETE("/problems/:problemId", h.DeleteProblemStatement)
	r.GET("/lookup/events/:shortCode", h.GetEventByShortCode)
}
