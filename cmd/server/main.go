// Package main provides the entry point for the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/ehub-platform/event-service/internal/config"
	"github.com/ehub-platform/event-service/internal/database"
	"github.com/ehub-platform/event-service/internal/database/migrate"
	eventRepository "github.com/ehub-platform/event-service/internal/event/repository"
	eventRouter "github.com/ehub-platform/event-service/internal/event/router"
	"github.com/ehub-platform/event-service/internal/health"
	"github.com/ehub-platform/event-service/internal/idgen"
	"github.com/ehub-platform/event-service/internal/middleware"
	"github.com/ehub-platform/event-service/internal/notifier"
	registrationRepository "github.com/ehub-platform/event-service/internal/registration/repository"
	registrationRouter "github.com/ehub-platform/event-service/internal/registration/router"
	"github.com/ehub-platform/event-service/internal/scheduler"
	statisticsRouter "github.com/ehub-platform/event-service/internal/statistics/router"
	teamRouter "github.com/ehub-platform/event-service/internal/team/router"
	"github.com/ehub-platform/event-service/pkg/logger"
)

func main() {
	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	appLogger, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx)
	if err != nil {
		appLogger.Fatalw("failed to connect to database", "error", err)
	}

	if err := migrate.Up(db); err != nil {
		appLogger.Fatalw("failed to apply migrations", "error", err)
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(middleware.Recovery(appLogger))
	r.Use(middleware.Logger(appLogger))

	ids := idgen.NewUUID()
	dispatcher := notifier.NewClient()

	healthHandler := health.New(db, appLogger)
	r.GET("/health", healthHandler.Check)

	eventRouter.RegisterRoutes(r, db, ids, appLogger)
	registrationRouter.RegisterRoutes(r, db, ids, dispatcher, appLogger)
	teamRouter.RegisterRoutes(r, db, ids, dispatcher, appLogger)
	statisticsRouter.RegisterRoutes(r, db, appLogger)

	if cfg.Scheduler.Enabled {
		sched := scheduler.New(
			eventRepository.New(db),
			registrationRepository.New(db),
			dispatcher,
			appLogger,
			cfg.Scheduler.Interval,
		)
		go sched.Run(ctx)
	}

	srv := &http.Server{
		Addr:         cfg.Server.GetAddress(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Infow("server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	appLogger.Infow("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorw("graceful shutdown failed", "error", err)
	}
	appLogger.Infow("server stopped")
}
