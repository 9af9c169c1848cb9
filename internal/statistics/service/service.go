// Package service provides business logic layer for the statistics module.
package service

import (
	"context"

	"go.uber.org/zap"

	eventRepository "github.com/ehub-platform/event-service/internal/event/repository"
	"github.com/ehub-platform/event-service/internal/statistics/model"
	"github.com/ehub-platform/event-service/internal/statistics/repository"
)

// Service defines the interface for statistics business logic operations.
type Service interface {
	// GetEventStatistics returns aggregated statistics for a single event.
	GetEventStatistics(ctx context.Context, eventID string) (*model.EventStatisticsResponse, error)
}

type service struct {
	repo      repository.Repository
	eventRepo eventRepository.Repository
	logger    *zap.SugaredLogger
}

// New creates a new statistics service instance.
func New(repo repository.Repository, eventRepo eventRepository.Repository, logger *zap.SugaredLogger) Service {
	return &service{
		repo:      repo,
		eventRepo: eventRepo,
		logger:    logger,
	}
}

// GetEventStatistics returns aggregated statistics for a single event.
func (s *service) GetEventStatistics(ctx context.Context, eventID string) (*model.EventStatisticsResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	registrations, err := s.repo.GetRegistrationStatistics(ctx, eventID)
	if err != nil {
		return nil, err
	}

	teams, err := s.repo.GetTeamStatistics(ctx, eventID)
	if err != nil {
		return nil, err
	}

	return &model.EventStatisticsResponse{
		Statistics: model.EventStatistics{
			EventID:       event.ID,
			EventName:     event.Name,
			Status:        string(event.Status),
			Registrations: *registrations,
			Teams:         *teams,
		},
	}, nil
}
