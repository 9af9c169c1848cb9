// Package service provides business logic layer for the registration module.
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	eventModel "github.com/ehub-platform/event-service/internal/event/model"
	eventRepository "github.com/ehub-platform/event-service/internal/event/repository"
	"github.com/ehub-platform/event-service/internal/idgen"
	"github.com/ehub-platform/event-service/internal/notifier"
	"github.com/ehub-platform/event-service/internal/registration/model"
	"github.com/ehub-platform/event-service/internal/registration/repository"
)

// Service defines the interface for registration business logic operations.
type Service interface {
	// Register creates a PENDING registration for (event, user).
	Register(ctx context.Context, eventID string, req *model.RegisterRequest) (*model.RegistrationResponse, error)

	// List returns all registrations of an event.
	List(ctx context.Context, eventID string) ([]model.RegistrationResponse, error)

	// SetStatus approves or rejects a registration; organizer only.
	SetStatus(ctx context.Context, registrationID string, status model.RegistrationStatus, requesterID string) error

	// Cancel deletes a registration. Cancelling an id that does not exist
	// returns ErrRegistrationNotFound.
	Cancel(ctx context.Context, registrationID string) error
}

type service struct {
	repo      repository.Repository
	eventRepo eventRepository.Repository
	db        *gorm.DB
	ids       idgen.Issuer
	notifier  notifier.Dispatcher
	logger    *zap.SugaredLogger
	now       func() time.Time
}

// New creates a new registration service instance.
func New(
	repo repository.Repository,
	eventRepo eventRepository.Repository,
	db *gorm.DB,
	ids idgen.Issuer,
	dispatcher notifier.Dispatcher,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		repo:      repo,
		eventRepo: eventRepo,
		db:        db,
		ids:       ids,
		notifier:  dispatcher,
		logger:    logger,
		now:       time.Now,
	}
}

// Register creates a PENDING registration once the event row lock is held,
// so the window and capacity checks cannot race with concurrent approvals.
// The (event_id, user_id) unique constraint backs the duplicate check.
func (s *service) Register(ctx context.Context, eventID string, req *model.RegisterRequest) (*model.RegistrationResponse, error) {
	if req.UserID == "" {
		return nil, model.ErrMissingUserID
	}

	var registration *model.Registration
	var eventName string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx)
		txEventRepo := eventRepository.New(tx)

		event, err := txEventRepo.GetByIDForUpdate(ctx, eventID)
		if err != nil {
			return err
		}
		eventName = event.Name

		now := s.now()
		if event.RegistrationEndDate != nil && now.After(*event.RegistrationEndDate) {
			return model.ErrRegistrationClosed
		}

		if event.MaxParticipants != nil {
			approved, err := txRepo.CountByEventAndStatus(ctx, eventID, model.RegistrationApproved)
			if err != nil {
				return err
			}
			if approved >= int64(*event.MaxParticipants) {
				return model.ErrCapacityReached
			}
		}

		registration = &model.Registration{
			ID:               s.ids.NewID(),
			EventID:          eventID,
			UserID:           req.UserID,
			Username:         req.Username,
			UserEmail:        req.UserEmail,
			Status:           model.RegistrationPending,
			RegistrationTime: now,
		}
		return txRepo.Create(ctx, registration)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("registration created", "registration_id", registration.ID, "event_id", eventID, "user_id", req.UserID)

	// Best-effort: dispatch failure never fails the committed registration.
	if req.UserEmail != "" {
		subject := "Registration Request Received: " + eventName
		body := "Your registration request for " + eventName + " is pending approval from the organizer."
		if err := s.notifier.Send(ctx, req.UserEmail, subject, body); err != nil {
			s.logger.Warnw("failed to send registration notification", "registration_id", registration.ID, "error", err)
		}
	}

	return toResponse(registration), nil
}

// List returns all registrations of an event.
func (s *service) List(ctx context.Context, eventID string) ([]model.RegistrationResponse, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	registrations, err := s.repo.GetByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	responses := make([]model.RegistrationResponse, 0, len(registrations))
	for i := range registrations {
		responses = append(responses, *toResponse(&registrations[i]))
	}
	return responses, nil
}

// SetStatus approves or rejects a registration. Approval re-checks the
// capacity limit under the event row lock: without that, concurrent
// approvals could exceed maxParticipants.
func (s *service) SetStatus(ctx context.Context, registrationID string, status model.RegistrationStatus, requesterID string) error {
	if !status.Valid() {
		return model.ErrInvalidStatus
	}

	var registration *model.Registration
	var eventName string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx)
		txEventRepo := eventRepository.New(tx)

		var err error
		registration, err = txRepo.GetByID(ctx, registrationID)
		if err != nil {
			return err
		}

		event, err := txEventRepo.GetByIDForUpdate(ctx, registration.EventID)
		if err != nil {
			return err
		}
		eventName = event.Name

		if event.OrganizerID != requesterID {
			return eventModel.ErrNotOrganizer
		}

		if status == model.RegistrationApproved && registration.Status != model.RegistrationApproved && event.MaxParticipants != nil {
			approved, err := txRepo.CountByEventAndStatus(ctx, registration.EventID, model.RegistrationApproved)
			if err != nil {
				return err
			}
			if approved >= int64(*event.MaxParticipants) {
				return model.ErrCapacityReached
			}
		}

		registration.Status = status
		return txRepo.Save(ctx, registration)
	})
	if err != nil {
		return err
	}

	s.logger.Infow("registration status updated", "registration_id", registrationID, "status", status)

	if registration.UserEmail != "" {
		var body string
		switch status {
		case model.RegistrationApproved:
			body = "Congratulations! Your registration for " + eventName + " has been APPROVED."
		case model.RegistrationRejected:
			body = "We regret to inform you that your registration for " + eventName + " has been REJECTED."
		}
		if body != "" {
			subject := fmt.Sprintf("Registration %s for %s", status, eventName)
			if err := s.notifier.Send(ctx, registration.UserEmail, subject, body); err != nil {
				s.logger.Warnw("failed to send status notification", "registration_id", registrationID, "error", err)
			}
		}
	}

	return nil
}

// Cancel deletes a registration; an absent id is reported as not found
// rather than treated as an idempotent success.
func (s *service) Cancel(ctx context.Context, registrationID string) error {
	registration, err := s.repo.GetByID(ctx, registrationID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, registration.ID); err != nil {
		return err
	}

	s.logger.Infow("registration cancelled", "registration_id", registrationID)
	return nil
}

func toResponse(registration *model.Registration) *model.RegistrationResponse {
	return &model.RegistrationResponse{
		ID:               registration.ID,
		EventID:          registration.EventID,
		UserID:           registration.UserID,
		Username:         registration.Username,
		UserEmail:        registration.UserEmail,
		Status:           registration.Status,
		RegistrationTime: registration.RegistrationTime,
	}
}
