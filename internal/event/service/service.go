// Package service provides business logic layer for the event module.
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ehub-platform/event-service/internal/event/model"
	"github.com/ehub-platform/event-service/internal/event/repository"
	"github.com/ehub-platform/event-service/internal/idgen"
)

// Service defines the interface for event business logic operations.
type Service interface {
	// CreateEvent creates a new event owned by the organizer.
	CreateEvent(ctx context.Context, req *model.EventRequest, organizerID string) (*model.CreateEventResponse, error)

	// UpdateEvent replaces the mutable fields of an event.
	UpdateEvent(ctx context.Context, id string, req *model.EventRequest, requesterID string) error

	// DeleteEvent removes an event and, by cascade, its child records.
	DeleteEvent(ctx context.Context, id, requesterID string) error

	// FinalizeResults clears the judging flag so results become official.
	FinalizeResults(ctx context.Context, id, requesterID string) error

	// AddProblemStatements appends one or more problem statements to an event.
	AddProblemStatements(ctx context.Context, eventID string, reqs []model.ProblemStatementRequest, requesterID string) error

	// UpdateProblemStatement replaces the text of a problem statement.
	UpdateProblemStatement(ctx context.Context, id string, req *model.ProblemStatementRequest, requesterID string) error

	// DeleteProblemStatement removes a problem statement.
	DeleteProblemStatement(ctx context.Context, id, requesterID string) error

	// GetEvent returns a single event by id.
	GetEvent(ctx context.Context, id string) (*model.EventResponse, error)

	// GetEventByShortCode returns a single event by its share code.
	GetEventByShortCode(ctx context.Context, shortCode string) (*model.EventResponse, error)

	// ListEvents returns all events.
	ListEvents(ctx context.Context) ([]model.EventResponse, error)

	// ListEventsByOrganizer returns all events owned by the organizer.
	ListEventsByOrganizer(ctx context.Context, organizerID string) ([]model.EventResponse, error)

	// ListEventsByParticipant returns all events the user has registered for.
	ListEventsByParticipant(ctx context.Context, userID string) ([]model.EventResponse, error)
}

type service struct {
	repo   repository.Repository
	db     *gorm.DB
	ids    idgen.Issuer
	logger *zap.SugaredLogger
	now    func() time.Time
}

// New creates a new event service instance.
func New(repo repository.Repository, db *gorm.DB, ids idgen.Issuer, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		db:     db,
		ids:    ids,
		logger: logger,
		now:    time.Now,
	}
}

// CreateEvent creates a new event and seeds its official status.
func (s *service) CreateEvent(ctx context.Context, req *model.EventRequest, organizerID string) (*model.CreateEventResponse, error) {
	if req.Name == "" {
		return nil, model.ErrInvalidEventName
	}

	event := &model.Event{
		ID:                    s.ids.NewID(),
		ShortCode:             idgen.ShortCode(),
		Name:                  req.Name,
		Description:           req.Description,
		Theme:                 req.Theme,
		ContactEmail:          req.ContactEmail,
		Prizes:                req.Prizes,
		Rules:                 req.Rules,
		Venue:                 req.Venue,
		IsVirtual:             req.IsVirtual,
		Location:              req.Location,
		StartDate:             req.StartDate,
		EndDate:               req.EndDate,
		RegistrationStartDate: req.RegistrationStartDate,
		RegistrationEndDate:   req.RegistrationEndDate,
		ResultsDate:           req.ResultsDate,
		Judging:               req.Judging,
		MaxParticipants:       req.MaxParticipants,
		TeamSize:              req.TeamSize,
		OrganizerID:           organizerID,
	}
	event.Status = event.StatusAt(s.now())

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}

	s.logger.Infow("event created", "event_id", event.ID, "organizer_id", organizerID)
	return &model.CreateEventResponse{ID: event.ID, ShortCode: event.ShortCode}, nil
}

// UpdateEvent replaces the mutable fields of an event and re-derives its status.
func (s *service) UpdateEvent(ctx context.Context, id string, req *model.EventRequest, requesterID string) error {
	if req.Name == "" {
		return model.ErrInvalidEventName
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx)

		event, err := txRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if event.OrganizerID != requesterID {
			return model.ErrNotOrganizer
		}

		event.Name = req.Name
		event.Description = req.Description
		event.Theme = req.Theme
		event.ContactEmail = req.ContactEmail
		event.Prizes = req.Prizes
		event.Rules = req.Rules
		event.Venue = req.Venue
		event.IsVirtual = req.IsVirtual
		event.Location = req.Location
		event.StartDate = req.StartDate
		event.EndDate = req.EndDate
		event.RegistrationStartDate = req.RegistrationStartDate
		event.RegistrationEndDate = req.RegistrationEndDate
		event.ResultsDate = req.ResultsDate
		event.Judging = req.Judging
		event.MaxParticipants = req.MaxParticipants
		event.TeamSize = req.TeamSize
		event.Status = event.StatusAt(s.now())

		return txRepo.Save(ctx, event)
	})
}

// DeleteEvent removes an event. Registrations, teams and problem statements
// are removed by the database cascade.
func (s *service) DeleteEvent(ctx context.Context, id, requesterID string) error {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if event.OrganizerID != requesterID {
		return model.ErrNotOrganizer
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Infow("event deleted", "event_id", id)
	return nil
}

// FinalizeResults sets judging=false; the same instant then derives
// RESULTS_ANNOUNCED or COMPLETED depending on resultsDate.
func (s *service) FinalizeResults(ctx context.Context, id, requesterID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx)

		event, err := txRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if event.OrganizerID != requesterID {
			return model.ErrNotOrganizer
		}

		event.Judging = false
		event.Status = event.StatusAt(s.now())
		return txRepo.Save(ctx, event)
	})
}

// AddProblemStatements appends problem statements with sequential PS%03d ids.
func (s *service) AddProblemStatements(ctx context.Context, eventID string, reqs []model.ProblemStatementRequest, requesterID string) error {
	for _, req := range reqs {
		if req.Statement == "" {
			return model.ErrInvalidStatement
		}
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx)

		event, err := txRepo.GetByIDForUpdate(ctx, eventID)
		if err != nil {
			return err
		}
		if event.OrganizerID != requesterID {
			return model.ErrNotOrganizer
		}

		current, err := txRepo.CountProblemsByEvent(ctx, eventID)
		if err != nil {
			return err
		}

		for i, req := range reqs {
			problem := &model.ProblemStatement{
				ID:          s.ids.NewID(),
				EventID:     eventID,
				StatementID: fmt.Sprintf("PS%03d", int(current)+i+1),
				Statement:   req.Statement,
			}
			if err := txRepo.CreateProblem(ctx, problem); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateProblemStatement replaces the text of a problem statement.
func (s *service) UpdateProblemStatement(ctx context.Context, id string, req *model.ProblemStatementRequest, requesterID string) error {
	if req.Statement == "" {
		return model.ErrInvalidStatement
	}

	problem, err := s.repo.GetProblemByID(ctx, id)
	if err != nil {
		return err
	}

	event, err := s.repo.GetByID(ctx, problem.EventID)
	if err != nil {
		return err
	}
	if event.OrganizerID != requesterID {
		return model.ErrNotOrganizer
	}

	problem.Statement = req.Statement
	return s.repo.SaveProblem(ctx, problem)
}

// DeleteProblemStatement removes a problem statement.
func (s *service) DeleteProblemStatement(ctx context.Context, id, requesterID string) error {
	problem, err := s.repo.GetProblemByID(ctx, id)
	if err != nil {
		return err
	}

	event, err := s.repo.GetByID(ctx, problem.EventID)
	if err != nil {
		return err
	}
	if event.OrganizerID != requesterID {
		return model.ErrNotOrganizer
	}

	return s.repo.DeleteProblem(ctx, id)
}

// GetEvent returns a single event by id.
func (s *service) GetEvent(ctx context.Context, id string) (*model.EventResponse, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, event)
}

// GetEventByShortCode returns a single event by its share code.
func (s *service) GetEventByShortCode(ctx context.Context, shortCode string) (*model.EventResponse, error) {
	event, err := s.repo.GetByShortCode(ctx, shortCode)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, event)
}

// ListEvents returns all events.
func (s *service) ListEvents(ctx context.Context) ([]model.EventResponse, error) {
	events, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, events)
}

// ListEventsByOrganizer returns all events owned by the organizer.
func (s *service) ListEventsByOrganizer(ctx context.Context, organizerID string) ([]model.EventResponse, error) {
	events, err := s.repo.GetByOrganizer(ctx, organizerID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, events)
}

// ListEventsByParticipant returns all events the user has registered for.
func (s *service) ListEventsByParticipant(ctx context.Context, userID string) ([]model.EventResponse, error) {
	ids, err := s.repo.GetIDsByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}
	events, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, events)
}

func (s *service) toResponse(ctx context.Context, event *model.Event) (*model.EventResponse, error) {
	problems, err := s.repo.GetProblemsByEvent(ctx, event.ID)
	if err != nil {
		return nil, err
	}

	status := event.Status
	if status == "" {
		status = event.StatusAt(s.now())
	}

	return &model.EventResponse{
		ID:                    event.ID,
		ShortCode:             event.ShortCode,
		Name:                  event.Name,
		Description:           event.Description,
		Theme:                 event.Theme,
		ContactEmail:          event.ContactEmail,
		Prizes:                event.Prizes,
		Rules:                 event.Rules,
		Venue:                 event.Venue,
		IsVirtual:             event.IsVirtual,
		Location:              event.Location,
		StartDate:             event.StartDate,
		EndDate:               event.EndDate,
		RegistrationStartDate: event.RegistrationStartDate,
		RegistrationEndDate:   event.RegistrationEndDate,
		ResultsDate:           event.ResultsDate,
		Judging:               event.Judging,
		MaxParticipants:       event.MaxParticipants,
		TeamSize:              event.TeamSize,
		Status:                status,
		OrganizerID:           event.OrganizerID,
		ProblemStatements:     problems,
	}, nil
}

func (s *service) toResponses(ctx context.Context, events []model.Event) ([]model.EventResponse, error) {
	responses := make([]model.EventResponse, 0, len(events))
	for i := range events {
		resp, err := s.toResponse(ctx, &events[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}
