// Package repository provides data access layer for the event module.
package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ehub-platform/event-service/internal/event/model"
)

// Repository defines the interface for event data access operations.
type Repository interface {
	// Create inserts a new event.
	Create(ctx context.Context, event *model.Event) error

	// GetByID finds an event by id.
	GetByID(ctx context.Context, id string) (*model.Event, error)

	// GetByIDForUpdate finds an event by id and locks its row for the
	// duration of the surrounding transaction.
	GetByIDForUpdate(ctx context.Context, id string) (*model.Event, error)

	// GetByShortCode finds an event by its share code.
	GetByShortCode(ctx context.Context, shortCode string) (*model.Event, error)

	// GetAll returns all events.
	GetAll(ctx context.Context) ([]model.Event, error)

	// GetByOrganizer returns all events owned by the organizer.
	GetByOrganizer(ctx context.Context, organizerID string) ([]model.Event, error)

	// GetByIDs returns the events whose ids are in the given set.
	GetByIDs(ctx context.Context, ids []string) ([]model.Event, error)

	// GetIDsByParticipant returns ids of events the user has registered for.
	GetIDsByParticipant(ctx context.Context, userID string) ([]string, error)

	// Save persists all fields of an existing event.
	Save(ctx context.Context, event *model.Event) error

	// UpdateStatus persists only the official lifecycle status.
	UpdateStatus(ctx context.Context, id string, status model.EventStatus) error

	// Delete removes an event; child rows cascade at the database level.
	Delete(ctx context.Context, id string) error

	// CreateProblem inserts a new problem statement.
	CreateProblem(ctx context.Context, problem *model.ProblemStatement) error

	// GetProblemByID finds a problem statement by id.
	GetProblemByID(ctx context.Context, id string) (*model.ProblemStatement, error)

	// GetProblemsByEvent returns all problem statements of an event.
	GetProblemsByEvent(ctx context.Context, eventID string) ([]model.ProblemStatement, error)

	// CountProblemsByEvent returns the number of problem statements of an event.
	CountProblemsByEvent(ctx context.Context, eventID string) (int64, error)

	// SaveProblem persists an existing problem statement.
	SaveProblem(ctx context.Context, problem *model.ProblemStatement) error

	// DeleteProblem removes a problem statement.
	DeleteProblem(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

// New creates a new event repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

// IsDuplicateError reports whether err is a unique constraint violation.
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}

func (r *repository) Create(ctx context.Context, event *model.Event) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		if IsDuplicateError(err) {
			return model.ErrEventCodeExists
		}
		return err
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	var event model.Event
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

// GetByIDForUpdate serializes concurrent capacity and membership checks on
// the same event. The locking clause is postgres-only; sqlite (used in unit
// tests) has a single writer and no row locks.
func (r *repository) GetByIDForUpdate(ctx context.Context, id string) (*model.Event, error) {
	q := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var event model.Event
	if err := q.Where("id = ?", id).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *repository) GetByShortCode(ctx context.Context, shortCode string) (*model.Event, error) {
	var event model.Event
	err := r.db.WithContext(ctx).
		Where("short_code = ?", shortCode).
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *repository) GetAll(ctx context.Context) ([]model.Event, error) {
	var events []model.Event
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *repository) GetByOrganizer(ctx context.Context, organizerID string) ([]model.Event, error) {
	var events []model.Event
	err := r.db.WithContext(ctx).
		Where("organizer_id = ?", organizerID).
		Order("created_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *repository) GetByIDs(ctx context.Context, ids []string) ([]model.Event, error) {
	if len(ids) == 0 {
		return []model.Event{}, nil
	}
	var events []model.Event
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("created_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *repository) GetIDsByParticipant(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Table("event_registrations").
		Where("user_id = ?", userID).
		Pluck("event_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *repository) Save(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status model.EventStatus) error {
	return r.db.WithContext(ctx).
		Model(&model.Event{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Event{}).Error
}

func (r *repository) CreateProblem(ctx context.Context, problem *model.ProblemStatement) error {
	return r.db.WithContext(ctx).Create(problem).Error
}

func (r *repository) GetProblemByID(ctx context.Context, id string) (*model.ProblemStatement, error) {
	var problem model.ProblemStatement
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&problem).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrProblemNotFound
		}
		return nil, err
	}
	return &problem, nil
}

func (r *repository) GetProblemsByEvent(ctx context.Context, eventID string) ([]model.ProblemStatement, error) {
	var problems []model.ProblemStatement
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("statement_id ASC").
		Find(&problems).Error
	if err != nil {
		return nil, err
	}
	if problems == nil {
		problems = []model.ProblemStatement{}
	}
	return problems, nil
}

func (r *repository) CountProblemsByEvent(ctx context.Context, eventID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ProblemStatement{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

func (r *repository) SaveProblem(ctx context.Context, problem *model.ProblemStatement) error {
	return r.db.WithContext(ctx).Save(problem).Error
}

func (r *repository) DeleteProblem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ProblemStatement{}).Error
}
