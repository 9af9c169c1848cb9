// Package repository provides data access layer for the registration module.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	eventRepository "github.com/ehub-platform/event-service/internal/event/repository"
	"github.com/ehub-platform/event-service/internal/registration/model"
)

// Repository defines the interface for registration data access operations.
type Repository interface {
	// Create inserts a new registration; a duplicate (event, user) pair
	// surfaces as ErrAlreadyRegistered.
	Create(ctx context.Context, registration *model.Registration) error

	// GetByID finds a registration by id.
	GetByID(ctx context.Context, id string) (*model.Registration, error)

	// GetByEventAndUser finds the registration for a (event, user) pair.
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*model.Registration, error)

	// GetByEvent returns all registrations of an event.
	GetByEvent(ctx context.Context, eventID string) ([]model.Registration, error)

	// CountByEventAndStatus counts registrations of an event in a status.
	CountByEventAndStatus(ctx context.Context, eventID string, status model.RegistrationStatus) (int64, error)

	// GetEmailsByEvent returns the distinct non-empty registrant emails of an event.
	GetEmailsByEvent(ctx context.Context, eventID string) ([]string, error)

	// Save persists an existing registration.
	Save(ctx context.Context, registration *model.Registration) error

	// Delete removes a registration.
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

// New creates a new registration repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, registration *model.Registration) error {
	if err := r.db.WithContext(ctx).Create(registration).Error; err != nil {
		if eventRepository.IsDuplicateError(err) {
			return model.ErrAlreadyRegistered
		}
		return err
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*model.Registration, error) {
	var registration model.Registration
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&registration).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrRegistrationNotFound
		}
		return nil, err
	}
	return &registration, nil
}

func (r *repository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*model.Registration, error) {
	var registration model.Registration
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&registration).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrRegistrationNotFound
		}
		return nil, err
	}
	return &registration, nil
}

func (r *repository) GetByEvent(ctx context.Context, eventID string) ([]model.Registration, error) {
	var registrations []model.Registration
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("registration_time ASC").
		Find(&registrations).Error
	if err != nil {
		return nil, err
	}
	if registrations == nil {
		registrations = []model.Registration{}
	}
	return registrations, nil
}

func (r *repository) CountByEventAndStatus(ctx context.Context, eventID string, status model.RegistrationStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Registration{}).
		Where("event_id = ? AND status = ?", eventID, status).
		Count(&count).Error
	return count, err
}

func (r *repository) GetEmailsByEvent(ctx context.Context, eventID string) ([]string, error) {
	var emails []string
	err := r.db.WithContext(ctx).
		Model(&model.Registration{}).
		Distinct("user_email").
		Where("event_id = ? AND user_email IS NOT NULL AND user_email <> ''", eventID).
		Pluck("user_email", &emails).Error
	if err != nil {
		return nil, err
	}
	return emails, nil
}

func (r *repository) Save(ctx context.Context, registration *model.Registration) error {
	return r.db.WithContext(ctx).Save(registration).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Registration{}).Error
}
