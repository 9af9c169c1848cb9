// Package model provides domain models and DTOs for the event module.
package model

import (
	"time"

	"gorm.io/gorm"
)

// Event represents a time-boxed competition.
// Matches the events table schema.
type Event struct {
	ID           string `gorm:"primaryKey;column:id;type:varchar(64)"            json:"id"`
	ShortCode    string `gorm:"column:short_code;type:varchar(16);uniqueIndex"   json:"short_code"`
	Name         string `gorm:"column:name;type:varchar(255);not null"           json:"name"`
	Description  string `gorm:"column:description;type:text"                     json:"description"`
	Theme        string `gorm:"column:theme;type:varchar(255)"                   json:"theme"`
	ContactEmail string `gorm:"column:contact_email;type:varchar(255)"          json:"contact_email"`

	Prizes []string `gorm:"column:prizes;type:text;serializer:json" json:"prizes"`
	Rules  []string `gorm:"column:rules;type:text;serializer:json"  json:"rules"`

	Venue     string `gorm:"column:venue;type:varchar(255)"              json:"venue"`
	IsVirtual bool   `gorm:"column:is_virtual;not null;default:false"    json:"is_virtual"`
	Location  string `gorm:"column:location;type:varchar(255)"           json:"location"`

	StartDate             *time.Time `gorm:"column:start_date;type:timestamptz"              json:"start_date"`
	EndDate               *time.Time `gorm:"column:end_date;type:timestamptz"                json:"end_date"`
	RegistrationStartDate *time.Time `gorm:"column:registration_start_date;type:timestamptz" json:"registration_start_date"`
	RegistrationEndDate   *time.Time `gorm:"column:registration_end_date;type:timestamptz"   json:"registration_end_date"`
	ResultsDate           *time.Time `gorm:"column:results_date;type:timestamptz"            json:"results_date"`

	// Judging is true while results are pending manual or AI evaluation.
	Judging bool `gorm:"column:judging;not null;default:true" json:"judging"`

	MaxParticipants *int `gorm:"column:max_participants" json:"max_participants"`
	TeamSize        *int `gorm:"column:team_size"        json:"team_size"`

	// Status is the last official lifecycle status, persisted so the
	// transition scheduler is stateless across restarts. Empty until the
	// event was first evaluated.
	Status EventStatus `gorm:"column:status;type:varchar(32)" json:"status"`

	OrganizerID string `gorm:"column:organizer_id;type:varchar(64);not null;index:idx_events_organizer_id" json:"organizer_id"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;not null;default:CURRENT_TIMESTAMP" json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;not null;default:CURRENT_TIMESTAMP" json:"-"`
}

// TableName specifies the table name for GORM.
func (Event) TableName() string {
	return "events"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (e *Event) BeforeUpdate(tx *gorm.DB) error {
	e.UpdatedAt = time.Now()
	return nil
}
