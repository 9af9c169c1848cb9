// Package model provides domain models and DTOs for the registration module.
package model

import "time"

// RegistrationStatus is the organizer-controlled state of a registration.
type RegistrationStatus string

// Registration statuses.
const (
	RegistrationPending  RegistrationStatus = "PENDING"
	RegistrationApproved RegistrationStatus = "APPROVED"
	RegistrationRejected RegistrationStatus = "REJECTED"
)

// Valid reports whether s is a known registration status.
func (s RegistrationStatus) Valid() bool {
	switch s {
	case RegistrationPending, RegistrationApproved, RegistrationRejected:
		return true
	}
	return false
}

// Registration represents a user's request to participate in an event.
// Matches the event_registrations table schema; (event_id, user_id) is
// unique at the database level.
type Registration struct {
	ID               string             `gorm:"primaryKey;column:id;type:varchar(64)"                                                  json:"id"`
	EventID          string             `gorm:"column:event_id;type:varchar(64);not null;uniqueIndex:uq_event_registrations_event_user" json:"event_id"`
	UserID           string             `gorm:"column:user_id;type:varchar(64);not null;uniqueIndex:uq_event_registrations_event_user"  json:"user_id"`
	Username         string             `gorm:"column:username;type:varchar(255)"                                                      json:"username"`
	UserEmail        string             `gorm:"column:user_email;type:varchar(255)"                                                    json:"user_email"`
	Status           RegistrationStatus `gorm:"column:status;type:varchar(16);not null"                                                json:"status"`
	RegistrationTime time.Time          `gorm:"column:registration_time;type:timestamptz;not null"                                     json:"registration_time"`
}

// TableName specifies the table name for GORM.
func (Registration) TableName() string {
	return "event_registrations"
}
