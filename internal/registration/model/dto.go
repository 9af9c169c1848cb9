package model

import "time"

// RegisterRequest represents the request to register for an event.
type RegisterRequest struct {
	UserID    string `json:"user_id" binding:"required"`
	Username  string `json:"username"`
	UserEmail string `json:"user_email"`
}

// SetStatusRequest represents the organizer's approval or rejection.
type SetStatusRequest struct {
	Status RegistrationStatus `json:"status" binding:"required"`
}

// RegistrationResponse represents a registration in API responses.
type RegistrationResponse struct {
	ID               string             `json:"id"`
	EventID          string             `json:"event_id"`
	UserID           string             `json:"user_id"`
	Username         string             `json:"username"`
	UserEmail        string             `json:"user_email"`
	Status           RegistrationStatus `json:"status"`
	RegistrationTime time.Time          `json:"registration_time"`
}
