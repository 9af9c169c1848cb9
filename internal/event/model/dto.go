package model

import "time"

// EventRequest represents the request to create or update an event.
type EventRequest struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	Theme        string   `json:"theme"`
	ContactEmail string   `json:"contact_email"`
	Prizes       []string `json:"prizes"`
	Rules        []string `json:"rules"`
	Venue        string   `json:"venue"`
	IsVirtual    bool     `json:"is_virtual"`
	Location     string   `json:"location"`

	StartDate             *time.Time `json:"start_date"`
	EndDate               *time.Time `json:"end_date"`
	RegistrationStartDate *time.Time `json:"registration_start_date"`
	RegistrationEndDate   *time.Time `json:"registration_end_date"`
	ResultsDate           *time.Time `json:"results_date"`

	Judging         bool `json:"judging"`
	MaxParticipants *int `json:"max_participants"`
	TeamSize        *int `json:"team_size"`
}

// ProblemStatementRequest represents the request to add or update a problem statement.
type ProblemStatementRequest struct {
	Statement string `json:"statement" binding:"required"`
}

// EventResponse represents an event in API responses.
type EventResponse struct {
	ID           string   `json:"id"`
	ShortCode    string   `json:"short_code"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Theme        string   `json:"theme"`
	ContactEmail string   `json:"contact_email"`
	Prizes       []string `json:"prizes"`
	Rules        []string `json:"rules"`
	Venue        string   `json:"venue"`
	IsVirtual    bool     `json:"is_virtual"`
	Location     string   `json:"location"`

	StartDate             *time.Time `json:"start_date"`
	EndDate               *time.Time `json:"end_date"`
	RegistrationStartDate *time.Time `json:"registration_start_date"`
	RegistrationEndDate   *time.Time `json:"registration_end_date"`
	ResultsDate           *time.Time `json:"results_date"`

	Judging         bool        `json:"judging"`
	MaxParticipants *int        `json:"max_participants"`
	TeamSize        *int        `json:"team_size"`
	Status          EventStatus `json:"status"`
	OrganizerID     string      `json:"organizer_id"`

	ProblemStatements []ProblemStatement `json:"problem_statements"`
}

// CreateEventResponse carries the identifiers of a newly created event.
type CreateEventResponse struct {
	ID        string `json:"id"`
	ShortCode string `json:"short_code"`
}
