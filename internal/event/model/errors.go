package model

import "errors"

var (
	// ErrEventNotFound indicates that the requested event does not exist.
	ErrEventNotFound = errors.New("event not found")
	// ErrEventCodeExists indicates a short code collision on insert.
	ErrEventCodeExists = errors.New("event short code already exists")
	// ErrNotOrganizer indicates the caller is not the organizer of the event.
	ErrNotOrganizer = errors.New("only the event organizer can perform this action")
	// ErrProblemNotFound indicates that the requested problem statement does not exist.
	ErrProblemNotFound = errors.New("problem statement not found")
	// ErrInvalidEventName indicates that the provided event name is invalid (e.g., empty).
	ErrInvalidEventName = errors.New("invalid event name")
	// ErrInvalidStatement indicates that the provided problem statement text is empty.
	ErrInvalidStatement = errors.New("problem statement text cannot be empty")
)
