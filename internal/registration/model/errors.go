package model

import "errors"

var (
	// ErrAlreadyRegistered indicates a registration already exists for (event, user).
	ErrAlreadyRegistered = errors.New("user is already registered for this event")
	// ErrRegistrationNotFound indicates that the requested registration does not exist.
	ErrRegistrationNotFound = errors.New("registration not found")
	// ErrRegistrationClosed indicates the registration window has passed.
	ErrRegistrationClosed = errors.New("registration for this event has closed")
	// ErrCapacityReached indicates the event's approved-participant limit has been reached.
	ErrCapacityReached = errors.New("event capacity reached")
	// ErrInvalidStatus indicates an unknown registration status value.
	ErrInvalidStatus = errors.New("invalid registration status")
	// ErrMissingUserID indicates the request lacks a user id.
	ErrMissingUserID = errors.New("user id is required")
)
