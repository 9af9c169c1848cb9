package model

import "time"

// EventStatus is the lifecycle status of an event, derived from its time
// fields and the judging flag.
type EventStatus string

// Lifecycle statuses in their natural progression.
const (
	StatusUpcoming         EventStatus = "UPCOMING"
	StatusRegistrationOpen EventStatus = "REGISTRATION_OPEN"
	StatusOngoing          EventStatus = "ONGOING"
	StatusJudging          EventStatus = "JUDGING"
	StatusResultsAnnounced EventStatus = "RESULTS_ANNOUNCED"
	StatusCompleted        EventStatus = "COMPLETED"
)

// StatusAt computes the lifecycle status of the event at the given instant.
// Rules are checked in order and the first match wins; the function is pure
// and never touches the persisted Status field.
func (e *Event) StatusAt(now time.Time) EventStatus {
	// Before registration opens.
	if e.RegistrationStartDate != nil && now.Before(*e.RegistrationStartDate) {
		return StatusUpcoming
	}

	// Registration window, inclusive on both ends.
	if e.RegistrationStartDate != nil && e.RegistrationEndDate != nil &&
		!now.Before(*e.RegistrationStartDate) && !now.After(*e.RegistrationEndDate) {
		return StatusRegistrationOpen
	}

	// Registration closed but the event has not started yet.
	if e.StartDate != nil && now.Before(*e.StartDate) {
		return StatusUpcoming
	}

	// Event window, inclusive on both ends.
	if e.StartDate != nil && e.EndDate != nil &&
		!now.Before(*e.StartDate) && !now.After(*e.EndDate) {
		return StatusOngoing
	}

	if e.EndDate != nil && now.After(*e.EndDate) {
		if e.Judging {
			return StatusJudging
		}
		if e.ResultsDate != nil && now.After(*e.ResultsDate) {
			return StatusCompleted
		}
		return StatusResultsAnnounced
	}

	return StatusUpcoming
}
