package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

// A fully dated event spanning one week of registration, a two-day run and
// results three days after the end.
func weekLongEvent() *Event {
	return &Event{
		ID:                    "e1",
		Name:                  "Spring Hack",
		RegistrationStartDate: timePtr(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)),
		RegistrationEndDate:   timePtr(time.Date(2025, 3, 7, 23, 59, 59, 0, time.UTC)),
		StartDate:             timePtr(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)),
		EndDate:               timePtr(time.Date(2025, 3, 12, 18, 0, 0, 0, time.UTC)),
		ResultsDate:           timePtr(time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)),
		Judging:               true,
	}
}

func TestEvent_StatusAt(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Event)
		now      time.Time
		expected EventStatus
	}{
		{
			name:     "before registration opens",
			now:      time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC),
			expected: StatusUpcoming,
		},
		{
			name:     "registration window start is inclusive",
			now:      time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			expected: StatusRegistrationOpen,
		},
		{
			name:     "inside registration window",
			now:      time.Date(2025, 3, 4, 12, 0, 0, 0, time.UTC),
			expected: StatusRegistrationOpen,
		},
		{
			name:     "registration window end is inclusive",
			now:      time.Date(2025, 3, 7, 23, 59, 59, 0, time.UTC),
			expected: StatusRegistrationOpen,
		},
		{
			name:     "between registration close and start",
			now:      time.Date(2025, 3, 8, 12, 0, 0, 0, time.UTC),
			expected: StatusUpcoming,
		},
		{
			name:     "event start is inclusive",
			now:      time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
			expected: StatusOngoing,
		},
		{
			name:     "event end is inclusive",
			now:      time.Date(2025, 3, 12, 18, 0, 0, 0, time.UTC),
			expected: StatusOngoing,
		},
		{
			name:     "after end while judging",
			now:      time.Date(2025, 3, 13, 9, 0, 0, 0, time.UTC),
			expected: StatusJudging,
		},
		{
			name:     "judging finished before results date",
			mutate:   func(e *Event) { e.Judging = false },
			now:      time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
			expected: StatusResultsAnnounced,
		},
		{
			name:     "judging finished after results date",
			mutate:   func(e *Event) { e.Judging = false },
			now:      time.Date(2025, 3, 16, 9, 0, 0, 0, time.UTC),
			expected: StatusCompleted,
		},
		{
			name:     "still judging after results date",
			now:      time.Date(2025, 3, 16, 9, 0, 0, 0, time.UTC),
			expected: StatusJudging,
		},
		{
			name: "judging finished with no results date",
			mutate: func(e *Event) {
				e.Judging = false
				e.ResultsDate = nil
			},
			now:      time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			expected: StatusResultsAnnounced,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := weekLongEvent()
			if tt.mutate != nil {
				tt.mutate(event)
			}
			assert.Equal(t, tt.expected, event.StatusAt(tt.now))
		})
	}
}

func TestEvent_StatusAt_NoDates(t *testing.T) {
	event := &Event{ID: "e1", Name: "Draft"}
	assert.Equal(t, StatusUpcoming, event.StatusAt(time.Now()))
}

func TestEvent_StatusAt_OnlyEventWindow(t *testing.T) {
	event := &Event{
		ID:        "e1",
		StartDate: timePtr(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)),
		EndDate:   timePtr(time.Date(2025, 3, 12, 18, 0, 0, 0, time.UTC)),
		Judging:   true,
	}

	assert.Equal(t, StatusUpcoming, event.StatusAt(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, StatusOngoing, event.StatusAt(time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, StatusJudging, event.StatusAt(time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)))
}

// Walking a fully dated event forward in time only ever moves the status
// ahead in the lifecycle, never backwards.
func TestEvent_StatusAt_MonotonicProgression(t *testing.T) {
	event := weekLongEvent()
	event.Judging = false

	order := map[EventStatus]int{
		StatusUpcoming:         0,
		StatusRegistrationOpen: 1,
		StatusOngoing:          2,
		StatusJudging:          3,
		StatusResultsAnnounced: 4,
		StatusCompleted:        5,
	}

	start := time.Date(2025, 2, 25, 0, 0, 0, 0, time.UTC)
	previous := order[event.StatusAt(start)]
	for step := time.Hour; step <= 30*24*time.Hour; step += time.Hour {
		current := order[event.StatusAt(start.Add(step))]
		// UPCOMING recurs between registration close and event start.
		if current == 0 && previous == 1 {
			previous = 0
			continue
		}
		assert.GreaterOrEqual(t, current, previous)
		previous = current
	}
}
