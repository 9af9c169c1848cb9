// Package model provides data transfer objects for the statistics module.
package model

// RegistrationStatistics represents registration counts for an event.
type RegistrationStatistics struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// TeamStatistics represents team-level aggregates for an event.
type TeamStatistics struct {
	Total          int     `json:"total"`
	Submitted      int     `json:"submitted"`
	AverageSize    float64 `json:"average_size"`
	AverageScore   float64 `json:"average_score"`
	TopScore       float64 `json:"top_score"`
	TopTeamID      string  `json:"top_team_id,omitempty"`
	TopTeamName    string  `json:"top_team_name,omitempty"`
	ProblemsChosen int     `json:"problems_chosen"`
}

// EventStatistics represents aggregated statistics for a single event.
type EventStatistics struct {
	EventID       string                 `json:"event_id"`
	EventName     string                 `json:"event_name"`
	Status        string                 `json:"status"`
	Registrations RegistrationStatistics `json:"registrations"`
	Teams         TeamStatistics         `json:"teams"`
}

// EventStatisticsResponse represents the response for event statistics.
type EventStatisticsResponse struct {
	Statistics EventStatistics `json:"statistics"`
}
