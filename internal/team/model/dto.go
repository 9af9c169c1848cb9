package model

import "time"

// CreateTeamRequest represents the request to create a team.
type CreateTeamRequest struct {
	UserID    string `json:"user_id" binding:"required"`
	Username  string `json:"username"`
	UserEmail string `json:"user_email"`
	Name      string `json:"name" binding:"required"`
}

// InviteRequest represents an invitation or a join request payload.
type InviteRequest struct {
	UserID    string `json:"user_id" binding:"required"`
	Username  string `json:"username"`
	UserEmail string `json:"user_email"`
}

// RespondRequest represents an invited or requesting user's answer.
type RespondRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Accept bool   `json:"accept"`
}

// TransferRequest represents a leadership transfer payload.
type TransferRequest struct {
	NewLeaderID string `json:"new_leader_id" binding:"required"`
}

// SelectProblemRequest represents the leader's problem statement choice.
type SelectProblemRequest struct {
	ProblemStatementID string `json:"problem_statement_id" binding:"required"`
}

// SubmissionRequest represents a project submission.
type SubmissionRequest struct {
	RepoURL string `json:"repo_url" binding:"required"`
	DemoURL string `json:"demo_url"`
}

// ScoreRequest represents a score update from the external scorer.
type ScoreRequest struct {
	Score float64 `json:"score"`
}

// TeamMemberResponse represents a team member in API responses.
type TeamMemberResponse struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Username  string           `json:"username"`
	UserEmail string           `json:"user_email"`
	Role      TeamRole         `json:"role"`
	Status    TeamMemberStatus `json:"status"`
}

// TeamResponse represents a team with its members in API responses.
type TeamResponse struct {
	ID                 string               `json:"id"`
	ShortCode          string               `json:"short_code"`
	Name               string               `json:"name"`
	EventID            string               `json:"event_id"`
	ProblemStatementID string               `json:"problem_statement_id"`
	RepoURL            string               `json:"repo_url"`
	DemoURL            string               `json:"demo_url"`
	SubmissionTime     *time.Time           `json:"submission_time"`
	Score              float64              `json:"score"`
	LeaderID           string               `json:"leader_id"`
	Members            []TeamMemberResponse `json:"members"`
}

// CreateTeamResponse carries the identifiers of a newly created team.
type CreateTeamResponse struct {
	ID        string `json:"id"`
	ShortCode string `json:"short_code"`
}

// EvaluationContext is the read-only projection consumed by the external scorer.
type EvaluationContext struct {
	TeamID           string `json:"team_id"`
	TeamName         string `json:"team_name"`
	RepoURL          string `json:"repo_url"`
	ProblemStatement string `json:"problem_statement,omitempty"`
}
