// Package model provides domain models and DTOs for the team module.
package model

import (
	"time"

	"gorm.io/gorm"
)

// Team represents a group of accepted participants collaborating under one
// leader. Matches the teams table schema. LeaderID always references the
// single member carrying RoleLeader; every mutation keeps the two in sync.
type Team struct {
	ID                 string     `gorm:"primaryKey;column:id;type:varchar(64)"                              json:"id"`
	ShortCode          string     `gorm:"column:short_code;type:varchar(16);uniqueIndex"                     json:"short_code"`
	Name               string     `gorm:"column:name;type:varchar(255);not null"                             json:"name"`
	EventID            string     `gorm:"column:event_id;type:varchar(64);not null;index:idx_teams_event_id" json:"event_id"`
	ProblemStatementID string     `gorm:"column:problem_statement_id;type:varchar(64)"                       json:"problem_statement_id"`
	RepoURL            string     `gorm:"column:repo_url;type:text"                                          json:"repo_url"`
	DemoURL            string     `gorm:"column:demo_url;type:text"                                          json:"demo_url"`
	SubmissionTime     *time.Time `gorm:"column:submission_time;type:timestamptz"                            json:"submission_time"`
	Score              float64    `gorm:"column:score;not null;default:0"                                    json:"score"`
	LeaderID           string     `gorm:"column:leader_id;type:varchar(64);not null"                         json:"leader_id"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;not null;default:CURRENT_TIMESTAMP" json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;not null;default:CURRENT_TIMESTAMP" json:"-"`
}

// TableName specifies the table name for GORM.
func (Team) TableName() string {
	return "teams"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (t *Team) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return nil
}
