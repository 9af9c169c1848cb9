// Package repository provides data access layer for the statistics module.
package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ehub-platform/event-service/internal/statistics/model"
)

// Repository defines the interface for statistics data access operations.
type Repository interface {
	// GetRegistrationStatistics returns registration counts for an event.
	GetRegistrationStatistics(ctx context.Context, eventID string) (*model.RegistrationStatistics, error)

	// GetTeamStatistics returns team-level aggregates for an event.
	GetTeamStatistics(ctx context.Context, eventID string) (*model.TeamStatistics, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new statistics repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

// GetRegistrationStatistics returns registration counts for an event.
func (r *repository) GetRegistrationStatistics(ctx context.Context, eventID string) (*model.RegistrationStatistics, error) {
	var result struct {
		Total    int64 `gorm:"column:total"`
		Pending  int64 `gorm:"column:pending"`
		Approved int64 `gorm:"column:approved"`
		Rejected int64 `gorm:"column:rejected"`
	}

	err := r.db.WithContext(ctx).
		Table("event_registrations").
		Select(`
			COUNT(*) as total,
			SUM(CASE WHEN status = 'PENDING' THEN 1 ELSE 0 END) as pending,
			SUM(CASE WHEN status = 'APPROVED' THEN 1 ELSE 0 END) as approved,
			SUM(CASE WHEN status = 'REJECTED' THEN 1 ELSE 0 END) as rejected
		`).
		Where("event_id = ?", eventID).
		Scan(&result).Error

	if err != nil {
		r.logger.Errorw("GetRegistrationStatistics database error", "event_id", eventID, "error", err)
		return nil, err
	}

	return &model.RegistrationStatistics{
		Total:    int(result.Total),
		Pending:  int(result.Pending),
		Approved: int(result.Approved),
		Rejected: int(result.Rejected),
	}, nil
}

// GetTeamStatistics returns team-level aggregates for an event. Averages and
// the top score consider only teams that have submitted a repository.
func (r *repository) GetTeamStatistics(ctx context.Context, eventID string) (*model.TeamStatistics, error) {
	var result struct {
		Total          int64   `gorm:"column:total"`
		Submitted      int64   `gorm:"column:submitted"`
		AverageSize    float64 `gorm:"column:average_size"`
		AverageScore   float64 `gorm:"column:average_score"`
		TopScore       float64 `gorm:"column:top_score"`
		ProblemsChosen int64   `gorm:"column:problems_chosen"`
	}

	err := r.db.WithContext(ctx).
		Table("teams").
		Select(`
			COUNT(*) as total,
			SUM(CASE WHEN teams.repo_url <> '' THEN 1 ELSE 0 END) as submitted,
			COALESCE(AVG(member_counts.member_count), 0) as average_size,
			COALESCE(AVG(CASE WHEN teams.repo_url <> '' THEN teams.score END), 0) as average_score,
			COALESCE(MAX(CASE WHEN teams.repo_url <> '' THEN teams.score END), 0) as top_score,
			COUNT(DISTINCT CASE WHEN teams.problem_statement_id <> '' THEN teams.problem_statement_id END) as problems_chosen
		`).
		Joins(`
			LEFT JOIN (
				SELECT team_id, CAST(COUNT(*) AS REAL) as member_count
				FROM team_members
				WHERE status = 'ACCEPTED'
				GROUP BY team_id
			) member_counts ON teams.id = member_counts.team_id
		`).
		Where("teams.event_id = ?", eventID).
		Scan(&result).Error

	if err != nil {
		r.logger.Errorw("GetTeamStatistics database error", "event_id", eventID, "error", err)
		return nil, err
	}

	stats := &model.TeamStatistics{
		Total:          int(result.Total),
		Submitted:      int(result.Submitted),
		AverageSize:    result.AverageSize,
		AverageScore:   result.AverageScore,
		TopScore:       result.TopScore,
		ProblemsChosen: int(result.ProblemsChosen),
	}

	if stats.Submitted > 0 {
		var top struct {
			ID   string `gorm:"column:id"`
			Name string `gorm:"column:name"`
		}
		err := r.db.WithContext(ctx).
			Table("teams").
			Select("id, name").
			Where("event_id = ? AND repo_url <> ''", eventID).
			Order("score DESC, name ASC").
			Limit(1).
			Scan(&top).Error
		if err != nil {
			r.logger.Errorw("GetTeamStatistics top team query error", "event_id", eventID, "error", err)
			return nil, err
		}
		stats.TopTeamID = top.ID
		stats.TopTeamName = top.Name
	}

	return stats, nil
}
