// Package repository provides data access layer for the team module.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	eventRepository "github.com/ehub-platform/event-service/internal/event/repository"
	"github.com/ehub-platform/event-service/internal/team/model"
)

// Repository defines the interface for team data access operations.
type Repository interface {
	// CreateTeam inserts a new team.
	CreateTeam(ctx context.Context, team *model.Team) error

	// GetTeamByID finds a team by id.
	GetTeamByID(ctx context.Context, id string) (*model.Team, error)

	// GetTeamByShortCode finds a team by its share code.
	GetTeamByShortCode(ctx context.Context, shortCode string) (*model.Team, error)

	// GetTeamsByEvent returns all teams of an event.
	GetTeamsByEvent(ctx context.Context, eventID string) ([]model.Team, error)

	// SaveTeam persists an existing team.
	SaveTeam(ctx context.Context, team *model.Team) error

	// DeleteTeam removes a team row.
	DeleteTeam(ctx context.Context, id string) error

	// CreateMember inserts a membership row; a duplicate (team, user) pair
	// surfaces as ErrAlreadyMember.
	CreateMember(ctx context.Context, member *model.TeamMember) error

	// GetMember finds the membership row for a (team, user) pair.
	GetMember(ctx context.Context, teamID, userID string) (*model.TeamMember, error)

	// GetMembersByTeam returns all membership rows of a team.
	GetMembersByTeam(ctx context.Context, teamID string) ([]model.TeamMember, error)

	// CountMembersByStatus counts team members whose status is in statuses.
	CountMembersByStatus(ctx context.Context, teamID string, statuses []model.TeamMemberStatus) (int64, error)

	// HasAcceptedMembershipInEvent reports whether the user already holds an
	// ACCEPTED membership in any team of the event.
	HasAcceptedMembershipInEvent(ctx context.Context, eventID, userID string) (bool, error)

	// SaveMember persists an existing membership row.
	SaveMember(ctx context.Context, member *model.TeamMember) error

	// DeleteMember removes a membership row.
	DeleteMember(ctx context.Context, id string) error

	// DeleteMembersByTeam removes all membership rows of a team.
	DeleteMembersByTeam(ctx context.Context, teamID string) error
}

type repository struct {
	db *gorm.DB
}

// New creates a new team repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateTeam(ctx context.Context, team *model.Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

func (r *repository) GetTeamByID(ctx context.Context, id string) (*model.Team, error) {
	var team model.Team
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

func (r *repository) GetTeamByShortCode(ctx context.Context, shortCode string) (*model.Team, error) {
	var team model.Team
	err := r.db.WithContext(ctx).
		Where("short_code = ?", shortCode).
		First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

func (r *repository) GetTeamsByEvent(ctx context.Context, eventID string) ([]model.Team, error) {
	var teams []model.Team
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	if teams == nil {
		teams = []model.Team{}
	}
	return teams, nil
}

func (r *repository) SaveTeam(ctx context.Context, team *model.Team) error {
	return r.db.WithContext(ctx).Save(team).Error
}

func (r *repository) DeleteTeam(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Team{}).Error
}

func (r *repository) CreateMember(ctx context.Context, member *model.TeamMember) error {
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		if eventRepository.IsDuplicateError(err) {
			return model.ErrAlreadyMember
		}
		return err
	}
	return nil
}

func (r *repository) GetMember(ctx context.Context, teamID, userID string) (*model.TeamMember, error) {
	var member model.TeamMember
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrMembershipNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *repository) GetMembersByTeam(ctx context.Context, teamID string) ([]model.TeamMember, error) {
	var members []model.TeamMember
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("user_id ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []model.TeamMember{}
	}
	return members, nil
}

func (r *repository) CountMembersByStatus(ctx context.Context, teamID string, statuses []model.TeamMemberStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.TeamMember{}).
		Where("team_id = ? AND status IN ?", teamID, statuses).
		Count(&count).Error
	return count, err
}

func (r *repository) HasAcceptedMembershipInEvent(ctx context.Context, eventID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.TeamMember{}).
		Joins("JOIN teams ON teams.id = team_members.team_id").
		Where("teams.event_id = ? AND team_members.user_id = ? AND team_members.status = ?",
			eventID, userID, model.MemberAccepted).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) SaveMember(ctx context.Context, member *model.TeamMember) error {
	return r.db.WithContext(ctx).Save(member).Error
}

func (r *repository) DeleteMember(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.TeamMember{}).Error
}

func (r *repository) DeleteMembersByTeam(ctx context.Context, teamID string) error {
	return r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Delete(&model.TeamMember{}).Error
}
