package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	eventModel "github.com/ehub-platform/event-service/internal/event/model"
	registrationModel "github.com/ehub-platform/event-service/internal/registration/model"
	teamModel "github.com/ehub-platform/event-service/internal/team/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&eventModel.Event{},
		&registrationModel.Registration{},
		&teamModel.Team{},
		&teamModel.TeamMember{},
	)
	require.NoError(t, err)

	require.NoError(t, db.Create(&eventModel.Event{
		ID: "event-1", ShortCode: "SPRING25", Name: "Spring Hack", OrganizerID: "org-1",
	}).Error)

	return db
}

func seedRegistration(t *testing.T, db *gorm.DB, userID string, status registrationModel.RegistrationStatus) {
	require.NoError(t, db.Create(&registrationModel.Registration{
		ID:               "reg-" + userID,
		EventID:          "event-1",
		UserID:           userID,
		Status:           status,
		RegistrationTime: time.Now(),
	}).Error)
}

func seedTeam(t *testing.T, db *gorm.DB, id, name, repoURL, problemID string, score float64, acceptedMembers int) {
	require.NoError(t, db.Create(&teamModel.Team{
		ID:                 id,
		ShortCode:          "TC" + id,
		Name:               name,
		EventID:            "event-1",
		RepoURL:            repoURL,
		ProblemStatementID: problemID,
		Score:              score,
		LeaderID:           "leader-" + id,
	}).Error)

	for i := 0; i < acceptedMembers; i++ {
		require.NoError(t, db.Create(&teamModel.TeamMember{
			ID:     fmt.Sprintf("member-%s-%d", id, i),
			TeamID: id,
			UserID: fmt.Sprintf("user-%s-%d", id, i),
			Role:   teamModel.RoleMember,
			Status: teamModel.MemberAccepted,
		}).Error)
	}
}

func TestRepository_GetRegistrationStatistics(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := New(db, zap.NewNop().Sugar())

	seedRegistration(t, db, "u1", registrationModel.RegistrationPending)
	seedRegistration(t, db, "u2", registrationModel.RegistrationApproved)
	seedRegistration(t, db, "u3", registrationModel.RegistrationApproved)
	seedRegistration(t, db, "u4", registrationModel.RegistrationRejected)

	stats, err := repo.GetRegistrationStatistics(ctx, "event-1")
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 2, stats.Approved)
	assert.Equal(t, 1, stats.Rejected)
}

func TestRepository_GetRegistrationStatistics_Empty(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := New(db, zap.NewNop().Sugar())

	stats, err := repo.GetRegistrationStatistics(ctx, "event-1")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Total)
}

func TestRepository_GetTeamStatistics(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := New(db, zap.NewNop().Sugar())

	seedTeam(t, db, "t1", "Gophers", "https://repo/1", "ps-1", 80, 2)
	seedTeam(t, db, "t2", "Rustaceans", "https://repo/2", "ps-2", 90, 4)
	seedTeam(t, db, "t3", "Lurkers", "", "", 0, 2)

	stats, err := repo.GetTeamStatistics(ctx, "event-1")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Submitted)
	assert.InDelta(t, (2.0+4.0+2.0)/3.0, stats.AverageSize, 0.001)
	assert.InDelta(t, 85.0, stats.AverageScore, 0.001)
	assert.Equal(t, 90.0, stats.TopScore)
	assert.Equal(t, "t2", stats.TopTeamID)
	assert.Equal(t, "Rustaceans", stats.TopTeamName)
	assert.Equal(t, 2, stats.ProblemsChosen)
}

func TestRepository_GetTeamStatistics_NoTeams(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := New(db, zap.NewNop().Sugar())

	stats, err := repo.GetTeamStatistics(ctx, "event-1")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0, stats.Submitted)
	assert.Empty(t, stats.TopTeamID)
}
