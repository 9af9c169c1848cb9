//go:build integration
// +build integration

package integration

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	postgresDriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ehub-platform/event-service/internal/database/migrate"
	eventModel "github.com/ehub-platform/event-service/internal/event/model"
	eventRepository "github.com/ehub-platform/event-service/internal/event/repository"
	"github.com/ehub-platform/event-service/internal/idgen"
	"github.com/ehub-platform/event-service/internal/notifier"
	registrationModel "github.com/ehub-platform/event-service/internal/registration/model"
	registrationRepository "github.com/ehub-platform/event-service/internal/registration/repository"
	registrationService "github.com/ehub-platform/event-service/internal/registration/service"
	teamModel "github.com/ehub-platform/event-service/internal/team/model"
	teamRepository "github.com/ehub-platform/event-service/internal/team/repository"
	teamService "github.com/ehub-platform/event-service/internal/team/service"
)

func setupPostgres(t *testing.T) *gorm.DB {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("event_service_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start PostgreSQL container")
	t.Cleanup(func() {
		_ = pgContainer.Terminate(ctx)
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgresDriver.Open(connStr), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	os.Setenv("MIGRATIONS_PATH", "../../migrations")
	t.Cleanup(func() { os.Unsetenv("MIGRATIONS_PATH") })
	require.NoError(t, migrate.Up(db))

	return db
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func intPtr(i int) *int {
	return &i
}

func seedOpenEvent(t *testing.T, db *gorm.DB, maxParticipants *int) {
	now := time.Now().UTC()
	require.NoError(t, db.Create(&eventModel.Event{
		ID:                    "event-1",
		ShortCode:             "SPRING25",
		Name:                  "Spring Hack",
		OrganizerID:           "org-1",
		RegistrationStartDate: timePtr(now.Add(-time.Hour)),
		RegistrationEndDate:   timePtr(now.Add(time.Hour)),
		StartDate:             timePtr(now.Add(24 * time.Hour)),
		EndDate:               timePtr(now.Add(48 * time.Hour)),
		Judging:               true,
		Status:                eventModel.StatusRegistrationOpen,
		MaxParticipants:       maxParticipants,
	}).Error)
}

func approveUser(t *testing.T, db *gorm.DB, userID string) {
	require.NoError(t, db.Create(&registrationModel.Registration{
		ID:               "reg-" + userID,
		EventID:          "event-1",
		UserID:           userID,
		Status:           registrationModel.RegistrationApproved,
		RegistrationTime: time.Now(),
	}).Error)
}

// Two concurrent registrations for the same (event, user) must produce
// exactly one row; the loser sees the duplicate as a conflict.
func TestConcurrentDuplicateRegistration(t *testing.T) {
	db := setupPostgres(t)
	seedOpenEvent(t, db, nil)

	svc := registrationService.New(
		registrationRepository.New(db),
		eventRepository.New(db),
		db,
		idgen.NewUUID(),
		notifier.Nop{},
		zap.NewNop().Sugar(),
	)

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Register(context.Background(), "event-1",
				&registrationModel.RegisterRequest{UserID: "user-1"})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, registrationModel.ErrAlreadyRegistered)
		}
	}
	assert.Equal(t, 1, succeeded)

	var count int64
	require.NoError(t, db.Model(&registrationModel.Registration{}).
		Where("event_id = ? AND user_id = ?", "event-1", "user-1").
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

// Concurrent approvals must never push the approved count past
// maxParticipants; the event row lock serializes them.
func TestConcurrentApprovalsRespectCapacity(t *testing.T) {
	db := setupPostgres(t)
	seedOpenEvent(t, db, intPtr(2))

	regSvc := registrationService.New(
		registrationRepository.New(db),
		eventRepository.New(db),
		db,
		idgen.NewUUID(),
		notifier.Nop{},
		zap.NewNop().Sugar(),
	)

	const participants = 6
	regIDs := make([]string, participants)
	for i := 0; i < participants; i++ {
		resp, err := regSvc.Register(context.Background(), "event-1",
			&registrationModel.RegisterRequest{UserID: fmt.Sprintf("user-%d", i)})
		require.NoError(t, err)
		regIDs[i] = resp.ID
	}

	var wg sync.WaitGroup
	errs := make([]error, participants)
	for i, regID := range regIDs {
		wg.Add(1)
		go func(i int, regID string) {
			defer wg.Done()
			errs[i] = regSvc.SetStatus(context.Background(), regID,
				registrationModel.RegistrationApproved, "org-1")
		}(i, regID)
	}
	wg.Wait()

	approvals := 0
	for _, err := range errs {
		if err == nil {
			approvals++
		} else {
			assert.ErrorIs(t, err, registrationModel.ErrCapacityReached)
		}
	}
	assert.Equal(t, 2, approvals)

	var approved int64
	require.NoError(t, db.Model(&registrationModel.Registration{}).
		Where("event_id = ? AND status = ?", "event-1", registrationModel.RegistrationApproved).
		Count(&approved).Error)
	assert.Equal(t, int64(2), approved)
}

// A user firing concurrent team creations for the same event must end up
// leading exactly one team.
func TestConcurrentTeamCreationSingleMembership(t *testing.T) {
	db := setupPostgres(t)
	seedOpenEvent(t, db, nil)
	approveUser(t, db, "alice")

	svc := teamService.New(
		teamRepository.New(db),
		eventRepository.New(db),
		registrationRepository.New(db),
		db,
		idgen.NewUUID(),
		notifier.Nop{},
		zap.NewNop().Sugar(),
	)

	const attempts = 6
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(context.Background(), "event-1", &teamModel.CreateTeamRequest{
				UserID: "alice",
				Name:   fmt.Sprintf("Team %d", i),
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.True(t, errors.Is(err, teamModel.ErrAlreadyInTeam),
				"unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)

	var memberships int64
	require.NoError(t, db.Table("team_members").
		Joins("JOIN teams ON teams.id = team_members.team_id").
		Where("teams.event_id = ? AND team_members.user_id = ? AND team_members.status = ?",
			"event-1", "alice", teamModel.MemberAccepted).
		Count(&memberships).Error)
	assert.Equal(t, int64(1), memberships)
}
