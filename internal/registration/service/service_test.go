package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	eventModel "github.com/ehub-platform/event-service/internal/event/model"
	eventRepository "github.com/ehub-platform/event-service/internal/event/repository"
	"github.com/ehub-platform/event-service/internal/registration/model"
	"github.com/ehub-platform/event-service/internal/registration/repository"
)

type fakeIssuer struct {
	counter int
}

func (f *fakeIssuer) NewID() string {
	f.counter++
	return fmt.Sprintf("id-%03d", f.counter)
}

type sentMail struct {
	To      string
	Subject string
}

type recordingNotifier struct {
	sent []sentMail
	fail bool
}

func (n *recordingNotifier) Send(ctx context.Context, to, subject, body string) error {
	if n.fail {
		return errors.New("notification service unavailable")
	}
	n.sent = append(n.sent, sentMail{To: to, Subject: subject})
	return nil
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&eventModel.Event{}, &model.Registration{})
	require.NoError(t, err)

	return db
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func intPtr(i int) *int {
	return &i
}

func newTestService(db *gorm.DB, dispatcher *recordingNotifier) *service {
	return New(
		repository.New(db),
		eventRepository.New(db),
		db,
		&fakeIssuer{},
		dispatcher,
		zap.NewNop().Sugar(),
	).(*service)
}

func seedEvent(t *testing.T, db *gorm.DB, mutate func(*eventModel.Event)) *eventModel.Event {
	event := &eventModel.Event{
		ID:                    "event-1",
		ShortCode:             "SPRING25",
		Name:                  "Spring Hack",
		OrganizerID:           "org-1",
		RegistrationStartDate: timePtr(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)),
		RegistrationEndDate:   timePtr(time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)),
		StartDate:             timePtr(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)),
		EndDate:               timePtr(time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)),
		Judging:               true,
	}
	if mutate != nil {
		mutate(event)
	}
	require.NoError(t, db.Create(event).Error)
	return event
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()
	inWindow := func() time.Time { return time.Date(2025, 3, 4, 12, 0, 0, 0, time.UTC) }

	t.Run("creates pending registration and notifies", func(t *testing.T) {
		db := setupTestDB(t)
		dispatcher := &recordingNotifier{}
		svc := newTestService(db, dispatcher)
		svc.now = inWindow
		seedEvent(t, db, nil)

		resp, err := svc.Register(ctx, "event-1", &model.RegisterRequest{
			UserID:    "user-1",
			Username:  "alice",
			UserEmail: "alice@example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, model.RegistrationPending, resp.Status)

		require.Len(t, dispatcher.sent, 1)
		assert.Equal(t, "alice@example.com", dispatcher.sent[0].To)
	})

	t.Run("duplicate registration conflicts", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestService(db, &recordingNotifier{})
		svc.now = inWindow
		seedEvent(t, db, nil)

		_, err := svc.Register(ctx, "event-1", &model.RegisterRequest{UserID: "user-1"})
		require.NoError(t, err)

		_, err = svc.Register(ctx, "event-1", &model.RegisterRequest{UserID: "user-1"})
		assert.ErrorIs(t, err, model.ErrAlreadyRegistered)
	})

	t.Run("closed window rejected", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestService(db, &recordingNotifier{})
		svc.now = func() time.Time { return time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC) }
		seedEvent(t, db, nil)

		_, err := svc.Register(ctx, "event-1", &model.RegisterRequest{UserID: "user-1"})
		assert.ErrorIs(t, err, model.ErrRegistrationClosed)
	})

	t.Run("capacity of approved registrations blocks new ones", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestService(db, &recordingNotifier{})
		svc.now = inWindow
		seedEvent(t, db, func(e *eventModel.Event) { e.MaxParticipants = intPtr(1) })

		require.NoError(t, db.Create(&model.Registration{
			ID: "reg-full", EventID: "event-1", UserID: "user-0",
			Status: model.RegistrationApproved, RegistrationTime: time.Now(),
		}).Error)

		_, err := svc.Register(ctx, "event-1", &model.RegisterRequest{UserID: "user-1"})
		assert.ErrorIs(t, err, model.ErrCapacityReached)
	})

	t.Run("unknown event", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestService(db, &recordingNotifier{})
		svc.now = inWindow

		_, err := svc.Register(ctx, "missing", &model.RegisterRequest{UserID: "user-1"})
		assert.ErrorIs(t, err, eventModel.ErrEventNotFound)
	})

	t.Run("missing user id", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestService(db, &recordingNotifier{})

		_, err := svc.Register(ctx, "event-1", &model.RegisterRequest{})
		assert.ErrorIs(t, err, model.ErrMissingUserID)
	})

	t.Run("dispatch failure does not fail registration", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestService(db, &recordingNotifier{fail: true})
		svc.now = inWindow
		seedEvent(t, db, nil)

		resp, err := svc.Register(ctx, "event-1", &model.RegisterRequest{
			UserID:    "user-1",
			UserEmail: "alice@example.com",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.ID)
	})
}

func TestService_SetStatus(t *testing.T) {
	ctx := context.Background()

	register := func(t *testing.T, svc *service, userID string) string {
		svc.now = func() time.Time { return time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC) }
		resp, err := svc.Register(ctx, "event-1", &model.RegisterRequest{
			UserID:    userID,
			UserEmail: userID + "@example.com",
		})
		require.NoError(t, err)
		return resp.ID
	}

	t.Run("organizer approves and participant is notified", func(t *testing.T) {
		db := setupTestDB(t)
		dispatcher := &recordingNotifier{}
		svc := newTestService(db, dispatcher)
		seedEvent(t, db, nil)
		regID := register(t, svc, "user-1")
		dispatcher.sent = nil

		require.NoError(t, svc.SetStatus(ctx, regID, model.RegistrationApproved, "org-1"))

		reg, err := repository.New(db).GetByID(ctx, regID)
		require.NoError(t, err)
		assert.Equal(t, model.RegistrationApproved, reg.Status)

		require.Len(t, dispatcher.sent, 1)
		assert.Contains(t, dispatcher.sent[0].Subject, "APPROVED")
	})

	t.Run("non-organizer rejected", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestService(db, &recordingNotifier{})
		seedEvent(t, db, nil)
		regID := register(t, svc, "user-1")

		err := svc.SetStatus(ctx, regID, model.RegistrationApproved, "intruder")
		assert.ErrorIs(t, err, eventModel.ErrNotOrganizer)
	})

	t.Run("approval beyond capacity rejected", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestService(db, &recordingNotifier{})
		seedEvent(t, db, func(e *eventModel.Event) { e.MaxParticipants = intPtr(1) })

		firstID := register(t, svc, "user-1")
		secondID := register(t, svc, "user-2")

		require.NoError(t, svc.SetStatus(ctx, firstID, model.RegistrationApproved, "org-1"))

		err := svc.SetStatus(ctx, secondID, model.RegistrationApproved, "org-1")
		assert.ErrorIs(t, err, model.ErrCapacityReached)

		// Rejection is always possible.
		require.NoError(t, svc.SetStatus(ctx, secondID, model.RegistrationRejected, "org-1"))
	})

	t.Run("re-approving an approved registration is not double counted", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestService(db, &recordingNotifier{})
		seedEvent(t, db, func(e *eventModel.Event) { e.MaxParticipants = intPtr(1) })

		regID := register(t, svc, "user-1")
		require.NoError(t, svc.SetStatus(ctx, regID, model.RegistrationApproved, "org-1"))
		require.NoError(t, svc.SetStatus(ctx, regID, model.RegistrationApproved, "org-1"))
	})

	t.Run("invalid status", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestService(db, &recordingNotifier{})

		err := svc.SetStatus(ctx, "whatever", "WAITLISTED", "org-1")
		assert.ErrorIs(t, err, model.ErrInvalidStatus)
	})

	t.Run("unknown registration", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestService(db, &recordingNotifier{})

		err := svc.SetStatus(ctx, "missing", model.RegistrationApproved, "org-1")
		assert.ErrorIs(t, err, model.ErrRegistrationNotFound)
	})
}

func TestService_Cancel(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newTestService(db, &recordingNotifier{})
	seedEvent(t, db, nil)
	svc.now = func() time.Time { return time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC) }

	resp, err := svc.Register(ctx, "event-1", &model.RegisterRequest{UserID: "user-1"})
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(ctx, resp.ID))
	assert.ErrorIs(t, svc.Cancel(ctx, resp.ID), model.ErrRegistrationNotFound)
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newTestService(db, &recordingNotifier{})
	seedEvent(t, db, nil)
	svc.now = func() time.Time { return time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC) }

	_, err := svc.Register(ctx, "event-1", &model.RegisterRequest{UserID: "user-1"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, "event-1", &model.RegisterRequest{UserID: "user-2"})
	require.NoError(t, err)

	registrations, err := svc.List(ctx, "event-1")
	require.NoError(t, err)
	assert.Len(t, registrations, 2)

	_, err = svc.List(ctx, "missing")
	assert.ErrorIs(t, err, eventModel.ErrEventNotFound)
}
