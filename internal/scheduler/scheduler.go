// Package scheduler provides the background loop that detects event
// lifecycle transitions and fans out notifications.
package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	eventModel "github.com/ehub-platform/event-service/internal/event/model"
	eventRepository "github.com/ehub-platform/event-service/internal/event/repository"
	"github.com/ehub-platform/event-service/internal/notifier"
	registrationRepository "github.com/ehub-platform/event-service/internal/registration/repository"
)

// Scheduler periodically re-derives every event's lifecycle status,
// persists changes and notifies registrants. It keeps no state between
// ticks beyond what is persisted on the event rows, so a restarted
// process picks up where the previous one left off.
type Scheduler struct {
	eventRepo eventRepository.Repository
	regRepo   registrationRepository.Repository
	notifier  notifier.Dispatcher
	logger    *zap.SugaredLogger
	interval  time.Duration
	now       func() time.Time
}

// New creates a scheduler ticking at the given interval.
func New(
	eventRepo eventRepository.Repository,
	regRepo registrationRepository.Repository,
	dispatcher notifier.Dispatcher,
	logger *zap.SugaredLogger,
	interval time.Duration,
) *Scheduler {
	return &Scheduler{
		eventRepo: eventRepo,
		regRepo:   regRepo,
		notifier:  dispatcher,
		logger:    logger,
		interval:  interval,
		now:       time.Now,
	}
}

// Run ticks until ctx is cancelled. Ticks never overlap: each one runs to
// completion before the next fires.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Infow("status scheduler started", "interval", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Infow("status scheduler stopped")
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick evaluates every event once. A failure on one event is logged and
// does not stop the sweep.
func (s *Scheduler) Tick(ctx context.Context) {
	events, err := s.eventRepo.GetAll(ctx)
	if err != nil {
		s.logger.Errorw("failed to list events for status sweep", "error", err)
		return
	}

	now := s.now()
	for i := range events {
		event := &events[i]

		current := event.StatusAt(now)
		if event.Status == current {
			continue
		}

		// Persist first: the transition must be recorded even if every
		// notification dispatch fails afterwards.
		if err := s.eventRepo.UpdateStatus(ctx, event.ID, current); err != nil {
			s.logger.Errorw("failed to persist status transition",
				"event_id", event.ID, "from", event.Status, "to", current, "error", err)
			continue
		}

		s.logger.Infow("event status transition",
			"event_id", event.ID, "event_name", event.Name, "from", event.Status, "to", current)

		s.notifyTransition(ctx, event, current)
	}
}

// notifyTransition broadcasts the transition message to every distinct
// registrant email. Unknown target statuses produce no notification.
func (s *Scheduler) notifyTransition(ctx context.Context, event *eventModel.Event, to eventModel.EventStatus) {
	subject, body := transitionMessage(event, to)
	if subject == "" {
		return
	}

	emails, err := s.regRepo.GetEmailsByEvent(ctx, event.ID)
	if err != nil {
		s.logger.Errorw("failed to load registrant emails", "event_id", event.ID, "error", err)
		return
	}

	for _, email := range emails {
		if err := s.notifier.Send(ctx, email, subject, body); err != nil {
			s.logger.Warnw("failed to send transition notification",
				"event_id", event.ID, "recipient", email, "error", err)
		}
	}
}

// transitionMessage resolves the (subject, body) pair for a target status.
// Statuses with no message return empty strings.
func transitionMessage(event *eventModel.Event, to eventModel.EventStatus) (string, string) {
	switch to {
	case eventModel.StatusOngoing:
		return "EVENT START: " + event.Name + " is now LIVE!",
			"The event has officially started. You can now start building and submitting your projects. Good luck!"
	case eventModel.StatusRegistrationOpen:
		return "REGISTRATION OPEN: " + event.Name,
			"Registration for " + event.Name + " is now open. Secure your spot now!"
	case eventModel.StatusJudging:
		return "SUBMISSION CLOSED: " + event.Name + " judging phase started.",
			"The submission period has ended. The organizers are now evaluating the projects."
	case eventModel.StatusResultsAnnounced:
		return "RESULTS ANNOUNCED: " + event.Name,
			"The final rankings for " + event.Name + " have been released. Head over to the event page to see the winners!"
	default:
		return "", ""
	}
}
