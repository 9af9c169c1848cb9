// Package service provides business logic layer for the team module.
package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	eventModel "github.com/ehub-platform/event-service/internal/event/model"
	eventRepository "github.com/ehub-platform/event-service/internal/event/repository"
	"github.com/ehub-platform/event-service/internal/idgen"
	"github.com/ehub-platform/event-service/internal/notifier"
	registrationModel "github.com/ehub-platform/event-service/internal/registration/model"
	registrationRepository "github.com/ehub-platform/event-service/internal/registration/repository"
	"github.com/ehub-platform/event-service/internal/team/model"
	"github.com/ehub-platform/event-service/internal/team/repository"
)

// Service defines the interface for team business logic operations.
type Service interface {
	// Create creates a team led by the requesting user.
	Create(ctx context.Context, eventID string, req *model.CreateTeamRequest) (*model.CreateTeamResponse, error)

	// ListByEvent returns all teams of an event with their members.
	ListByEvent(ctx context.Context, eventID string) ([]model.TeamResponse, error)

	// GetByShortCode returns a team by its share code.
	GetByShortCode(ctx context.Context, shortCode string) (*model.TeamResponse, error)

	// Invite invites a user to the team; leader only.
	Invite(ctx context.Context, teamID string, req *model.InviteRequest, requesterID string) error

	// RequestToJoin records a user's request to join the team.
	RequestToJoin(ctx context.Context, teamID string, req *model.InviteRequest) error

	// Respond accepts or rejects a pending invitation or join request.
	Respond(ctx context.Context, teamID, userID string, accept bool) error

	// TransferLeadership atomically moves the leader role to another member.
	TransferLeadership(ctx context.Context, teamID, currentLeaderID, newLeaderID string) error

	// Leave removes a non-leader member from the team.
	Leave(ctx context.Context, teamID, userID string) error

	// Dismantle deletes the team and all its memberships; leader only.
	Dismantle(ctx context.Context, teamID, leaderID string) error

	// SetProblemStatement selects the team's challenge; leader only.
	SetProblemStatement(ctx context.Context, teamID, leaderID, problemStatementID string) error

	// Submit records the team's project submission; leader only, event ONGOING.
	Submit(ctx context.Context, teamID, userID string, req *model.SubmissionRequest) error

	// EvaluationContext returns the scorer projection for one team.
	EvaluationContext(ctx context.Context, teamID string) (*model.EvaluationContext, error)

	// EventEvaluationContexts returns scorer projections for all teams of an
	// event that have submitted a repository.
	EventEvaluationContexts(ctx context.Context, eventID string) ([]model.EvaluationContext, error)

	// UpdateScore stores the score produced by the external scorer.
	UpdateScore(ctx context.Context, teamID string, score float64) error
}

type service struct {
	repo      repository.Repository
	eventRepo eventRepository.Repository
	regRepo   registrationRepository.Repository
	db        *gorm.DB
	ids       idgen.Issuer
	notifier  notifier.Dispatcher
	logger    *zap.SugaredLogger
	now       func() time.Time
}

// New creates a new team service instance.
func New(
	repo repository.Repository,
	eventRepo eventRepository.Repository,
	regRepo registrationRepository.Repository,
	db *gorm.DB,
	ids idgen.Issuer,
	dispatcher notifier.Dispatcher,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		repo:      repo,
		eventRepo: eventRepo,
		regRepo:   regRepo,
		db:        db,
		ids:       ids,
		notifier:  dispatcher,
		logger:    logger,
		now:       time.Now,
	}
}

// requireApprovedRegistration checks the user holds an APPROVED registration
// for the event.
func requireApprovedRegistration(ctx context.Context, regRepo registrationRepository.Repository, eventID, userID string) error {
	registration, err := regRepo.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, registrationModel.ErrRegistrationNotFound) {
			return model.ErrRegistrationRequired
		}
		return err
	}
	if registration.Status != registrationModel.RegistrationApproved {
		return model.ErrRegistrationNotApproved
	}
	return nil
}

// Create creates a team with the caller as its single LEADER/ACCEPTED member.
// All checks run under the event row lock so a user cannot end up leading
// two teams through concurrent requests.
func (s *service) Create(ctx context.Context, eventID string, req *model.CreateTeamRequest) (*model.CreateTeamResponse, error) {
	if req.Name == "" {
		return nil, model.ErrInvalidTeamName
	}

	var resp *model.CreateTeamResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx)
		txEventRepo := eventRepository.New(tx)
		txRegRepo := registrationRepository.New(tx)

		event, err := txEventRepo.GetByIDForUpdate(ctx, eventID)
		if err != nil {
			return err
		}

		if event.StartDate != nil && s.now().After(*event.StartDate) {
			return model.ErrEventStarted
		}

		if err := requireApprovedRegistration(ctx, txRegRepo, eventID, req.UserID); err != nil {
			return err
		}

		inTeam, err := txRepo.HasAcceptedMembershipInEvent(ctx, eventID, req.UserID)
		if err != nil {
			return err
		}
		if inTeam {
			return model.ErrAlreadyInTeam
		}

		team := &model.Team{
			ID:        s.ids.NewID(),
			ShortCode: idgen.ShortCode(),
			Name:      req.Name,
			EventID:   eventID,
			LeaderID:  req.UserID,
		}
		if err := txRepo.CreateTeam(ctx, team); err != nil {
			return err
		}

		leader := &model.TeamMember{
			ID:        s.ids.NewID(),
			TeamID:    team.ID,
			UserID:    req.UserID,
			Username:  req.Username,
			UserEmail: req.UserEmail,
			Role:      model.RoleLeader,
			Status:    model.MemberAccepted,
		}
		if err := txRepo.CreateMember(ctx, leader); err != nil {
			return err
		}

		resp = &model.CreateTeamResponse{ID: team.ID, ShortCode: team.ShortCode}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("team created", "team_id", resp.ID, "event_id", eventID, "leader_id", req.UserID)
	return resp, nil
}

// ListByEvent returns all teams of an event with their members.
func (s *service) ListByEvent(ctx context.Context, eventID string) ([]model.TeamResponse, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	teams, err := s.repo.GetTeamsByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	responses := make([]model.TeamResponse, 0, len(teams))
	for i := range teams {
		resp, err := s.toResponse(ctx, &teams[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

// GetByShortCode returns a team by its share code.
func (s *service) GetByShortCode(ctx context.Context, shortCode string) (*model.TeamResponse, error) {
	team, err := s.repo.GetTeamByShortCode(ctx, shortCode)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, team)
}

// Invite creates an INVITED membership row. Capacity counts ACCEPTED and
// INVITED members so outstanding invitations reserve seats.
func (s *service) Invite(ctx context.Context, teamID string, req *model.InviteRequest, requesterID string) error {
	var team *model.Team
	var eventName string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx)
		txEventRepo := eventRepository.New(tx)
		txRegRepo := registrationRepository.New(tx)

		var err error
		team, err = txRepo.GetTeamByID(ctx, teamID)
		if err != nil {
			return err
		}
		if team.LeaderID != requesterID {
			return model.ErrNotLeader
		}

		event, err := txEventRepo.GetByIDForUpdate(ctx, team.EventID)
		if err != nil {
			return err
		}
		eventName = event.Name

		if _, err := txRepo.GetMember(ctx, teamID, req.UserID); err == nil {
			return model.ErrAlreadyMember
		} else if !errors.Is(err, model.ErrMembershipNotFound) {
			return err
		}

		if err := requireApprovedRegistration(ctx, txRegRepo, team.EventID, req.UserID); err != nil {
			return err
		}

		inTeam, err := txRepo.HasAcceptedMembershipInEvent(ctx, team.EventID, req.UserID)
		if err != nil {
			return err
		}
		if inTeam {
			return model.ErrAlreadyInTeam
		}

		if event.TeamSize != nil {
			count, err := txRepo.CountMembersByStatus(ctx, teamID,
				[]model.TeamMemberStatus{model.MemberAccepted, model.MemberInvited})
			if err != nil {
				return err
			}
			if count >= int64(*event.TeamSize) {
				return model.ErrTeamFull
			}
		}

		member := &model.TeamMember{
			ID:        s.ids.NewID(),
			TeamID:    teamID,
			UserID:    req.UserID,
			Username:  req.Username,
			UserEmail: req.UserEmail,
			Role:      model.RoleMember,
			Status:    model.MemberInvited,
		}
		return txRepo.CreateMember(ctx, member)
	})
	if err != nil {
		return err
	}

	s.logger.Infow("member invited", "team_id", teamID, "user_id", req.UserID)

	if req.UserEmail != "" {
		subject := "Team Invitation: Join " + team.Name
		body := "You have been invited to join team " + team.Name + " for " + eventName + ". Log in to accept!"
		if err := s.notifier.Send(ctx, req.UserEmail, subject, body); err != nil {
			s.logger.Warnw("failed to send invite notification", "team_id", teamID, "user_id", req.UserID, "error", err)
		}
	}

	return nil
}

// RequestToJoin creates a REQUESTED membership row. Capacity counts only
// ACCEPTED members: a join request does not reserve a seat.
func (s *service) RequestToJoin(ctx context.Context, teamID string, req *model.InviteRequest) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx)
		txEventRepo := eventRepository.New(tx)
		txRegRepo := registrationRepository.New(tx)

		team, err := txRepo.GetTeamByID(ctx, teamID)
		if err != nil {
			return err
		}

		event, err := txEventRepo.GetByIDForUpdate(ctx, team.EventID)
		if err != nil {
			return err
		}

		if _, err := txRepo.GetMember(ctx, teamID, req.UserID); err == nil {
			return model.ErrAlreadyMember
		} else if !errors.Is(err, model.ErrMembershipNotFound) {
			return err
		}

		if err := requireApprovedRegistration(ctx, txRegRepo, team.EventID, req.UserID); err != nil {
			return err
		}

		inTeam, err := txRepo.HasAcceptedMembershipInEvent(ctx, team.EventID, req.UserID)
		if err != nil {
			return err
		}
		if inTeam {
			return model.ErrAlreadyInTeam
		}

		if event.TeamSize != nil {
			count, err := txRepo.CountMembersByStatus(ctx, teamID,
				[]model.TeamMemberStatus{model.MemberAccepted})
			if err != nil {
				return err
			}
			if count >= int64(*event.TeamSize) {
				return model.ErrTeamFull
			}
		}

		member := &model.TeamMember{
			ID:        s.ids.NewID(),
			TeamID:    teamID,
			UserID:    req.UserID,
			Username:  req.Username,
			UserEmail: req.UserEmail,
			Role:      model.RoleMember,
			Status:    model.MemberRequested,
		}
		return txRepo.CreateMember(ctx, member)
	})
	if err != nil {
		return err
	}

	s.logger.Infow("join requested", "team_id", teamID, "user_id", req.UserID)
	return nil
}

// Respond accepts or rejects a pending membership. Acceptance re-validates
// the single-team invariant under the event row lock: the check made at
// invite time cannot be trusted after concurrent accepts.
func (s *service) Respond(ctx context.Context, teamID, userID string, accept bool) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx)
		txEventRepo := eventRepository.New(tx)

		member, err := txRepo.GetMember(ctx, teamID, userID)
		if err != nil {
			return err
		}

		if !accept {
			return txRepo.DeleteMember(ctx, member.ID)
		}

		team, err := txRepo.GetTeamByID(ctx, teamID)
		if err != nil {
			return err
		}
		if _, err := txEventRepo.GetByIDForUpdate(ctx, team.EventID); err != nil {
			return err
		}

		inTeam, err := txRepo.HasAcceptedMembershipInEvent(ctx, team.EventID, userID)
		if err != nil {
			return err
		}
		if inTeam {
			return model.ErrAlreadyInTeam
		}

		member.Status = model.MemberAccepted
		return txRepo.SaveMember(ctx, member)
	})
}

// TransferLeadership flips the roles of the current and new leader and
// updates Team.LeaderID in the same transaction; either all three writes
// commit or none.
func (s *service) TransferLeadership(ctx context.Context, teamID, currentLeaderID, newLeaderID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx)

		team, err := txRepo.GetTeamByID(ctx, teamID)
		if err != nil {
			return err
		}
		if team.LeaderID != currentLeaderID {
			return model.ErrNotLeader
		}

		currentLeader, err := txRepo.GetMember(ctx, teamID, currentLeaderID)
		if err != nil {
			return err
		}
		newLeader, err := txRepo.GetMember(ctx, teamID, newLeaderID)
		if err != nil {
			return err
		}

		currentLeader.Role = model.RoleMember
		newLeader.Role = model.RoleLeader
		team.LeaderID = newLeaderID

		if err := txRepo.SaveMember(ctx, currentLeader); err != nil {
			return err
		}
		if err := txRepo.SaveMember(ctx, newLeader); err != nil {
			return err
		}
		return txRepo.SaveTeam(ctx, team)
	})
}

// Leave removes a non-leader member from the team.
func (s *service) Leave(ctx context.Context, teamID, userID string) error {
	member, err := s.repo.GetMember(ctx, teamID, userID)
	if err != nil {
		return err
	}
	if member.Role == model.RoleLeader {
		return model.ErrLeaderCannotLeave
	}
	return s.repo.DeleteMember(ctx, member.ID)
}

// Dismantle deletes the team and all its memberships in one transaction.
func (s *service) Dismantle(ctx context.Context, teamID, leaderID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx)

		team, err := txRepo.GetTeamByID(ctx, teamID)
		if err != nil {
			return err
		}
		if team.LeaderID != leaderID {
			return model.ErrNotLeader
		}

		if err := txRepo.DeleteMembersByTeam(ctx, teamID); err != nil {
			return err
		}
		return txRepo.DeleteTeam(ctx, teamID)
	})
}

// SetProblemStatement selects the team's challenge; the statement must
// belong to the team's event.
func (s *service) SetProblemStatement(ctx context.Context, teamID, leaderID, problemStatementID string) error {
	team, err := s.repo.GetTeamByID(ctx, teamID)
	if err != nil {
		return err
	}
	if team.LeaderID != leaderID {
		return model.ErrNotLeader
	}

	problem, err := s.eventRepo.GetProblemByID(ctx, problemStatementID)
	if err != nil {
		return err
	}
	if problem.EventID != team.EventID {
		return model.ErrProblemNotInEvent
	}

	team.ProblemStatementID = problemStatementID
	return s.repo.SaveTeam(ctx, team)
}

// Submit records the team's submission while the event is ONGOING. The
// rejection message distinguishes "not yet open" from "already closed".
func (s *service) Submit(ctx context.Context, teamID, userID string, req *model.SubmissionRequest) error {
	team, err := s.repo.GetTeamByID(ctx, teamID)
	if err != nil {
		return err
	}
	if team.LeaderID != userID {
		return model.ErrNotLeader
	}

	event, err := s.eventRepo.GetByID(ctx, team.EventID)
	if err != nil {
		return err
	}

	now := s.now()
	if event.StatusAt(now) != eventModel.StatusOngoing {
		if event.StartDate != nil && now.Before(*event.StartDate) {
			return model.ErrSubmissionsNotOpen
		}
		return model.ErrSubmissionsClosed
	}

	team.RepoURL = req.RepoURL
	team.DemoURL = req.DemoURL
	team.SubmissionTime = &now
	if err := s.repo.SaveTeam(ctx, team); err != nil {
		return err
	}

	s.logger.Infow("project submitted", "team_id", teamID, "repo_url", req.RepoURL)
	return nil
}

// EvaluationContext returns the scorer projection for one team.
func (s *service) EvaluationContext(ctx context.Context, teamID string) (*model.EvaluationContext, error) {
	team, err := s.repo.GetTeamByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	return s.toEvaluationContext(ctx, team), nil
}

// EventEvaluationContexts returns scorer projections for the teams of an
// event that submitted a repository.
func (s *service) EventEvaluationContexts(ctx context.Context, eventID string) ([]model.EvaluationContext, error) {
	teams, err := s.repo.GetTeamsByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	contexts := make([]model.EvaluationContext, 0, len(teams))
	for i := range teams {
		if teams[i].RepoURL == "" {
			continue
		}
		contexts = append(contexts, *s.toEvaluationContext(ctx, &teams[i]))
	}
	return contexts, nil
}

// UpdateScore stores the score produced by the external scorer.
func (s *service) UpdateScore(ctx context.Context, teamID string, score float64) error {
	team, err := s.repo.GetTeamByID(ctx, teamID)
	if err != nil {
		return err
	}
	team.Score = score
	return s.repo.SaveTeam(ctx, team)
}

func (s *service) toEvaluationContext(ctx context.Context, team *model.Team) *model.EvaluationContext {
	evalCtx := &model.EvaluationContext{
		TeamID:   team.ID,
		TeamName: team.Name,
		RepoURL:  team.RepoURL,
	}
	if team.ProblemStatementID != "" {
		if problem, err := s.eventRepo.GetProblemByID(ctx, team.ProblemStatementID); err == nil {
			evalCtx.ProblemStatement = problem.Statement
		}
	}
	return evalCtx
}

func (s *service) toResponse(ctx context.Context, team *model.Team) (*model.TeamResponse, error) {
	members, err := s.repo.GetMembersByTeam(ctx, team.ID)
	if err != nil {
		return nil, err
	}

	memberResponses := make([]model.TeamMemberResponse, 0, len(members))
	for _, m := range members {
		memberResponses = append(memberResponses, model.TeamMemberResponse{
			ID:        m.ID,
			UserID:    m.UserID,
			Username:  m.Username,
			UserEmail: m.UserEmail,
			Role:      m.Role,
			Status:    m.Status,
		})
	}

	return &model.TeamResponse{
		ID:                 team.ID,
		ShortCode:          team.ShortCode,
		Name:               team.Name,
		EventID:            team.EventID,
		ProblemStatementID: team.ProblemStatementID,
		RepoURL:            team.RepoURL,
		DemoURL:            team.DemoURL,
		SubmissionTime:     team.SubmissionTime,
		Score:              team.Score,
		LeaderID:           team.LeaderID,
		Members:            memberResponses,
	}, nil
}
