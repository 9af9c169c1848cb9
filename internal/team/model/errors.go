package model

import "errors"

var (
	// ErrTeamNotFound indicates that the requested team does not exist.
	ErrTeamNotFound = errors.New("team not found")
	// ErrMembershipNotFound indicates there is no membership row for (team, user).
	ErrMembershipNotFound = errors.New("membership not found")
	// ErrNotLeader indicates the caller is not the leader of the team.
	ErrNotLeader = errors.New("only the team leader can perform this action")
	// ErrAlreadyMember indicates the user already has a membership row for this team.
	ErrAlreadyMember = errors.New("user already has an association with this team")
	// ErrAlreadyInTeam indicates the user holds an accepted membership in
	// another team of the same event.
	ErrAlreadyInTeam = errors.New("user is already an accepted member of a team in this event")
	// ErrRegistrationRequired indicates the user has no registration for the event.
	ErrRegistrationRequired = errors.New("user must be registered for this event")
	// ErrRegistrationNotApproved indicates the user's registration is not approved yet.
	ErrRegistrationNotApproved = errors.New("user's registration for this event is not approved")
	// ErrTeamFull indicates the team has reached the event's team size limit.
	ErrTeamFull = errors.New("team has reached its maximum size")
	// ErrEventStarted indicates teams can no longer be formed for the event.
	ErrEventStarted = errors.New("teams cannot be formed once the event has started")
	// ErrSubmissionsNotOpen indicates the event has not started yet.
	ErrSubmissionsNotOpen = errors.New("submissions have not opened yet")
	// ErrSubmissionsClosed indicates the event has already ended.
	ErrSubmissionsClosed = errors.New("submissions are closed")
	// ErrLeaderCannotLeave indicates the leader must dismantle or transfer first.
	ErrLeaderCannotLeave = errors.New("leader cannot leave the team: dismantle it or transfer leadership first")
	// ErrInvalidTeamName indicates that the provided team name is invalid (e.g., empty).
	ErrInvalidTeamName = errors.New("invalid team name")
	// ErrProblemNotInEvent indicates the problem statement belongs to another event.
	ErrProblemNotInEvent = errors.New("problem statement does not belong to the team's event")
)
