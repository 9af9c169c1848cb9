package model

// TeamRole is a member's role within a team.
type TeamRole string

// Team roles. Exactly one member per team holds RoleLeader.
const (
	RoleLeader TeamRole = "LEADER"
	RoleMember TeamRole = "MEMBER"
)

// TeamMemberStatus is the acceptance state of a membership.
type TeamMemberStatus string

// Membership statuses.
const (
	// MemberInvited means the leader invited the user.
	MemberInvited TeamMemberStatus = "INVITED"
	// MemberRequested means the user asked to join.
	MemberRequested TeamMemberStatus = "REQUESTED"
	// MemberAccepted means the user is part of the team.
	MemberAccepted TeamMemberStatus = "ACCEPTED"
)

// TeamMember represents a user's relationship to a team.
// Matches the team_members table schema; (team_id, user_id) is unique at
// the database level.
type TeamMember struct {
	ID        string           `gorm:"primaryKey;column:id;type:varchar(64)"                                       json:"id"`
	TeamID    string           `gorm:"column:team_id;type:varchar(64);not null;uniqueIndex:uq_team_members_team_user" json:"team_id"`
	UserID    string           `gorm:"column:user_id;type:varchar(64);not null;uniqueIndex:uq_team_members_team_user" json:"user_id"`
	Username  string           `gorm:"column:username;type:varchar(255)"                                           json:"username"`
	UserEmail string           `gorm:"column:user_email;type:varchar(255)"                                         json:"user_email"`
	Role      TeamRole         `gorm:"column:role;type:varchar(16);not null"                                       json:"role"`
	Status    TeamMemberStatus `gorm:"column:status;type:varchar(16);not null"                                     json:"status"`
}

// TableName specifies the table name for GORM.
func (TeamMember) TableName() string {
	return "team_members"
}
