package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type ProjectRepo struct {
	ID        uuid.UUID   `json:"id"`
	ProjectID uuid.UUID   `json:"project_id"`
	Name      string      `json:"name"`
	URL       string      `json:"url"`
	Type      null.String `json:"type"`
	IsPrimary bool        `json:"is_primary"`
	CreatedAt time.Time   `json:"created_at"`
}

type ProjectLink struct {
	ID        uuid.UUID   `json:"id"`
	ProjectID uuid.UUID   `json:"project_id"`
	Label     string      `json:"label"`
	URL       string      `json:"url"`
	Type      null.String `json:"type"`
	CreatedAt time.Time   `json:"created_at"`
}

// TeamRole is a member's role within one project.
type TeamRole string

const (
	TeamRoleLead   TeamRole = "lead"
	TeamRoleMember TeamRole = "member"
)

func (r TeamRole) Valid() bool {
	return r == TeamRoleLead || r == TeamRoleMember
}

type TeamMember struct {
	ID         uuid.UUID `json:"id"`
	ProjectID  uuid.UUID `json:"project_id"`
	UserID     uuid.UUID `json:"user_id"`
	Role       TeamRole  `json:"role"`
	AssignedAt time.Time `json:"assigned_at"`

	User *User `json:"user,omitempty"`
}

type CreateRepoInput struct {
	Name      string  `json:"name"`
	URL       string  `json:"url"`
	Type      *string `json:"type"`
	IsPrimary bool    `json:"is_primary"`
}

type CreateLinkInput struct {
	Label string  `json:"label"`
	URL   string  `json:"url"`
	Type  *string `json:"type"`
}

type AddTeamMemberInput struct {
	UserID string   `json:"user_id"`
	Role   TeamRole `json:"role"`
}
