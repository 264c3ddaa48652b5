package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// User is the local mirror of a signed-in identity.
type User struct {
	ID        uuid.UUID   `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	AvatarURL null.String `json:"avatar_url"`
	RoleID    uuid.UUID   `json:"role_id"`
	IsActive  bool        `json:"is_active"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`

	Role *Role `json:"role,omitempty"`
}

// RoleName returns the user's role name, empty when the role is not loaded.
func (u *User) RoleName() RoleName {
	if u == nil || u.Role == nil {
		return ""
	}
	return u.Role.Name
}

// IsAdmin reports whether the user's role grants user management.
func (u *User) IsAdmin() bool {
	return u.RoleName().Can(PermUsersManage)
}

// Identity is what the OAuth provider reports about a signed-in person.
type Identity struct {
	ProviderID string
	Login      string
	Email      string
	Name       string
	AvatarURL  string
}

// LocalPart returns the part of email before the @.
func LocalPart(email string) string {
	if i := strings.IndexByte(email, '@'); i >= 0 {
		return email[:i]
	}
	return email
}

// NewMirroredUser builds the row inserted the first time an identity signs in.
func NewMirroredUser(id Identity, roleID uuid.UUID) *User {
	username := LocalPart(id.Email)
	name := id.Name
	if name == "" {
		name = username
	}
	avatar := null.String{}
	if id.AvatarURL != "" {
		avatar = null.StringFrom(id.AvatarURL)
	}
	return &User{
		Username:  username,
		Email:     id.Email,
		Name:      name,
		AvatarURL: avatar,
		RoleID:    roleID,
		IsActive:  true,
	}
}

// SessionUser is the authenticated caller as seen by the HTTP layer.
// UserID is uuid.Nil when the sign-in could not be mirrored.
type SessionUser struct {
	UserID uuid.UUID `json:"id"`
	Email  string    `json:"email"`
	Name   string    `json:"name"`
}

// CurrentUser is the body of GET /auth/me.
type CurrentUser struct {
	ID          *uuid.UUID   `json:"id"`
	Email       string       `json:"email"`
	Name        string       `json:"name"`
	Username    string       `json:"username,omitempty"`
	AvatarURL   null.String  `json:"avatar_url"`
	IsActive    bool         `json:"is_active"`
	Role        *Role        `json:"role"`
	Permissions []Permission `json:"permissions"`
}

// UpdateUserInput is the body of PATCH /users/{id}.
type UpdateUserInput struct {
	Name *string `json:"name"`
}

// ChangeRoleInput is the body of PATCH /users/{id}/role.
type ChangeRoleInput struct {
	RoleID string `json:"role_id"`
}
