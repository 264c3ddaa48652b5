package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// RoleName is the closed set of user roles.
type RoleName string

const (
	RoleAdmin  RoleName = "admin"
	RoleMember RoleName = "member"
	RoleViewer RoleName = "viewer"
)

// Permission is the closed set of actions a role may be granted.
type Permission string

const (
	PermProjectsCreate Permission = "projects:create"
	PermProjectsRead   Permission = "projects:read"
	PermProjectsUpdate Permission = "projects:update"
	PermProjectsDelete Permission = "projects:delete"
	PermUsersManage    Permission = "users:manage"
	PermTeamManage     Permission = "team:manage"
)

type permissionSet uint8

// allPermissions fixes both the bit position and the listing order.
var allPermissions = [...]Permission{
	PermProjectsCreate,
	PermProjectsRead,
	PermProjectsUpdate,
	PermProjectsDelete,
	PermUsersManage,
	PermTeamManage,
}

func bit(p Permission) permissionSet {
	for i, candidate := range allPermissions {
		if candidate == p {
			return 1 << i
		}
	}
	return 0
}

func setOf(perms ...Permission) permissionSet {
	var s permissionSet
	for _, p := range perms {
		s |= bit(p)
	}
	return s
}

var (
	adminPermissions  = setOf(allPermissions[:]...)
	memberPermissions = setOf(PermProjectsCreate, PermProjectsRead, PermProjectsUpdate)
	viewerPermissions = setOf(PermProjectsRead)
)

func (r RoleName) permissions() permissionSet {
	switch r {
	case RoleAdmin:
		return adminPermissions
	case RoleMember:
		return memberPermissions
	case RoleViewer:
		return viewerPermissions
	default:
		return 0
	}
}

// Valid reports whether r is one of the known roles.
func (r RoleName) Valid() bool {
	switch r {
	case RoleAdmin, RoleMember, RoleViewer:
		return true
	}
	return false
}

// Can reports whether the role grants p. Unknown roles grant nothing.
func (r RoleName) Can(p Permission) bool {
	b := bit(p)
	return b != 0 && r.permissions()&b == b
}

// Permissions lists the permissions granted by the role in a stable order.
func (r RoleName) Permissions() []Permission {
	set := r.permissions()
	out := make([]Permission, 0, len(allPermissions))
	for i, p := range allPermissions {
		if set&(1<<i) != 0 {
			out = append(out, p)
		}
	}
	return out
}

// Role is reference data naming a permission set.
type Role struct {
	ID          uuid.UUID   `json:"id"`
	Name        RoleName    `json:"name"`
	Description null.String `json:"description"`
	CreatedAt   time.Time   `json:"created_at"`
}
