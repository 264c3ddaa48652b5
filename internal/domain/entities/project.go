package entities

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

var codenamePattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// ValidCodename reports whether s is a non-empty run of lowercase letters,
// digits and hyphens.
func ValidCodename(s string) bool {
	return codenamePattern.MatchString(s)
}

var errInvalidDate = errors.New("invalid date")

// ParseDate accepts a calendar date (YYYY-MM-DD) or an RFC3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, errInvalidDate
}

type Project struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Codename    string      `json:"codename"`
	VerticalID  uuid.UUID   `json:"vertical_id"`
	StatusID    uuid.UUID   `json:"status_id"`
	Description null.String `json:"description"`
	StartedAt   null.Time   `json:"started_at"`
	LaunchedAt  null.Time   `json:"launched_at"`
	IsActive    bool        `json:"is_active"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	Vertical *Vertical      `json:"vertical,omitempty"`
	Status   *ProjectStatus `json:"status,omitempty"`
}

// ProjectListItem is a project as returned by the list endpoint.
type ProjectListItem struct {
	Project
	Team []TeamMember `json:"team"`
}

// ProjectDetail is a project with all of its children.
type ProjectDetail struct {
	Project
	Repos []ProjectRepo `json:"repos"`
	Links []ProjectLink `json:"links"`
	Team  []TeamMember  `json:"team"`
}

// ProjectFilter narrows a project listing. VerticalSlug "" or "all" means
// every vertical.
type ProjectFilter struct {
	Lifecycle    Lifecycle
	VerticalSlug string
	Search       string
}

type CreateProjectInput struct {
	Name        string  `json:"name"`
	Codename    string  `json:"codename"`
	VerticalID  string  `json:"vertical_id"`
	StatusID    string  `json:"status_id"`
	Description *string `json:"description"`
	StartedAt   *string `json:"started_at"`
}

// UpdateProjectInput carries a partial update; only keys present in the
// request body are written.
type UpdateProjectInput struct {
	Name        Optional[string] `json:"name"`
	Codename    Optional[string] `json:"codename"`
	VerticalID  Optional[string] `json:"vertical_id"`
	StatusID    Optional[string] `json:"status_id"`
	Description Optional[string] `json:"description"`
	StartedAt   Optional[string] `json:"started_at"`
	LaunchedAt  Optional[string] `json:"launched_at"`
}

// Empty reports whether no field was supplied.
func (in UpdateProjectInput) Empty() bool {
	return !in.Name.Set && !in.Codename.Set && !in.VerticalID.Set && !in.StatusID.Set &&
		!in.Description.Set && !in.StartedAt.Set && !in.LaunchedAt.Set
}

// ProjectChanges is a validated partial update ready for storage. Nil
// pointers are left untouched.
type ProjectChanges struct {
	Name        *string
	Codename    *string
	VerticalID  *uuid.UUID
	StatusID    *uuid.UUID
	Description *null.String
	StartedAt   *null.Time
	LaunchedAt  *null.Time
}
