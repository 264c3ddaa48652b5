package entities

import (
	"time"

	"github.com/google/uuid"
)

// Vertical groups projects by business unit.
type Vertical struct {
	ID           uuid.UUID `json:"id"`
	Slug         string    `json:"slug"`
	Name         string    `json:"name"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

type ProjectStatus struct {
	ID           uuid.UUID `json:"id"`
	Slug         string    `json:"slug"`
	Name         string    `json:"name"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

// SlugName is the reduced vertical/status shape used by dashboard reads.
type SlugName struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}
