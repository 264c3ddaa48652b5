package entities

import (
	"time"

	"github.com/google/uuid"
)

// VerticalStat is the number of active projects in one active vertical.
type VerticalStat struct {
	ID    uuid.UUID `json:"id"`
	Slug  string    `json:"slug"`
	Name  string    `json:"name"`
	Count int64     `json:"count"`
}

type RecentProject struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Codename  string    `json:"codename"`
	UpdatedAt time.Time `json:"updated_at"`
	Vertical  *SlugName `json:"vertical"`
	Status    *SlugName `json:"status"`
}

type Dashboard struct {
	Stats  []VerticalStat  `json:"stats"`
	Recent []RecentProject `json:"recent"`
}
