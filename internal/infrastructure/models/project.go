package models

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name        string         `gorm:"type:varchar(255);not null"`
	Codename    string         `gorm:"type:varchar(100);uniqueIndex;not null"`
	VerticalID  uuid.UUID      `gorm:"type:uuid;not null;index"`
	Vertical    *Vertical      `gorm:"foreignKey:VerticalID"`
	StatusID    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Status      *ProjectStatus `gorm:"foreignKey:StatusID"`
	Description *string        `gorm:"type:text"`
	StartedAt   *time.Time     `gorm:"type:date"`
	LaunchedAt  *time.Time     `gorm:"type:date"`
	IsActive    bool           `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Repos []ProjectRepo `gorm:"foreignKey:ProjectID"`
	Links []ProjectLink `gorm:"foreignKey:ProjectID"`
	Team  []TeamMember  `gorm:"foreignKey:ProjectID"`
}

type ProjectRepo struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(255);not null"`
	URL       string    `gorm:"column:url;type:text;not null"`
	Type      *string   `gorm:"type:varchar(50)"`
	IsPrimary bool      `gorm:"not null"`
	CreatedAt time.Time
}

type ProjectLink struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index"`
	Label     string    `gorm:"type:varchar(255);not null"`
	URL       string    `gorm:"column:url;type:text;not null"`
	Type      *string   `gorm:"type:varchar(50)"`
	CreatedAt time.Time
}
