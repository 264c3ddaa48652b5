package models

import (
	"time"

	"github.com/google/uuid"
)

type Vertical struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Slug         string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	Name         string    `gorm:"type:varchar(100);not null"`
	DisplayOrder int       `gorm:"not null;default:0"`
	IsActive     bool      `gorm:"not null"`
	CreatedAt    time.Time
}

type ProjectStatus struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Slug         string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	Name         string    `gorm:"type:varchar(100);not null"`
	DisplayOrder int       `gorm:"not null;default:0"`
	CreatedAt    time.Time
}

func (ProjectStatus) TableName() string {
	return "project_statuses"
}
