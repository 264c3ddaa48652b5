package models

import (
	"time"

	"github.com/google/uuid"
)

type TeamMember struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_team_members_project_user"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_team_members_project_user"`
	User       *User     `gorm:"foreignKey:UserID"`
	Role       string    `gorm:"type:varchar(20);not null;default:'member'"`
	AssignedAt time.Time `gorm:"not null"`
}
