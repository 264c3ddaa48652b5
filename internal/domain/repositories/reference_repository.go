package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/Dinnartec/core-dashboard-web/internal/domain/entities"
)

// RoleRepository reads and seeds roles.
type RoleRepository interface {
	List(ctx context.Context) ([]*entities.Role, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Role, error)
	GetByName(ctx context.Context, name entities.RoleName) (*entities.Role, error)
	Upsert(ctx context.Context, role *entities.Role) error
}

// VerticalRepository reads and seeds verticals.
type VerticalRepository interface {
	List(ctx context.Context, lifecycle entities.Lifecycle) ([]*entities.Vertical, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Vertical, error)
	GetBySlug(ctx context.Context, slug string) (*entities.Vertical, error)
	Upsert(ctx context.Context, vertical *entities.Vertical) error
}

// StatusRepository reads and seeds project statuses.
type StatusRepository interface {
	List(ctx context.Context) ([]*entities.ProjectStatus, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.ProjectStatus, error)
	Upsert(ctx context.Context, status *entities.ProjectStatus) error
}
