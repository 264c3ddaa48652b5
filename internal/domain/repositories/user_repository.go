package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/Dinnartec/core-dashboard-web/internal/domain/entities"
)

// UserRepository defines user data operations. Reads load the user's role.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	List(ctx context.Context, lifecycle entities.Lifecycle) ([]*entities.User, error)
	// UpsertMirror inserts user keyed by email; on conflict only the avatar
	// and updated_at are refreshed. user.ID is set to the stored row's id.
	UpsertMirror(ctx context.Context, user *entities.User) error
	UpdateName(ctx context.Context, id uuid.UUID, name *string) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	SetRole(ctx context.Context, id, roleID uuid.UUID) error
}
