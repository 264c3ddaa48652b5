package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Dinnartec/core-dashboard-web/internal/domain/entities"
	domainerrors "github.com/Dinnartec/core-dashboard-web/internal/domain/errors"
	"github.com/Dinnartec/core-dashboard-web/internal/infrastructure/models"
	"github.com/Dinnartec/core-dashboard-web/pkg/utils"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID gets a user by ID with its role
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).Preload("Role").Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return userToEntity(&m), nil
}

// GetByEmail gets a user by email with its role
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).Preload("Role").Where("email = ?", email).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return userToEntity(&m), nil
}

// List returns users in the given lifecycle ordered by name
func (r *UserRepository) List(ctx context.Context, lifecycle entities.Lifecycle) ([]*entities.User, error) {
	var ms []models.User
	query := withLifecycle(GetDB(ctx, r.db), "is_active", lifecycle)
	if err := query.Preload("Role").Order("name ASC").Find(&ms).Error; err != nil {
		return nil, err
	}

	users := make([]*entities.User, 0, len(ms))
	for i := range ms {
		users = append(users, userToEntity(&ms[i]))
	}
	return users, nil
}

// UpsertMirror inserts the user or, when the email exists, refreshes its
// avatar. Role, name and active flag of an existing row are left alone.
func (r *UserRepository) UpsertMirror(ctx context.Context, user *entities.User) error {
	if user.ID == uuid.Nil {
		user.ID = utils.GenerateUUIDv7()
	}
	m := userToModel(user)
	db := GetDB(ctx, r.db)

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"avatar_url", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return err
	}

	var stored models.User
	if err := db.Where("email = ?", user.Email).First(&stored).Error; err != nil {
		return translate(err)
	}
	*user = *userToEntity(&stored)
	return nil
}

// UpdateName refreshes updated_at and, when name is non-nil, the name
func (r *UserRepository) UpdateName(ctx context.Context, id uuid.UUID, name *string) error {
	updates := map[string]interface{}{"updated_at": time.Now()}
	if name != nil {
		updates["name"] = *name
	}
	return r.updateByID(ctx, id, updates)
}

// SetActive activates or deactivates a user
func (r *UserRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return r.updateByID(ctx, id, map[string]interface{}{
		"is_active":  active,
		"updated_at": time.Now(),
	})
}

// SetRole assigns a role to a user
func (r *UserRepository) SetRole(ctx context.Context, id, roleID uuid.UUID) error {
	return r.updateByID(ctx, id, map[string]interface{}{
		"role_id":    roleID,
		"updated_at": time.Now(),
	})
}

func (r *UserRepository) updateByID(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := GetDB(ctx, r.db).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func userToEntity(m *models.User) *entities.User {
	u := &entities.User{
		ID:        m.ID,
		Username:  m.Username,
		Email:     m.Email,
		Name:      m.Name,
		AvatarURL: null.StringFromPtr(m.AvatarURL),
		RoleID:    m.RoleID,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Role != nil {
		u.Role = roleToEntity(m.Role)
	}
	return u
}

func userToModel(e *entities.User) *models.User {
	return &models.User{
		ID:        e.ID,
		Username:  e.Username,
		Email:     e.Email,
		Name:      e.Name,
		AvatarURL: e.AvatarURL.Ptr(),
		RoleID:    e.RoleID,
		IsActive:  e.IsActive,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// withLifecycle applies the soft-delete filter on column.
func withLifecycle(db *gorm.DB, column string, lifecycle entities.Lifecycle) *gorm.DB {
	switch lifecycle {
	case entities.LifecycleActive:
		return db.Where(column+" = ?", true)
	case entities.LifecycleInactive:
		return db.Where(column+" = ?", false)
	default:
		return db
	}
}
