package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Dinnartec/core-dashboard-web/internal/domain/entities"
	"github.com/Dinnartec/core-dashboard-web/internal/infrastructure/models"
	"github.com/Dinnartec/core-dashboard-web/pkg/utils"
)

// RoleRepository implements role reads and seeding
type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) List(ctx context.Context) ([]*entities.Role, error) {
	var ms []models.Role
	if err := GetDB(ctx, r.db).Order("name ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	roles := make([]*entities.Role, 0, len(ms))
	for i := range ms {
		roles = append(roles, roleToEntity(&ms[i]))
	}
	return roles, nil
}

func (r *RoleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Role, error) {
	var m models.Role
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return roleToEntity(&m), nil
}

func (r *RoleRepository) GetByName(ctx context.Context, name entities.RoleName) (*entities.Role, error) {
	var m models.Role
	if err := GetDB(ctx, r.db).Where("name = ?", string(name)).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return roleToEntity(&m), nil
}

// Upsert inserts the role or updates the description of the role with the
// same name. role.ID is set to the stored id.
func (r *RoleRepository) Upsert(ctx context.Context, role *entities.Role) error {
	if role.ID == uuid.Nil {
		role.ID = utils.GenerateUUIDv7()
	}
	m := &models.Role{
		ID:          role.ID,
		Name:        string(role.Name),
		Description: role.Description.Ptr(),
	}
	db := GetDB(ctx, r.db)
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"description"}),
	}).Create(m).Error; err != nil {
		return err
	}

	var stored models.Role
	if err := db.Where("name = ?", m.Name).First(&stored).Error; err != nil {
		return translate(err)
	}
	*role = *roleToEntity(&stored)
	return nil
}

func roleToEntity(m *models.Role) *entities.Role {
	return &entities.Role{
		ID:          m.ID,
		Name:        entities.RoleName(m.Name),
		Description: null.StringFromPtr(m.Description),
		CreatedAt:   m.CreatedAt,
	}
}

// VerticalRepository implements vertical reads and seeding
type VerticalRepository struct {
	db *gorm.DB
}

func NewVerticalRepository(db *gorm.DB) *VerticalRepository {
	return &VerticalRepository{db: db}
}

func (r *VerticalRepository) List(ctx context.Context, lifecycle entities.Lifecycle) ([]*entities.Vertical, error) {
	var ms []models.Vertical
	query := withLifecycle(GetDB(ctx, r.db), "is_active", lifecycle)
	if err := query.Order("display_order ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.Vertical, 0, len(ms))
	for i := range ms {
		out = append(out, verticalToEntity(&ms[i]))
	}
	return out, nil
}

func (r *VerticalRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Vertical, error) {
	var m models.Vertical
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return verticalToEntity(&m), nil
}

func (r *VerticalRepository) GetBySlug(ctx context.Context, slug string) (*entities.Vertical, error) {
	var m models.Vertical
	if err := GetDB(ctx, r.db).Where("slug = ?", slug).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return verticalToEntity(&m), nil
}

// Upsert inserts the vertical or updates the one with the same slug
func (r *VerticalRepository) Upsert(ctx context.Context, vertical *entities.Vertical) error {
	if vertical.ID == uuid.Nil {
		vertical.ID = utils.GenerateUUIDv7()
	}
	m := &models.Vertical{
		ID:           vertical.ID,
		Slug:         vertical.Slug,
		Name:         vertical.Name,
		DisplayOrder: vertical.DisplayOrder,
		IsActive:     vertical.IsActive,
	}
	db := GetDB(ctx, r.db)
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "display_order", "is_active"}),
	}).Create(m).Error; err != nil {
		return err
	}

	var stored models.Vertical
	if err := db.Where("slug = ?", m.Slug).First(&stored).Error; err != nil {
		return translate(err)
	}
	*vertical = *verticalToEntity(&stored)
	return nil
}

func verticalToEntity(m *models.Vertical) *entities.Vertical {
	return &entities.Vertical{
		ID:           m.ID,
		Slug:         m.Slug,
		Name:         m.Name,
		DisplayOrder: m.DisplayOrder,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
	}
}

// StatusRepository implements project status reads and seeding
type StatusRepository struct {
	db *gorm.DB
}

func NewStatusRepository(db *gorm.DB) *StatusRepository {
	return &StatusRepository{db: db}
}

func (r *StatusRepository) List(ctx context.Context) ([]*entities.ProjectStatus, error) {
	var ms []models.ProjectStatus
	if err := GetDB(ctx, r.db).Order("display_order ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.ProjectStatus, 0, len(ms))
	for i := range ms {
		out = append(out, statusToEntity(&ms[i]))
	}
	return out, nil
}

func (r *StatusRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.ProjectStatus, error) {
	var m models.ProjectStatus
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return statusToEntity(&m), nil
}

// Upsert inserts the status or updates the one with the same slug
func (r *StatusRepository) Upsert(ctx context.Context, status *entities.ProjectStatus) error {
	if status.ID == uuid.Nil {
		status.ID = utils.GenerateUUIDv7()
	}
	m := &models.ProjectStatus{
		ID:           status.ID,
		Slug:         status.Slug,
		Name:         status.Name,
		DisplayOrder: status.DisplayOrder,
	}
	db := GetDB(ctx, r.db)
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "display_order"}),
	}).Create(m).Error; err != nil {
		return err
	}

	var stored models.ProjectStatus
	if err := db.Where("slug = ?", m.Slug).First(&stored).Error; err != nil {
		return translate(err)
	}
	*status = *statusToEntity(&stored)
	return nil
}

func statusToEntity(m *models.ProjectStatus) *entities.ProjectStatus {
	return &entities.ProjectStatus{
		ID:           m.ID,
		Slug:         m.Slug,
		Name:         m.Name,
		DisplayOrder: m.DisplayOrder,
		CreatedAt:    m.CreatedAt,
	}
}
