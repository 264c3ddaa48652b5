package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"github.com/Dinnartec/core-dashboard-web/internal/domain/entities"
	domainerrors "github.com/Dinnartec/core-dashboard-web/internal/domain/errors"
	"github.com/Dinnartec/core-dashboard-web/internal/infrastructure/models"
	"github.com/Dinnartec/core-dashboard-web/pkg/utils"
)

// ProjectRepository implements project data operations
type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func orderTeam(db *gorm.DB) *gorm.DB {
	return db.Order("role ASC, assigned_at ASC")
}

func orderRepos(db *gorm.DB) *gorm.DB {
	return db.Order("is_primary DESC, created_at ASC")
}

func orderLinks(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// List returns projects matching filter, most recently updated first
func (r *ProjectRepository) List(ctx context.Context, filter entities.ProjectFilter) ([]*entities.ProjectListItem, error) {
	db := GetDB(ctx, r.db)
	query := withLifecycle(db.Model(&models.Project{}), "is_active", filter.Lifecycle).
		Preload("Vertical").
		Preload("Status").
		Preload("Team", orderTeam).
		Preload("Team.User")

	if slug := strings.TrimSpace(filter.VerticalSlug); slug != "" && slug != "all" {
		var v models.Vertical
		err := db.Where("slug = ?", slug).First(&v).Error
		switch {
		case err == nil:
			query = query.Where("vertical_id = ?", v.ID)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, err
		}
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		term := "%" + strings.ToLower(escapeLike(search)) + "%"
		query = query.Where(`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(codename) LIKE ? ESCAPE '\')`, term, term)
	}

	var ms []models.Project
	if err := query.Order("updated_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.ProjectListItem, 0, len(ms))
	for i := range ms {
		items = append(items, &entities.ProjectListItem{
			Project: *projectToEntity(&ms[i]),
			Team:    teamToEntities(ms[i].Team),
		})
	}
	return items, nil
}

func (r *ProjectRepository) detailQuery(ctx context.Context, lifecycle entities.Lifecycle) *gorm.DB {
	return withLifecycle(GetDB(ctx, r.db).Model(&models.Project{}), "is_active", lifecycle).
		Preload("Vertical").
		Preload("Status").
		Preload("Repos", orderRepos).
		Preload("Links", orderLinks).
		Preload("Team", orderTeam).
		Preload("Team.User")
}

// GetDetailByID loads a project with every child collection
func (r *ProjectRepository) GetDetailByID(ctx context.Context, id uuid.UUID, lifecycle entities.Lifecycle) (*entities.ProjectDetail, error) {
	var m models.Project
	if err := r.detailQuery(ctx, lifecycle).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return projectDetailToEntity(&m), nil
}

// GetDetailByCodename loads a project with every child collection
func (r *ProjectRepository) GetDetailByCodename(ctx context.Context, codename string, lifecycle entities.Lifecycle) (*entities.ProjectDetail, error) {
	var m models.Project
	if err := r.detailQuery(ctx, lifecycle).Where("codename = ?", codename).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return projectDetailToEntity(&m), nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID, lifecycle entities.Lifecycle) (*entities.Project, error) {
	var m models.Project
	query := withLifecycle(GetDB(ctx, r.db).Model(&models.Project{}), "is_active", lifecycle).
		Preload("Vertical").
		Preload("Status")
	if err := query.Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return projectToEntity(&m), nil
}

// CodenameTaken checks all projects, active or not
func (r *ProjectRepository) CodenameTaken(ctx context.Context, codename string, excludeID uuid.UUID) (bool, error) {
	query := GetDB(ctx, r.db).Model(&models.Project{}).Where("codename = ?", codename)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ProjectRepository) Create(ctx context.Context, project *entities.Project) error {
	if project.ID == uuid.Nil {
		project.ID = utils.GenerateUUIDv7()
	}
	m := &models.Project{
		ID:          project.ID,
		Name:        project.Name,
		Codename:    project.Codename,
		VerticalID:  project.VerticalID,
		StatusID:    project.StatusID,
		Description: project.Description.Ptr(),
		StartedAt:   project.StartedAt.Ptr(),
		LaunchedAt:  project.LaunchedAt.Ptr(),
		IsActive:    project.IsActive,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return translate(err)
	}
	project.CreatedAt = m.CreatedAt
	project.UpdatedAt = m.UpdatedAt
	return nil
}

// Update writes only the fields set in changes on an active project
func (r *ProjectRepository) Update(ctx context.Context, id uuid.UUID, changes entities.ProjectChanges) error {
	updates := map[string]interface{}{"updated_at": time.Now()}
	if changes.Name != nil {
		updates["name"] = *changes.Name
	}
	if changes.Codename != nil {
		updates["codename"] = *changes.Codename
	}
	if changes.VerticalID != nil {
		updates["vertical_id"] = *changes.VerticalID
	}
	if changes.StatusID != nil {
		updates["status_id"] = *changes.StatusID
	}
	if changes.Description != nil {
		updates["description"] = changes.Description.Ptr()
	}
	if changes.StartedAt != nil {
		updates["started_at"] = changes.StartedAt.Ptr()
	}
	if changes.LaunchedAt != nil {
		updates["launched_at"] = changes.LaunchedAt.Ptr()
	}

	result := GetDB(ctx, r.db).Model(&models.Project{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(updates)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SoftDelete clears the active flag. Deleting an inactive or missing
// project is a no-op; children are left untouched.
func (r *ProjectRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Model(&models.Project{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()}).Error
}

// Recent returns the most recently updated active projects
func (r *ProjectRepository) Recent(ctx context.Context, limit int) ([]*entities.RecentProject, error) {
	var ms []models.Project
	err := GetDB(ctx, r.db).
		Preload("Vertical").
		Preload("Status").
		Where("is_active = ?", true).
		Order("updated_at DESC").
		Limit(limit).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	out := make([]*entities.RecentProject, 0, len(ms))
	for i := range ms {
		m := &ms[i]
		rp := &entities.RecentProject{
			ID:        m.ID,
			Name:      m.Name,
			Codename:  m.Codename,
			UpdatedAt: m.UpdatedAt,
		}
		if m.Vertical != nil {
			rp.Vertical = &entities.SlugName{Slug: m.Vertical.Slug, Name: m.Vertical.Name}
		}
		if m.Status != nil {
			rp.Status = &entities.SlugName{Slug: m.Status.Slug, Name: m.Status.Name}
		}
		out = append(out, rp)
	}
	return out, nil
}

// CountByVertical counts projects per vertical id
func (r *ProjectRepository) CountByVertical(ctx context.Context, lifecycle entities.Lifecycle) (map[uuid.UUID]int64, error) {
	var rows []struct {
		VerticalID uuid.UUID
		Count      int64
	}
	err := withLifecycle(GetDB(ctx, r.db).Model(&models.Project{}), "is_active", lifecycle).
		Select("vertical_id, COUNT(*) AS count").
		Group("vertical_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.VerticalID] = row.Count
	}
	return counts, nil
}

func projectToEntity(m *models.Project) *entities.Project {
	p := &entities.Project{
		ID:          m.ID,
		Name:        m.Name,
		Codename:    m.Codename,
		VerticalID:  m.VerticalID,
		StatusID:    m.StatusID,
		Description: null.StringFromPtr(m.Description),
		StartedAt:   null.TimeFromPtr(m.StartedAt),
		LaunchedAt:  null.TimeFromPtr(m.LaunchedAt),
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.Vertical != nil {
		p.Vertical = verticalToEntity(m.Vertical)
	}
	if m.Status != nil {
		p.Status = statusToEntity(m.Status)
	}
	return p
}

func projectDetailToEntity(m *models.Project) *entities.ProjectDetail {
	d := &entities.ProjectDetail{
		Project: *projectToEntity(m),
		Repos:   make([]entities.ProjectRepo, 0, len(m.Repos)),
		Links:   make([]entities.ProjectLink, 0, len(m.Links)),
		Team:    teamToEntities(m.Team),
	}
	for i := range m.Repos {
		d.Repos = append(d.Repos, *repoToEntity(&m.Repos[i]))
	}
	for i := range m.Links {
		d.Links = append(d.Links, *linkToEntity(&m.Links[i]))
	}
	return d
}

func teamToEntities(ms []models.TeamMember) []entities.TeamMember {
	out := make([]entities.TeamMember, 0, len(ms))
	for i := range ms {
		out = append(out, *teamMemberToEntity(&ms[i]))
	}
	return out
}
