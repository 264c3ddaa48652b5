package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"github.com/Dinnartec/core-dashboard-web/internal/domain/entities"
	"github.com/Dinnartec/core-dashboard-web/internal/infrastructure/models"
	"github.com/Dinnartec/core-dashboard-web/pkg/utils"
)

// ProjectRepoRepository implements project repository (source code) operations
type ProjectRepoRepository struct {
	db *gorm.DB
}

func NewProjectRepoRepository(db *gorm.DB) *ProjectRepoRepository {
	return &ProjectRepoRepository{db: db}
}

// ListByProject returns repos with the primary first, then oldest first
func (r *ProjectRepoRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*entities.ProjectRepo, error) {
	var ms []models.ProjectRepo
	if err := orderRepos(GetDB(ctx, r.db).Where("project_id = ?", projectID)).Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.ProjectRepo, 0, len(ms))
	for i := range ms {
		out = append(out, repoToEntity(&ms[i]))
	}
	return out, nil
}

// ClearPrimary unmarks every primary repo of the project
func (r *ProjectRepoRepository) ClearPrimary(ctx context.Context, projectID uuid.UUID) error {
	return GetDB(ctx, r.db).Model(&models.ProjectRepo{}).
		Where("project_id = ? AND is_primary = ?", projectID, true).
		Update("is_primary", false).Error
}

// Create inserts a repo. A second primary for the same project fails with
// ErrAlreadyExists.
func (r *ProjectRepoRepository) Create(ctx context.Context, repo *entities.ProjectRepo) error {
	if repo.ID == uuid.Nil {
		repo.ID = utils.GenerateUUIDv7()
	}
	m := &models.ProjectRepo{
		ID:        repo.ID,
		ProjectID: repo.ProjectID,
		Name:      repo.Name,
		URL:       repo.URL,
		Type:      repo.Type.Ptr(),
		IsPrimary: repo.IsPrimary,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return translate(err)
	}
	repo.CreatedAt = m.CreatedAt
	return nil
}

// Delete removes the repo only when it belongs to projectID
func (r *ProjectRepoRepository) Delete(ctx context.Context, projectID, repoID uuid.UUID) error {
	return GetDB(ctx, r.db).
		Where("id = ? AND project_id = ?", repoID, projectID).
		Delete(&models.ProjectRepo{}).Error
}

func repoToEntity(m *models.ProjectRepo) *entities.ProjectRepo {
	return &entities.ProjectRepo{
		ID:        m.ID,
		ProjectID: m.ProjectID,
		Name:      m.Name,
		URL:       m.URL,
		Type:      null.StringFromPtr(m.Type),
		IsPrimary: m.IsPrimary,
		CreatedAt: m.CreatedAt,
	}
}

// ProjectLinkRepository implements project link operations
type ProjectLinkRepository struct {
	db *gorm.DB
}

func NewProjectLinkRepository(db *gorm.DB) *ProjectLinkRepository {
	return &ProjectLinkRepository{db: db}
}

func (r *ProjectLinkRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*entities.ProjectLink, error) {
	var ms []models.ProjectLink
	if err := orderLinks(GetDB(ctx, r.db).Where("project_id = ?", projectID)).Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.ProjectLink, 0, len(ms))
	for i := range ms {
		out = append(out, linkToEntity(&ms[i]))
	}
	return out, nil
}

func (r *ProjectLinkRepository) Create(ctx context.Context, link *entities.ProjectLink) error {
	if link.ID == uuid.Nil {
		link.ID = utils.GenerateUUIDv7()
	}
	m := &models.ProjectLink{
		ID:        link.ID,
		ProjectID: link.ProjectID,
		Label:     link.Label,
		URL:       link.URL,
		Type:      link.Type.Ptr(),
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return translate(err)
	}
	link.CreatedAt = m.CreatedAt
	return nil
}

func (r *ProjectLinkRepository) Delete(ctx context.Context, projectID, linkID uuid.UUID) error {
	return GetDB(ctx, r.db).
		Where("id = ? AND project_id = ?", linkID, projectID).
		Delete(&models.ProjectLink{}).Error
}

func linkToEntity(m *models.ProjectLink) *entities.ProjectLink {
	return &entities.ProjectLink{
		ID:        m.ID,
		ProjectID: m.ProjectID,
		Label:     m.Label,
		URL:       m.URL,
		Type:      null.StringFromPtr(m.Type),
		CreatedAt: m.CreatedAt,
	}
}

// TeamMemberRepository implements project team operations
type TeamMemberRepository struct {
	db *gorm.DB
}

func NewTeamMemberRepository(db *gorm.DB) *TeamMemberRepository {
	return &TeamMemberRepository{db: db}
}

// ListByProject returns members ordered by role then assignment time
func (r *TeamMemberRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*entities.TeamMember, error) {
	var ms []models.TeamMember
	query := orderTeam(GetDB(ctx, r.db).Preload("User").Where("project_id = ?", projectID))
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.TeamMember, 0, len(ms))
	for i := range ms {
		out = append(out, teamMemberToEntity(&ms[i]))
	}
	return out, nil
}

func (r *TeamMemberRepository) Exists(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&models.TeamMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a member. A duplicate (project, user) fails with
// ErrAlreadyExists.
func (r *TeamMemberRepository) Create(ctx context.Context, member *entities.TeamMember) error {
	if member.ID == uuid.Nil {
		member.ID = utils.GenerateUUIDv7()
	}
	if member.AssignedAt.IsZero() {
		member.AssignedAt = time.Now()
	}
	m := &models.TeamMember{
		ID:         member.ID,
		ProjectID:  member.ProjectID,
		UserID:     member.UserID,
		Role:       string(member.Role),
		AssignedAt: member.AssignedAt,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (r *TeamMemberRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.TeamMember, error) {
	var m models.TeamMember
	if err := GetDB(ctx, r.db).Preload("User").Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return teamMemberToEntity(&m), nil
}

func (r *TeamMemberRepository) Delete(ctx context.Context, projectID, memberID uuid.UUID) error {
	return GetDB(ctx, r.db).
		Where("id = ? AND project_id = ?", memberID, projectID).
		Delete(&models.TeamMember{}).Error
}

func teamMemberToEntity(m *models.TeamMember) *entities.TeamMember {
	tm := &entities.TeamMember{
		ID:         m.ID,
		ProjectID:  m.ProjectID,
		UserID:     m.UserID,
		Role:       entities.TeamRole(m.Role),
		AssignedAt: m.AssignedAt,
	}
	if m.User != nil {
		tm.User = userToEntity(m.User)
	}
	return tm
}
