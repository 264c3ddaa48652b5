package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/Dinnartec/core-dashboard-web/internal/domain/entities"
)

// ProjectRepository defines project data operations.
type ProjectRepository interface {
	List(ctx context.Context, filter entities.ProjectFilter) ([]*entities.ProjectListItem, error)
	GetDetailByID(ctx context.Context, id uuid.UUID, lifecycle entities.Lifecycle) (*entities.ProjectDetail, error)
	GetDetailByCodename(ctx context.Context, codename string, lifecycle entities.Lifecycle) (*entities.ProjectDetail, error)
	// GetByID loads the project with its vertical and status.
	GetByID(ctx context.Context, id uuid.UUID, lifecycle entities.Lifecycle) (*entities.Project, error)
	// CodenameTaken checks every row regardless of lifecycle, skipping excludeID.
	CodenameTaken(ctx context.Context, codename string, excludeID uuid.UUID) (bool, error)
	Create(ctx context.Context, project *entities.Project) error
	// Update applies changes to an active project.
	Update(ctx context.Context, id uuid.UUID, changes entities.ProjectChanges) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Recent(ctx context.Context, limit int) ([]*entities.RecentProject, error)
	CountByVertical(ctx context.Context, lifecycle entities.Lifecycle) (map[uuid.UUID]int64, error)
}

// ProjectRepoRepository manages a project's source repositories.
type ProjectRepoRepository interface {
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*entities.ProjectRepo, error)
	ClearPrimary(ctx context.Context, projectID uuid.UUID) error
	Create(ctx context.Context, repo *entities.ProjectRepo) error
	Delete(ctx context.Context, projectID, repoID uuid.UUID) error
}

// ProjectLinkRepository manages a project's links.
type ProjectLinkRepository interface {
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*entities.ProjectLink, error)
	Create(ctx context.Context, link *entities.ProjectLink) error
	Delete(ctx context.Context, projectID, linkID uuid.UUID) error
}

// TeamMemberRepository manages project team membership.
type TeamMemberRepository interface {
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*entities.TeamMember, error)
	Exists(ctx context.Context, projectID, userID uuid.UUID) (bool, error)
	Create(ctx context.Context, member *entities.TeamMember) error
	// GetByID loads the member with its user.
	GetByID(ctx context.Context, id uuid.UUID) (*entities.TeamMember, error)
	Delete(ctx context.Context, projectID, memberID uuid.UUID) error
}
