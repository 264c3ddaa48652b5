package usecases_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Dinnartec/core-dashboard-web/internal/domain/entities"
	"github.com/Dinnartec/core-dashboard-web/pkg/redis"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, lifecycle entities.Lifecycle) ([]*entities.User, error) {
	args := m.Called(ctx, lifecycle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *MockUserRepository) UpsertMirror(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateName(ctx context.Context, id uuid.UUID, name *string) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

func (m *MockUserRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *MockUserRepository) SetRole(ctx context.Context, id, roleID uuid.UUID) error {
	args := m.Called(ctx, id, roleID)
	return args.Error(0)
}

// Mock RoleRepository
type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) List(ctx context.Context) ([]*entities.Role, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Role), args.Error(1)
}

func (m *MockRoleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Role, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Role), args.Error(1)
}

func (m *MockRoleRepository) GetByName(ctx context.Context, name entities.RoleName) (*entities.Role, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Role), args.Error(1)
}

func (m *MockRoleRepository) Upsert(ctx context.Context, role *entities.Role) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

// Mock VerticalRepository
type MockVerticalRepository struct {
	mock.Mock
}

func (m *MockVerticalRepository) List(ctx context.Context, lifecycle entities.Lifecycle) ([]*entities.Vertical, error) {
	args := m.Called(ctx, lifecycle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Vertical), args.Error(1)
}

func (m *MockVerticalRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Vertical, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Vertical), args.Error(1)
}

func (m *MockVerticalRepository) GetBySlug(ctx context.Context, slug string) (*entities.Vertical, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Vertical), args.Error(1)
}

func (m *MockVerticalRepository) Upsert(ctx context.Context, vertical *entities.Vertical) error {
	args := m.Called(ctx, vertical)
	return args.Error(0)
}

// Mock StatusRepository
type MockStatusRepository struct {
	mock.Mock
}

func (m *MockStatusRepository) List(ctx context.Context) ([]*entities.ProjectStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ProjectStatus), args.Error(1)
}

func (m *MockStatusRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.ProjectStatus, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ProjectStatus), args.Error(1)
}

func (m *MockStatusRepository) Upsert(ctx context.Context, status *entities.ProjectStatus) error {
	args := m.Called(ctx, status)
	return args.Error(0)
}

// Mock ProjectRepository
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) List(ctx context.Context, filter entities.ProjectFilter) ([]*entities.ProjectListItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ProjectListItem), args.Error(1)
}

func (m *MockProjectRepository) GetDetailByID(ctx context.Context, id uuid.UUID, lifecycle entities.Lifecycle) (*entities.ProjectDetail, error) {
	args := m.Called(ctx, id, lifecycle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ProjectDetail), args.Error(1)
}

func (m *MockProjectRepository) GetDetailByCodename(ctx context.Context, codename string, lifecycle entities.Lifecycle) (*entities.ProjectDetail, error) {
	args := m.Called(ctx, codename, lifecycle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ProjectDetail), args.Error(1)
}

func (m *MockProjectRepository) GetByID(ctx context.Context, id uuid.UUID, lifecycle entities.Lifecycle) (*entities.Project, error) {
	args := m.Called(ctx, id, lifecycle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Project), args.Error(1)
}

func (m *MockProjectRepository) CodenameTaken(ctx context.Context, codename string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, codename, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProjectRepository) Create(ctx context.Context, project *entities.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) Update(ctx context.Context, id uuid.UUID, changes entities.ProjectChanges) error {
	args := m.Called(ctx, id, changes)
	return args.Error(0)
}

func (m *MockProjectRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProjectRepository) Recent(ctx context.Context, limit int) ([]*entities.RecentProject, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.RecentProject), args.Error(1)
}

func (m *MockProjectRepository) CountByVertical(ctx context.Context, lifecycle entities.Lifecycle) (map[uuid.UUID]int64, error) {
	args := m.Called(ctx, lifecycle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]int64), args.Error(1)
}

// Mock ProjectRepoRepository
type MockProjectRepoRepository struct {
	mock.Mock
}

func (m *MockProjectRepoRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*entities.ProjectRepo, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ProjectRepo), args.Error(1)
}

func (m *MockProjectRepoRepository) ClearPrimary(ctx context.Context, projectID uuid.UUID) error {
	args := m.Called(ctx, projectID)
	return args.Error(0)
}

func (m *MockProjectRepoRepository) Create(ctx context.Context, repo *entities.ProjectRepo) error {
	args := m.Called(ctx, repo)
	return args.Error(0)
}

func (m *MockProjectRepoRepository) Delete(ctx context.Context, projectID, repoID uuid.UUID) error {
	args := m.Called(ctx, projectID, repoID)
	return args.Error(0)
}

// Mock ProjectLinkRepository
type MockProjectLinkRepository struct {
	mock.Mock
}

func (m *MockProjectLinkRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*entities.ProjectLink, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ProjectLink), args.Error(1)
}

func (m *MockProjectLinkRepository) Create(ctx context.Context, link *entities.ProjectLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockProjectLinkRepository) Delete(ctx context.Context, projectID, linkID uuid.UUID) error {
	args := m.Called(ctx, projectID, linkID)
	return args.Error(0)
}

// Mock TeamMemberRepository
type MockTeamMemberRepository struct {
	mock.Mock
}

func (m *MockTeamMemberRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*entities.TeamMember, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.TeamMember), args.Error(1)
}

func (m *MockTeamMemberRepository) Exists(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, projectID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTeamMemberRepository) Create(ctx context.Context, member *entities.TeamMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockTeamMemberRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.TeamMember, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TeamMember), args.Error(1)
}

func (m *MockTeamMemberRepository) Delete(ctx context.Context, projectID, memberID uuid.UUID) error {
	args := m.Called(ctx, projectID, memberID)
	return args.Error(0)
}

// Mock IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) AuthCodeURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockIdentityProvider) Identity(ctx context.Context, code string) (*entities.Identity, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Identity), args.Error(1)
}

// Mock StateStore
type MockStateStore struct {
	mock.Mock
}

func (m *MockStateStore) Save(ctx context.Context, state, redirectTo string) error {
	args := m.Called(ctx, state, redirectTo)
	return args.Error(0)
}

func (m *MockStateStore) Consume(ctx context.Context, state string) (string, error) {
	args := m.Called(ctx, state)
	return args.String(0), args.Error(1)
}

// Mock SessionStore
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) CreateSession(ctx context.Context, sessionID string, data *redis.SessionData, expiration time.Duration) error {
	args := m.Called(ctx, sessionID, data, expiration)
	return args.Error(0)
}

func (m *MockSessionStore) GetSession(ctx context.Context, sessionID string) (*redis.SessionData, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*redis.SessionData), args.Error(1)
}

func (m *MockSessionStore) DeleteSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}
