package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Dinnartec/core-dashboard-web/internal/domain/entities"
	"github.com/Dinnartec/core-dashboard-web/internal/infrastructure/datasources/postgres"
	"github.com/Dinnartec/core-dashboard-web/internal/infrastructure/repositories"
	"github.com/Dinnartec/core-dashboard-web/internal/infrastructure/seed"
	"github.com/Dinnartec/core-dashboard-web/internal/interfaces/http/middleware"
	"github.com/Dinnartec/core-dashboard-web/internal/usecases"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// sessionTable authenticates the X-Session-ID header against fixed users.
type sessionTable map[string]*entities.SessionUser

func (s sessionTable) Authenticate(_ context.Context, sid string) (*entities.SessionUser, error) {
	if u, ok := s[sid]; ok {
		return u, nil
	}
	return nil, errors.New("unknown session")
}

func (s sessionTable) AuthenticateToken(string) (*entities.SessionUser, error) {
	return nil, errors.New("tokens not accepted")
}

// apiEnv is a router over a migrated, seeded in-memory database.
type apiEnv struct {
	db        *gorm.DB
	router    *gin.Engine
	sessions  sessionTable
	verticals map[string]*entities.Vertical
	statuses  map[string]*entities.ProjectStatus
	roles     map[entities.RoleName]*entities.Role
	users     *repositories.UserRepository
}

func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:handlers_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db))

	roleRepo := repositories.NewRoleRepository(db)
	verticalRepo := repositories.NewVerticalRepository(db)
	statusRepo := repositories.NewStatusRepository(db)
	uow := repositories.NewUnitOfWork(db)

	seeds, err := seed.Default()
	require.NoError(t, err)
	_, err = seed.NewSeeder(roleRepo, verticalRepo, statusRepo, uow).Apply(context.Background(), seeds)
	require.NoError(t, err)

	env := &apiEnv{
		db:        db,
		sessions:  sessionTable{},
		verticals: map[string]*entities.Vertical{},
		statuses:  map[string]*entities.ProjectStatus{},
		roles:     map[entities.RoleName]*entities.Role{},
		users:     repositories.NewUserRepository(db),
	}
	ctx := context.Background()
	vs, err := verticalRepo.List(ctx, entities.LifecycleAny)
	require.NoError(t, err)
	for _, v := range vs {
		env.verticals[v.Slug] = v
	}
	ss, err := statusRepo.List(ctx)
	require.NoError(t, err)
	for _, s := range ss {
		env.statuses[s.Slug] = s
	}
	rs, err := roleRepo.List(ctx)
	require.NoError(t, err)
	for _, r := range rs {
		env.roles[r.Name] = r
	}

	projectRepo := repositories.NewProjectRepository(db)
	projectHandler := NewProjectHandler(usecases.NewProjectUsecase(projectRepo, verticalRepo, statusRepo))
	childrenHandler := NewProjectChildrenHandler(usecases.NewProjectChildrenUsecase(
		projectRepo,
		repositories.NewProjectRepoRepository(db),
		repositories.NewProjectLinkRepository(db),
		repositories.NewTeamMemberRepository(db),
		env.users,
		uow,
	))
	userHandler := NewUserHandler(usecases.NewUserUsecase(env.users, roleRepo))
	referenceHandler := NewReferenceHandler(usecases.NewReferenceUsecase(verticalRepo, statusRepo, roleRepo))
	dashboardHandler := NewDashboardHandler(usecases.NewDashboardUsecase(projectRepo, verticalRepo))

	r := gin.New()
	api := r.Group("/api", middleware.SessionAuth(env.sessions, "core_session"))
	api.GET("/projects", projectHandler.ListProjects)
	api.POST("/projects", projectHandler.CreateProject)
	api.GET("/projects/:id", projectHandler.GetProject)
	api.PATCH("/projects/:id", projectHandler.UpdateProject)
	api.DELETE("/projects/:id", projectHandler.DeleteProject)
	api.GET("/projects/:id/repos", childrenHandler.ListRepos)
	api.POST("/projects/:id/repos", childrenHandler.AddRepo)
	api.DELETE("/projects/:id/repos", childrenHandler.DeleteRepo)
	api.GET("/projects/:id/links", childrenHandler.ListLinks)
	api.POST("/projects/:id/links", childrenHandler.AddLink)
	api.DELETE("/projects/:id/links", childrenHandler.DeleteLink)
	api.GET("/projects/:id/team", childrenHandler.ListTeam)
	api.POST("/projects/:id/team", childrenHandler.AddTeamMember)
	api.DELETE("/projects/:id/team", childrenHandler.RemoveTeamMember)
	api.GET("/users", userHandler.ListUsers)
	api.GET("/users/:id", userHandler.GetUser)
	api.PATCH("/users/:id", userHandler.UpdateUser)
	api.DELETE("/users/:id", userHandler.DeactivateUser)
	api.PATCH("/users/:id/role", userHandler.ChangeRole)
	api.GET("/verticals", referenceHandler.ListVerticals)
	api.GET("/statuses", referenceHandler.ListStatuses)
	api.GET("/roles", referenceHandler.ListRoles)
	api.GET("/dashboard", dashboardHandler.Overview)
	api.GET("/dashboard/stats", dashboardHandler.Stats)
	api.GET("/dashboard/recent", dashboardHandler.Recent)
	env.router = r
	return env
}

// signIn creates a user with role and returns a session id for it.
func (e *apiEnv) signIn(t *testing.T, email string, role entities.RoleName) (string, *entities.User) {
	t.Helper()
	ctx := context.Background()
	user := entities.NewMirroredUser(entities.Identity{Email: email}, e.roles[role].ID)
	require.NoError(t, e.users.UpsertMirror(ctx, user))
	require.NoError(t, e.users.SetRole(ctx, user.ID, e.roles[role].ID))

	sid := "sid-" + email
	e.sessions[sid] = &entities.SessionUser{UserID: user.ID, Email: email, Name: user.Name}
	return sid, user
}

func (e *apiEnv) do(t *testing.T, sid, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if sid != "" {
		req.Header.Set(middleware.SessionIDHeader, sid)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, w)["error"]
}

func (e *apiEnv) createProject(t *testing.T, sid, codename string) map[string]interface{} {
	t.Helper()
	w := e.do(t, sid, http.MethodPost, "/api/projects", map[string]string{
		"name":        codename,
		"codename":    codename,
		"vertical_id": e.verticals["core"].ID.String(),
		"status_id":   e.statuses["planning"].ID.String(),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[map[string]interface{}](t, w)
}
