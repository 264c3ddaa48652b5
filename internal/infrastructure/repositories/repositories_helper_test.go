package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Dinnartec/core-dashboard-web/internal/domain/entities"
	"github.com/Dinnartec/core-dashboard-web/internal/infrastructure/datasources/postgres"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "open sqlite")
	require.NoError(t, postgres.Migrate(db), "migrate")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

type fixture struct {
	db       *gorm.DB
	member   *entities.Role
	admin    *entities.Role
	core     *entities.Vertical
	labs     *entities.Vertical
	planning *entities.ProjectStatus
	launched *entities.ProjectStatus
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	ctx := context.Background()
	f := &fixture{db: db}

	roles := NewRoleRepository(db)
	f.admin = &entities.Role{Name: entities.RoleAdmin}
	f.member = &entities.Role{Name: entities.RoleMember}
	require.NoError(t, roles.Upsert(ctx, f.admin))
	require.NoError(t, roles.Upsert(ctx, f.member))

	verticals := NewVerticalRepository(db)
	f.core = &entities.Vertical{Slug: "core", Name: "Core", DisplayOrder: 1, IsActive: true}
	f.labs = &entities.Vertical{Slug: "labs", Name: "Labs", DisplayOrder: 4, IsActive: true}
	require.NoError(t, verticals.Upsert(ctx, f.core))
	require.NoError(t, verticals.Upsert(ctx, f.labs))

	statuses := NewStatusRepository(db)
	f.planning = &entities.ProjectStatus{Slug: "planning", Name: "Planning", DisplayOrder: 1}
	f.launched = &entities.ProjectStatus{Slug: "launched", Name: "Launched", DisplayOrder: 4}
	require.NoError(t, statuses.Upsert(ctx, f.planning))
	require.NoError(t, statuses.Upsert(ctx, f.launched))
	return f
}

func (f *fixture) project(t *testing.T, codename string, vertical *entities.Vertical) *entities.Project {
	t.Helper()
	p := &entities.Project{
		Name:       codename,
		Codename:   codename,
		VerticalID: vertical.ID,
		StatusID:   f.planning.ID,
		IsActive:   true,
	}
	require.NoError(t, NewProjectRepository(f.db).Create(context.Background(), p))
	return p
}

func (f *fixture) user(t *testing.T, email, name string) *entities.User {
	t.Helper()
	u := &entities.User{
		Username: entities.LocalPart(email),
		Email:    email,
		Name:     name,
		RoleID:   f.member.ID,
		IsActive: true,
	}
	require.NoError(t, NewUserRepository(f.db).UpsertMirror(context.Background(), u))
	require.NotEqual(t, uuid.Nil, u.ID)
	return u
}
