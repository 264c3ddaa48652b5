package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Dinnartec/core-dashboard-web/internal/config"
)

func sqliteConfig(t *testing.T) config.DatabaseConfig {
	return config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano()),
	}
}

func TestDialector_UnknownDriver(t *testing.T) {
	_, err := Dialector(config.DatabaseConfig{Driver: "mysql"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported database driver")

	d, err := Dialector(config.DatabaseConfig{Driver: "postgres", DSN: "postgres://u:p@localhost/db"})
	require.NoError(t, err)
	require.Equal(t, "postgres", d.Name())
}

func TestNewConnection_PingFailure(t *testing.T) {
	cfg := config.DatabaseConfig{
		Driver:   "postgres",
		Host:     "127.0.0.1",
		Port:     1,
		User:     "x",
		Password: "x",
		DBName:   "x",
		SSLMode:  "disable",
	}

	db, err := NewConnection(cfg)
	require.Error(t, err)
	require.Nil(t, db)
}

func TestNewConnection_OpenAndPingHooks(t *testing.T) {
	origOpen, origPing := openGorm, dbPing
	t.Cleanup(func() {
		openGorm = origOpen
		dbPing = origPing
	})

	openGorm = func(gorm.Dialector, ...gorm.Option) (*gorm.DB, error) {
		return nil, errors.New("open failed")
	}
	db, err := NewConnection(sqliteConfig(t))
	require.Error(t, err)
	require.Nil(t, db)
	require.Contains(t, err.Error(), "failed to open database")

	openGorm = origOpen
	dbPing = func(*sql.DB) error { return errors.New("no route") }
	db, err = NewConnection(sqliteConfig(t))
	require.Error(t, err)
	require.Nil(t, db)
	require.Contains(t, err.Error(), "failed to ping database")
}

func TestMigrate_SQLite(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.MaxOpenConns = 4
	db, err := NewConnection(cfg)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db), "migrate must be repeatable")

	for _, table := range []string{"roles", "users", "verticals", "project_statuses", "projects", "project_repos", "project_links", "team_members"} {
		require.True(t, db.Migrator().HasTable(table), table)
	}
	require.True(t, db.Migrator().HasIndex("project_repos", PrimaryRepoIndex))

	project := uuid.New()
	insert := "INSERT INTO project_repos (id, project_id, name, url, is_primary, created_at) VALUES (?, ?, ?, ?, ?, ?)"
	require.NoError(t, db.Exec(insert, uuid.New(), project, "api", "https://x/api", true, time.Now()).Error)
	require.NoError(t, db.Exec(insert, uuid.New(), project, "web", "https://x/web", false, time.Now()).Error)
	require.Error(t, db.Exec(insert, uuid.New(), project, "cli", "https://x/cli", true, time.Now()).Error,
		"a second primary repository must be rejected")
	require.NoError(t, db.Exec(insert, uuid.New(), uuid.New(), "other", "https://y", true, time.Now()).Error)
}
