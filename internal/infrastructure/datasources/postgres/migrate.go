package postgres

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/Dinnartec/core-dashboard-web/internal/infrastructure/models"
)

// PrimaryRepoIndex allows at most one primary repository per project.
const PrimaryRepoIndex = "idx_project_repos_one_primary"

var schemaModels = []interface{}{
	&models.Role{},
	&models.User{},
	&models.Vertical{},
	&models.ProjectStatus{},
	&models.Project{},
	&models.ProjectRepo{},
	&models.ProjectLink{},
	&models.TeamMember{},
}

// Migrate creates or updates every table and index the dashboard needs.
// Works against both Postgres and SQLite.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(schemaModels...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	stmt := "CREATE UNIQUE INDEX IF NOT EXISTS " + PrimaryRepoIndex +
		" ON project_repos (project_id) WHERE is_primary"
	if err := db.Exec(stmt).Error; err != nil {
		return fmt.Errorf("create %s: %w", PrimaryRepoIndex, err)
	}
	return nil
}
