// Command dashctl runs database maintenance for the core dashboard: schema
// migration, reference data seeding and role bootstrap.
package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Dinnartec/core-dashboard-web/internal/config"
	"github.com/Dinnartec/core-dashboard-web/internal/domain/entities"
	"github.com/Dinnartec/core-dashboard-web/internal/infrastructure/datasources/postgres"
	"github.com/Dinnartec/core-dashboard-web/internal/infrastructure/repositories"
	"github.com/Dinnartec/core-dashboard-web/internal/infrastructure/seed"
	"github.com/Dinnartec/core-dashboard-web/internal/usecases"
	"github.com/Dinnartec/core-dashboard-web/pkg/logger"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	openDB     = postgres.NewConnection
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "dashctl",
		Short:         "Core dashboard maintenance",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(migrateCmd(), seedCmd(), usersCmd())
	return cmd
}

// connect loads configuration and opens the database.
func connect() (*gorm.DB, error) {
	_ = loadDotenv()
	cfg := loadCfg()
	logger.Init(cfg.Server.Env)

	db, err := openDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update tables and indexes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := connect()
			if err != nil {
				return err
			}
			if err := postgres.Migrate(db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Schema up to date")
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert roles, verticals and statuses",
		Long: `Upserts reference data. Without --file the built-in defaults are used.
Rows are matched by name or slug, so running it again is safe.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := loadSeed(file)
			if err != nil {
				return err
			}
			db, err := connect()
			if err != nil {
				return err
			}
			if err := postgres.Migrate(db); err != nil {
				return err
			}

			seeder := seed.NewSeeder(
				repositories.NewRoleRepository(db),
				repositories.NewVerticalRepository(db),
				repositories.NewStatusRepository(db),
				repositories.NewUnitOfWork(db),
			)
			res, err := seeder.Apply(cmd.Context(), data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d roles, %d verticals, %d statuses\n", res.Roles, res.Verticals, res.Statuses)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file with roles, verticals and statuses")
	return cmd
}

func loadSeed(path string) (*seed.File, error) {
	if path == "" {
		return seed.Default()
	}
	return seed.LoadFile(path)
}

func usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Inspect and administer users",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List users with their role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := connect()
			if err != nil {
				return err
			}
			users, err := repositories.NewUserRepository(db).List(cmd.Context(), entities.LifecycleAny)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "EMAIL\tNAME\tROLE\tACTIVE")
			for _, u := range users {
				fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", u.Email, u.Name, u.RoleName(), u.IsActive)
			}
			return w.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "set-role <email> <role>",
		Short:   "Assign a role to a user who has signed in at least once",
		Example: "  dashctl users set-role ana@dinnartec.com admin",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := connect()
			if err != nil {
				return err
			}
			uc := usecases.NewUserUsecase(repositories.NewUserRepository(db), repositories.NewRoleRepository(db))
			user, err := uc.SetRoleByEmail(cmd.Context(), args[0], entities.RoleName(args[1]))
			if err != nil {
				return fmt.Errorf("set role for %s: %w", args[0], err)
			}
			logger.Info(context.Background(), "Role assigned from CLI",
				zap.String("email", user.Email),
				zap.String("role", string(user.RoleName())),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", user.Email, user.RoleName())
			return nil
		},
	})
	return cmd
}
