// Package seed loads the dashboard's reference data (roles, verticals and
// project statuses) from YAML and upserts it.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Dinnartec/core-dashboard-web/internal/domain/entities"
	"github.com/Dinnartec/core-dashboard-web/internal/domain/repositories"
	"github.com/Dinnartec/core-dashboard-web/pkg/logger"
)

//go:embed default.yaml
var defaultData []byte

// File is the YAML layout of a seed file.
type File struct {
	Roles     []RoleSeed     `yaml:"roles"`
	Verticals []VerticalSeed `yaml:"verticals"`
	Statuses  []StatusSeed   `yaml:"statuses"`
}

type RoleSeed struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type VerticalSeed struct {
	Slug         string `yaml:"slug"`
	Name         string `yaml:"name"`
	DisplayOrder int    `yaml:"display_order"`
	// Inactive hides the vertical; verticals are active unless set.
	Inactive bool `yaml:"inactive"`
}

type StatusSeed struct {
	Slug         string `yaml:"slug"`
	Name         string `yaml:"name"`
	DisplayOrder int    `yaml:"display_order"`
}

// Result counts the rows upserted by Apply.
type Result struct {
	Roles     int
	Verticals int
	Statuses  int
}

// Default returns the embedded reference data.
func Default() (*File, error) {
	return Parse(defaultData)
}

// LoadFile reads and parses a seed file from disk.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates seed YAML.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed yaml: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) validate() error {
	for _, r := range f.Roles {
		if !entities.RoleName(r.Name).Valid() {
			return fmt.Errorf("unknown role %q", r.Name)
		}
	}
	seen := map[string]bool{}
	for _, v := range f.Verticals {
		if v.Slug == "" || v.Name == "" {
			return fmt.Errorf("vertical needs slug and name")
		}
		if seen["v:"+v.Slug] {
			return fmt.Errorf("duplicate vertical %q", v.Slug)
		}
		seen["v:"+v.Slug] = true
	}
	for _, s := range f.Statuses {
		if s.Slug == "" || s.Name == "" {
			return fmt.Errorf("status needs slug and name")
		}
		if seen["s:"+s.Slug] {
			return fmt.Errorf("duplicate status %q", s.Slug)
		}
		seen["s:"+s.Slug] = true
	}
	return nil
}

// Seeder upserts reference data inside one transaction.
type Seeder struct {
	roles     repositories.RoleRepository
	verticals repositories.VerticalRepository
	statuses  repositories.StatusRepository
	uow       repositories.UnitOfWork
}

func NewSeeder(
	roles repositories.RoleRepository,
	verticals repositories.VerticalRepository,
	statuses repositories.StatusRepository,
	uow repositories.UnitOfWork,
) *Seeder {
	return &Seeder{roles: roles, verticals: verticals, statuses: statuses, uow: uow}
}

// Apply upserts every entry of f. Existing rows are matched by role name or
// slug, so applying the same file twice is harmless.
func (s *Seeder) Apply(ctx context.Context, f *File) (Result, error) {
	var res Result
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		for _, r := range f.Roles {
			role := &entities.Role{Name: entities.RoleName(r.Name)}
			if r.Description != "" {
				role.Description = null.StringFrom(r.Description)
			}
			if err := s.roles.Upsert(ctx, role); err != nil {
				return fmt.Errorf("seed role %s: %w", r.Name, err)
			}
			res.Roles++
		}
		for _, v := range f.Verticals {
			vertical := &entities.Vertical{
				Slug:         v.Slug,
				Name:         v.Name,
				DisplayOrder: v.DisplayOrder,
				IsActive:     !v.Inactive,
			}
			if err := s.verticals.Upsert(ctx, vertical); err != nil {
				return fmt.Errorf("seed vertical %s: %w", v.Slug, err)
			}
			res.Verticals++
		}
		for _, st := range f.Statuses {
			status := &entities.ProjectStatus{
				Slug:         st.Slug,
				Name:         st.Name,
				DisplayOrder: st.DisplayOrder,
			}
			if err := s.statuses.Upsert(ctx, status); err != nil {
				return fmt.Errorf("seed status %s: %w", st.Slug, err)
			}
			res.Statuses++
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	logger.Info(ctx, "Reference data seeded",
		zap.Int("roles", res.Roles),
		zap.Int("verticals", res.Verticals),
		zap.Int("statuses", res.Statuses),
	)
	return res, nil
}
