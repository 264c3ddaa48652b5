package usecases

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Dinnartec/core-dashboard-web/internal/domain/entities"
	"github.com/Dinnartec/core-dashboard-web/internal/domain/repositories"
)

// RecentProjectsLimit is the number of projects shown as recently updated.
const RecentProjectsLimit = 5

// DashboardUsecase aggregates the dashboard page
type DashboardUsecase struct {
	projectRepo  repositories.ProjectRepository
	verticalRepo repositories.VerticalRepository
}

func NewDashboardUsecase(projectRepo repositories.ProjectRepository, verticalRepo repositories.VerticalRepository) *DashboardUsecase {
	return &DashboardUsecase{projectRepo: projectRepo, verticalRepo: verticalRepo}
}

// Stats returns the active project count of every active vertical, in
// display order. Verticals without projects count zero.
func (u *DashboardUsecase) Stats(ctx context.Context) ([]entities.VerticalStat, error) {
	var (
		verticals []*entities.Vertical
		counts    map[uuid.UUID]int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		verticals, err = u.verticalRepo.List(gctx, entities.LifecycleActive)
		return err
	})
	g.Go(func() error {
		var err error
		counts, err = u.projectRepo.CountByVertical(gctx, entities.LifecycleActive)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := make([]entities.VerticalStat, 0, len(verticals))
	for _, v := range verticals {
		stats = append(stats, entities.VerticalStat{
			ID:    v.ID,
			Slug:  v.Slug,
			Name:  v.Name,
			Count: counts[v.ID],
		})
	}
	return stats, nil
}

// Recent returns the most recently updated active projects.
func (u *DashboardUsecase) Recent(ctx context.Context) ([]entities.RecentProject, error) {
	recent, err := u.projectRepo.Recent(ctx, RecentProjectsLimit)
	if err != nil {
		return nil, err
	}
	out := make([]entities.RecentProject, 0, len(recent))
	for _, p := range recent {
		out = append(out, *p)
	}
	return out, nil
}

// Overview reads stats and recent projects concurrently.
func (u *DashboardUsecase) Overview(ctx context.Context) (*entities.Dashboard, error) {
	var d entities.Dashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		d.Stats, err = u.Stats(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		d.Recent, err = u.Recent(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}
