package usecases

import (
	"context"

	"github.com/Dinnartec/core-dashboard-web/internal/domain/entities"
	"github.com/Dinnartec/core-dashboard-web/internal/domain/repositories"
)

// ReferenceUsecase serves verticals, statuses and roles
type ReferenceUsecase struct {
	verticalRepo repositories.VerticalRepository
	statusRepo   repositories.StatusRepository
	roleRepo     repositories.RoleRepository
}

func NewReferenceUsecase(
	verticalRepo repositories.VerticalRepository,
	statusRepo repositories.StatusRepository,
	roleRepo repositories.RoleRepository,
) *ReferenceUsecase {
	return &ReferenceUsecase{verticalRepo: verticalRepo, statusRepo: statusRepo, roleRepo: roleRepo}
}

// Verticals returns active verticals in display order.
func (u *ReferenceUsecase) Verticals(ctx context.Context) ([]*entities.Vertical, error) {
	return u.verticalRepo.List(ctx, entities.LifecycleActive)
}

// Statuses returns every status in display order.
func (u *ReferenceUsecase) Statuses(ctx context.Context) ([]*entities.ProjectStatus, error) {
	return u.statusRepo.List(ctx)
}

// Roles returns every role ordered by name.
func (u *ReferenceUsecase) Roles(ctx context.Context) ([]*entities.Role, error) {
	return u.roleRepo.List(ctx)
}
