package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/Dinnartec/core-dashboard-web/internal/domain/entities"
	domainerrors "github.com/Dinnartec/core-dashboard-web/internal/domain/errors"
)

func TestRoleRepository(t *testing.T) {
	f := newFixture(t)
	repo := NewRoleRepository(f.db)
	ctx := context.Background()

	viewer := &entities.Role{Name: entities.RoleViewer, Description: null.StringFrom("Read only")}
	require.NoError(t, repo.Upsert(ctx, viewer))

	roles, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 3)
	require.Equal(t, entities.RoleAdmin, roles[0].Name)
	require.Equal(t, entities.RoleMember, roles[1].Name)
	require.Equal(t, entities.RoleViewer, roles[2].Name)

	again := &entities.Role{Name: entities.RoleViewer, Description: null.StringFrom("Can only read")}
	require.NoError(t, repo.Upsert(ctx, again))
	require.Equal(t, viewer.ID, again.ID)
	require.Equal(t, "Can only read", again.Description.String)

	byName, err := repo.GetByName(ctx, entities.RoleMember)
	require.NoError(t, err)
	require.Equal(t, f.member.ID, byName.ID)

	byID, err := repo.GetByID(ctx, f.admin.ID)
	require.NoError(t, err)
	require.Equal(t, entities.RoleAdmin, byID.Name)

	_, err = repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
	_, err = repo.GetByName(ctx, "owner")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestVerticalRepository(t *testing.T) {
	f := newFixture(t)
	repo := NewVerticalRepository(f.db)
	ctx := context.Background()

	retired := &entities.Vertical{Slug: "retired", Name: "Retired", DisplayOrder: 0, IsActive: false}
	require.NoError(t, repo.Upsert(ctx, retired))
	require.False(t, retired.IsActive)

	active, err := repo.List(ctx, entities.LifecycleActive)
	require.NoError(t, err)
	require.Len(t, active, 2)
	require.Equal(t, "core", active[0].Slug)
	require.Equal(t, "labs", active[1].Slug)

	all, err := repo.List(ctx, entities.LifecycleAny)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "retired", all[0].Slug)

	bySlug, err := repo.GetBySlug(ctx, "labs")
	require.NoError(t, err)
	require.Equal(t, f.labs.ID, bySlug.ID)

	_, err = repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestStatusRepository(t *testing.T) {
	f := newFixture(t)
	repo := NewStatusRepository(f.db)
	ctx := context.Background()

	paused := &entities.ProjectStatus{Slug: "paused", Name: "Paused", DisplayOrder: 3}
	require.NoError(t, repo.Upsert(ctx, paused))

	statuses, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"planning", "paused", "launched"},
		[]string{statuses[0].Slug, statuses[1].Slug, statuses[2].Slug})

	renamed := &entities.ProjectStatus{Slug: "paused", Name: "On hold", DisplayOrder: 3}
	require.NoError(t, repo.Upsert(ctx, renamed))
	require.Equal(t, paused.ID, renamed.ID)

	got, err := repo.GetByID(ctx, paused.ID)
	require.NoError(t, err)
	require.Equal(t, "On hold", got.Name)
}
