package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"github.com/Dinnartec/core-dashboard-web/internal/domain/entities"
	domainerrors "github.com/Dinnartec/core-dashboard-web/internal/domain/errors"
	"github.com/Dinnartec/core-dashboard-web/internal/domain/repositories"
	"github.com/Dinnartec/core-dashboard-web/pkg/utils"
)

const (
	msgProjectNotFound   = "Project not found"
	msgMissingProject    = "Missing required fields: name, codename, vertical_id, status_id"
	msgCodenameFormat    = "Codename must be lowercase letters, numbers, and hyphens only"
	msgCodenameTaken     = "A project with this codename already exists"
	msgInvalidVerticalID = "Invalid vertical_id"
	msgInvalidStatusID   = "Invalid status_id"
	msgNoFieldsToUpdate  = "No fields to update"
)

// ProjectUsecase handles project reads and writes
type ProjectUsecase struct {
	projectRepo  repositories.ProjectRepository
	verticalRepo repositories.VerticalRepository
	statusRepo   repositories.StatusRepository
}

func NewProjectUsecase(
	projectRepo repositories.ProjectRepository,
	verticalRepo repositories.VerticalRepository,
	statusRepo repositories.StatusRepository,
) *ProjectUsecase {
	return &ProjectUsecase{
		projectRepo:  projectRepo,
		verticalRepo: verticalRepo,
		statusRepo:   statusRepo,
	}
}

// List returns active projects, most recently updated first.
func (u *ProjectUsecase) List(ctx context.Context, verticalSlug, search string) ([]*entities.ProjectListItem, error) {
	return u.projectRepo.List(ctx, entities.ProjectFilter{
		Lifecycle:    entities.LifecycleActive,
		VerticalSlug: strings.TrimSpace(verticalSlug),
		Search:       strings.TrimSpace(search),
	})
}

// Get loads an active project by id or, when key is not a UUID, by codename.
func (u *ProjectUsecase) Get(ctx context.Context, key string) (*entities.ProjectDetail, error) {
	var (
		detail *entities.ProjectDetail
		err    error
	)
	if id, ok := utils.ParseUUID(key); ok {
		detail, err = u.projectRepo.GetDetailByID(ctx, id, entities.LifecycleActive)
	} else {
		detail, err = u.projectRepo.GetDetailByCodename(ctx, key, entities.LifecycleActive)
	}
	if errors.Is(err, domainerrors.ErrNotFound) {
		return nil, domainerrors.NotFound(msgProjectNotFound)
	}
	return detail, err
}

// Create validates input and inserts an active project.
func (u *ProjectUsecase) Create(ctx context.Context, input *entities.CreateProjectInput) (*entities.Project, error) {
	name := strings.TrimSpace(input.Name)
	codename := strings.TrimSpace(input.Codename)
	if name == "" || codename == "" || input.VerticalID == "" || input.StatusID == "" {
		return nil, domainerrors.BadRequest(msgMissingProject)
	}
	if !entities.ValidCodename(codename) {
		return nil, domainerrors.BadRequest(msgCodenameFormat)
	}
	taken, err := u.projectRepo.CodenameTaken(ctx, codename, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domainerrors.BadRequest(msgCodenameTaken)
	}

	verticalID, err := u.resolveVertical(ctx, input.VerticalID)
	if err != nil {
		return nil, err
	}
	statusID, err := u.resolveStatus(ctx, input.StatusID)
	if err != nil {
		return nil, err
	}

	project := &entities.Project{
		Name:       name,
		Codename:   codename,
		VerticalID: verticalID,
		StatusID:   statusID,
		IsActive:   true,
	}
	if input.Description != nil {
		project.Description = optionalText(*input.Description)
	}
	if input.StartedAt != nil {
		started, err := optionalDate("started_at", *input.StartedAt)
		if err != nil {
			return nil, err
		}
		project.StartedAt = started
	}

	if err := u.projectRepo.Create(ctx, project); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.BadRequest(msgCodenameTaken)
		}
		return nil, err
	}
	return u.projectRepo.GetByID(ctx, project.ID, entities.LifecycleActive)
}

// Update applies the fields present in input to an active project.
func (u *ProjectUsecase) Update(ctx context.Context, rawID string, input *entities.UpdateProjectInput) (*entities.Project, error) {
	id, ok := utils.ParseUUID(rawID)
	if !ok {
		return nil, domainerrors.NotFound(msgProjectNotFound)
	}
	if input.Empty() {
		return nil, domainerrors.BadRequest(msgNoFieldsToUpdate)
	}

	changes, err := u.buildChanges(ctx, id, input)
	if err != nil {
		return nil, err
	}

	if err := u.projectRepo.Update(ctx, id, changes); err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrNotFound):
			return nil, domainerrors.NotFound(msgProjectNotFound)
		case errors.Is(err, domainerrors.ErrAlreadyExists):
			return nil, domainerrors.BadRequest(msgCodenameTaken)
		}
		return nil, err
	}
	return u.projectRepo.GetByID(ctx, id, entities.LifecycleActive)
}

func (u *ProjectUsecase) buildChanges(ctx context.Context, id uuid.UUID, input *entities.UpdateProjectInput) (entities.ProjectChanges, error) {
	var changes entities.ProjectChanges

	if input.Name.Set {
		name := strings.TrimSpace(input.Name.Value)
		if input.Name.Null || name == "" {
			return changes, domainerrors.BadRequest("Name cannot be empty")
		}
		changes.Name = &name
	}

	if input.Codename.Set {
		codename := strings.TrimSpace(input.Codename.Value)
		if input.Codename.Null || !entities.ValidCodename(codename) {
			return changes, domainerrors.BadRequest(msgCodenameFormat)
		}
		taken, err := u.projectRepo.CodenameTaken(ctx, codename, id)
		if err != nil {
			return changes, err
		}
		if taken {
			return changes, domainerrors.BadRequest(msgCodenameTaken)
		}
		changes.Codename = &codename
	}

	if input.VerticalID.Set {
		if input.VerticalID.Null {
			return changes, domainerrors.BadRequest(msgInvalidVerticalID)
		}
		verticalID, err := u.resolveVertical(ctx, input.VerticalID.Value)
		if err != nil {
			return changes, err
		}
		changes.VerticalID = &verticalID
	}

	if input.StatusID.Set {
		if input.StatusID.Null {
			return changes, domainerrors.BadRequest(msgInvalidStatusID)
		}
		statusID, err := u.resolveStatus(ctx, input.StatusID.Value)
		if err != nil {
			return changes, err
		}
		changes.StatusID = &statusID
	}

	if input.Description.Set {
		desc := null.String{}
		if !input.Description.Null {
			desc = optionalText(input.Description.Value)
		}
		changes.Description = &desc
	}

	var err error
	if changes.StartedAt, err = dateChange("started_at", input.StartedAt); err != nil {
		return changes, err
	}
	if changes.LaunchedAt, err = dateChange("launched_at", input.LaunchedAt); err != nil {
		return changes, err
	}
	return changes, nil
}

// Delete soft-deletes a project. Deleting an inactive or unknown project
// succeeds.
func (u *ProjectUsecase) Delete(ctx context.Context, rawID string) error {
	id, ok := utils.ParseUUID(rawID)
	if !ok {
		return domainerrors.NotFound(msgProjectNotFound)
	}
	return u.projectRepo.SoftDelete(ctx, id)
}

func (u *ProjectUsecase) resolveVertical(ctx context.Context, raw string) (uuid.UUID, error) {
	id, ok := utils.ParseUUID(strings.TrimSpace(raw))
	if !ok {
		return uuid.Nil, domainerrors.BadRequest(msgInvalidVerticalID)
	}
	if _, err := u.verticalRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return uuid.Nil, domainerrors.BadRequest(msgInvalidVerticalID)
		}
		return uuid.Nil, err
	}
	return id, nil
}

func (u *ProjectUsecase) resolveStatus(ctx context.Context, raw string) (uuid.UUID, error) {
	id, ok := utils.ParseUUID(strings.TrimSpace(raw))
	if !ok {
		return uuid.Nil, domainerrors.BadRequest(msgInvalidStatusID)
	}
	if _, err := u.statusRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return uuid.Nil, domainerrors.BadRequest(msgInvalidStatusID)
		}
		return uuid.Nil, err
	}
	return id, nil
}

// optionalText maps blank text to NULL.
func optionalText(s string) null.String {
	s = strings.TrimSpace(s)
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}

// optionalDate maps blank text to NULL and rejects unparseable dates.
func optionalDate(field, s string) (null.Time, error) {
	if strings.TrimSpace(s) == "" {
		return null.Time{}, nil
	}
	t, err := entities.ParseDate(s)
	if err != nil {
		return null.Time{}, domainerrors.BadRequest("Invalid " + field)
	}
	return null.TimeFrom(t), nil
}

func dateChange(field string, in entities.Optional[string]) (*null.Time, error) {
	if !in.Set {
		return nil, nil
	}
	if in.Null {
		cleared := null.Time{}
		return &cleared, nil
	}
	t, err := optionalDate(field, in.Value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

