package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Dinnartec/core-dashboard-web/internal/domain/entities"
	domainerrors "github.com/Dinnartec/core-dashboard-web/internal/domain/errors"
	"github.com/Dinnartec/core-dashboard-web/internal/domain/repositories"
	"github.com/Dinnartec/core-dashboard-web/pkg/logger"
	"github.com/Dinnartec/core-dashboard-web/pkg/utils"
)

const (
	msgRepoFieldsRequired = "Name and URL are required"
	msgLinkFieldsRequired = "Label and URL are required"
	msgPrimaryConflict    = "Another primary repository was set concurrently"
	msgUserIDRequired     = "user_id is required"
	msgInvalidUserID      = "Invalid user_id"
	msgInvalidTeamRole    = "Invalid role"
	msgAlreadyTeamMember  = "User is already a team member"
)

// ProjectChildrenUsecase manages a project's repositories, links and team.
// Lists are scoped only by project id; writes need an active project.
type ProjectChildrenUsecase struct {
	projectRepo repositories.ProjectRepository
	repoRepo    repositories.ProjectRepoRepository
	linkRepo    repositories.ProjectLinkRepository
	teamRepo    repositories.TeamMemberRepository
	userRepo    repositories.UserRepository
	uow         repositories.UnitOfWork
}

func NewProjectChildrenUsecase(
	projectRepo repositories.ProjectRepository,
	repoRepo repositories.ProjectRepoRepository,
	linkRepo repositories.ProjectLinkRepository,
	teamRepo repositories.TeamMemberRepository,
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
) *ProjectChildrenUsecase {
	return &ProjectChildrenUsecase{
		projectRepo: projectRepo,
		repoRepo:    repoRepo,
		linkRepo:    linkRepo,
		teamRepo:    teamRepo,
		userRepo:    userRepo,
		uow:         uow,
	}
}

func parseProjectID(raw string) (uuid.UUID, error) {
	id, ok := utils.ParseUUID(raw)
	if !ok {
		return uuid.Nil, domainerrors.NotFound(msgProjectNotFound)
	}
	return id, nil
}

// requireActiveProject fails with 404 unless the project exists and is active.
func (u *ProjectChildrenUsecase) requireActiveProject(ctx context.Context, id uuid.UUID) error {
	if _, err := u.projectRepo.GetByID(ctx, id, entities.LifecycleActive); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound(msgProjectNotFound)
		}
		return err
	}
	return nil
}

// parseChildID turns a missing or malformed child id into the same 400.
func parseChildID(raw, param string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, domainerrors.BadRequest(param + " is required")
	}
	id, ok := utils.ParseUUID(raw)
	if !ok {
		// An id that cannot exist deletes nothing.
		return uuid.Nil, nil
	}
	return id, nil
}

// ListRepos returns repositories, primary first then oldest first.
func (u *ProjectChildrenUsecase) ListRepos(ctx context.Context, rawProjectID string) ([]*entities.ProjectRepo, error) {
	projectID, err := parseProjectID(rawProjectID)
	if err != nil {
		return nil, err
	}
	return u.repoRepo.ListByProject(ctx, projectID)
}

// AddRepo inserts a repository. A primary repository replaces the current
// primary in the same transaction.
func (u *ProjectChildrenUsecase) AddRepo(ctx context.Context, rawProjectID string, input *entities.CreateRepoInput) (*entities.ProjectRepo, error) {
	projectID, err := parseProjectID(rawProjectID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	url := strings.TrimSpace(input.URL)
	if name == "" || url == "" {
		return nil, domainerrors.BadRequest(msgRepoFieldsRequired)
	}

	repo := &entities.ProjectRepo{
		ProjectID: projectID,
		Name:      name,
		URL:       url,
		IsPrimary: input.IsPrimary,
	}
	if input.Type != nil {
		repo.Type = optionalText(*input.Type)
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.requireActiveProject(ctx, projectID); err != nil {
			return err
		}
		if repo.IsPrimary {
			if err := u.repoRepo.ClearPrimary(ctx, projectID); err != nil {
				return err
			}
		}
		return u.repoRepo.Create(ctx, repo)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			logger.Warn(ctx, "Concurrent primary repository write", zap.String("project_id", projectID.String()))
			return nil, domainerrors.BadRequest(msgPrimaryConflict)
		}
		return nil, err
	}
	return repo, nil
}

// DeleteRepo removes a repository of the project. The delete is scoped by
// both ids only, so an unknown project or a repository of another project
// deletes nothing.
func (u *ProjectChildrenUsecase) DeleteRepo(ctx context.Context, rawProjectID, rawRepoID string) error {
	projectID, err := parseProjectID(rawProjectID)
	if err != nil {
		return err
	}
	repoID, err := parseChildID(rawRepoID, "repoId")
	if err != nil {
		return err
	}
	if repoID == uuid.Nil {
		return nil
	}
	return u.repoRepo.Delete(ctx, projectID, repoID)
}

func (u *ProjectChildrenUsecase) ListLinks(ctx context.Context, rawProjectID string) ([]*entities.ProjectLink, error) {
	projectID, err := parseProjectID(rawProjectID)
	if err != nil {
		return nil, err
	}
	return u.linkRepo.ListByProject(ctx, projectID)
}

func (u *ProjectChildrenUsecase) AddLink(ctx context.Context, rawProjectID string, input *entities.CreateLinkInput) (*entities.ProjectLink, error) {
	projectID, err := parseProjectID(rawProjectID)
	if err != nil {
		return nil, err
	}
	label := strings.TrimSpace(input.Label)
	url := strings.TrimSpace(input.URL)
	if label == "" || url == "" {
		return nil, domainerrors.BadRequest(msgLinkFieldsRequired)
	}
	if err := u.requireActiveProject(ctx, projectID); err != nil {
		return nil, err
	}

	link := &entities.ProjectLink{ProjectID: projectID, Label: label, URL: url}
	if input.Type != nil {
		link.Type = optionalText(*input.Type)
	}
	if err := u.linkRepo.Create(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (u *ProjectChildrenUsecase) DeleteLink(ctx context.Context, rawProjectID, rawLinkID string) error {
	projectID, err := parseProjectID(rawProjectID)
	if err != nil {
		return err
	}
	linkID, err := parseChildID(rawLinkID, "linkId")
	if err != nil {
		return err
	}
	if linkID == uuid.Nil {
		return nil
	}
	return u.linkRepo.Delete(ctx, projectID, linkID)
}

// ListTeam returns members ordered by role then assignment time.
func (u *ProjectChildrenUsecase) ListTeam(ctx context.Context, rawProjectID string) ([]*entities.TeamMember, error) {
	projectID, err := parseProjectID(rawProjectID)
	if err != nil {
		return nil, err
	}
	return u.teamRepo.ListByProject(ctx, projectID)
}

// AddTeamMember assigns a user to the project. The duplicate check and the
// insert share a transaction; the unique index catches concurrent adds.
func (u *ProjectChildrenUsecase) AddTeamMember(ctx context.Context, rawProjectID string, input *entities.AddTeamMemberInput) (*entities.TeamMember, error) {
	projectID, err := parseProjectID(rawProjectID)
	if err != nil {
		return nil, err
	}
	rawUserID := strings.TrimSpace(input.UserID)
	if rawUserID == "" {
		return nil, domainerrors.BadRequest(msgUserIDRequired)
	}
	role := input.Role
	if role == "" {
		role = entities.TeamRoleMember
	}
	if !role.Valid() {
		return nil, domainerrors.BadRequest(msgInvalidTeamRole)
	}
	userID, ok := utils.ParseUUID(rawUserID)
	if !ok {
		return nil, domainerrors.BadRequest(msgInvalidUserID)
	}

	member := &entities.TeamMember{ProjectID: projectID, UserID: userID, Role: role}
	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.requireActiveProject(ctx, projectID); err != nil {
			return err
		}
		if _, err := u.userRepo.GetByID(ctx, userID); err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.BadRequest(msgInvalidUserID)
			}
			return err
		}
		exists, err := u.teamRepo.Exists(ctx, projectID, userID)
		if err != nil {
			return err
		}
		if exists {
			return domainerrors.BadRequest(msgAlreadyTeamMember)
		}
		return u.teamRepo.Create(ctx, member)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.BadRequest(msgAlreadyTeamMember)
		}
		return nil, err
	}
	return u.teamRepo.GetByID(ctx, member.ID)
}

func (u *ProjectChildrenUsecase) RemoveTeamMember(ctx context.Context, rawProjectID, rawMemberID string) error {
	projectID, err := parseProjectID(rawProjectID)
	if err != nil {
		return err
	}
	memberID, err := parseChildID(rawMemberID, "memberId")
	if err != nil {
		return err
	}
	if memberID == uuid.Nil {
		return nil
	}
	return u.teamRepo.Delete(ctx, projectID, memberID)
}
