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
	msgUserNotFound      = "User not found"
	msgForbidden         = "Forbidden"
	msgCannotChangeOwn   = "Cannot change your own role"
	msgCannotDeactivate  = "Cannot deactivate yourself"
	msgRoleIDRequired    = "role_id is required"
	msgInvalidRole       = "Invalid role"
	msgNameCannotBeEmpty = "Name cannot be empty"
)

// UserUsecase handles user listing and administration
type UserUsecase struct {
	userRepo repositories.UserRepository
	roleRepo repositories.RoleRepository
}

func NewUserUsecase(userRepo repositories.UserRepository, roleRepo repositories.RoleRepository) *UserUsecase {
	return &UserUsecase{userRepo: userRepo, roleRepo: roleRepo}
}

// List returns active users ordered by name.
func (u *UserUsecase) List(ctx context.Context) ([]*entities.User, error) {
	return u.userRepo.List(ctx, entities.LifecycleActive)
}

func (u *UserUsecase) Get(ctx context.Context, rawID string) (*entities.User, error) {
	id, ok := utils.ParseUUID(rawID)
	if !ok {
		return nil, domainerrors.NotFound(msgUserNotFound)
	}
	user, err := u.userRepo.GetByID(ctx, id)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return nil, domainerrors.NotFound(msgUserNotFound)
	}
	return user, err
}

// caller loads the persisted row of the signed-in identity. A session
// without a row yields nil.
func (u *UserUsecase) caller(ctx context.Context, session entities.SessionUser) (*entities.User, error) {
	user, err := u.userRepo.GetByEmail(ctx, session.Email)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return nil, nil
	}
	return user, err
}

// requireAdmin fails with 403 unless the caller's role grants users:manage.
func (u *UserUsecase) requireAdmin(ctx context.Context, session entities.SessionUser) (*entities.User, error) {
	caller, err := u.caller(ctx, session)
	if err != nil {
		return nil, err
	}
	if caller == nil || !caller.IsAdmin() {
		logger.Warn(ctx, "Admin action refused", zap.String("email", session.Email))
		return nil, domainerrors.Forbidden(msgForbidden)
	}
	return caller, nil
}

// UpdateProfile renames a user. Callers may edit themselves; admins may edit
// anyone. updated_at is refreshed even when no name is given.
func (u *UserUsecase) UpdateProfile(ctx context.Context, session entities.SessionUser, rawID string, input *entities.UpdateUserInput) (*entities.User, error) {
	caller, err := u.caller(ctx, session)
	if err != nil {
		return nil, err
	}
	id, ok := utils.ParseUUID(rawID)
	if caller == nil || (caller.ID != id && !caller.IsAdmin()) {
		return nil, domainerrors.Forbidden(msgForbidden)
	}
	if !ok {
		return nil, domainerrors.NotFound(msgUserNotFound)
	}

	var name *string
	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		if trimmed == "" {
			return nil, domainerrors.BadRequest(msgNameCannotBeEmpty)
		}
		name = &trimmed
	}

	if err := u.userRepo.UpdateName(ctx, id, name); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound(msgUserNotFound)
		}
		return nil, err
	}
	return u.userRepo.GetByID(ctx, id)
}

// Deactivate soft-deletes a user. Admin only; never the caller.
func (u *UserUsecase) Deactivate(ctx context.Context, session entities.SessionUser, rawID string) error {
	caller, err := u.requireAdmin(ctx, session)
	if err != nil {
		return err
	}
	id, ok := utils.ParseUUID(rawID)
	if ok && id == caller.ID {
		return domainerrors.BadRequest(msgCannotDeactivate)
	}
	if !ok {
		return domainerrors.NotFound(msgUserNotFound)
	}

	if err := u.userRepo.SetActive(ctx, id, false); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound(msgUserNotFound)
		}
		return err
	}
	logger.Info(ctx, "User deactivated", zap.String("user_id", id.String()), zap.String("by", caller.Email))
	return nil
}

// ChangeRole assigns a role to a user. Admin only; never the caller.
func (u *UserUsecase) ChangeRole(ctx context.Context, session entities.SessionUser, rawID string, input *entities.ChangeRoleInput) (*entities.User, error) {
	caller, err := u.requireAdmin(ctx, session)
	if err != nil {
		return nil, err
	}
	id, ok := utils.ParseUUID(rawID)
	if ok && id == caller.ID {
		return nil, domainerrors.BadRequest(msgCannotChangeOwn)
	}
	roleRaw := strings.TrimSpace(input.RoleID)
	if roleRaw == "" {
		return nil, domainerrors.BadRequest(msgRoleIDRequired)
	}
	roleID, err := u.resolveRole(ctx, roleRaw)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domainerrors.NotFound(msgUserNotFound)
	}

	if err := u.userRepo.SetRole(ctx, id, roleID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound(msgUserNotFound)
		}
		return nil, err
	}
	logger.Info(ctx, "User role changed",
		zap.String("user_id", id.String()),
		zap.String("role_id", roleID.String()),
		zap.String("by", caller.Email),
	)
	return u.userRepo.GetByID(ctx, id)
}

func (u *UserUsecase) resolveRole(ctx context.Context, raw string) (uuid.UUID, error) {
	id, ok := utils.ParseUUID(raw)
	if !ok {
		return uuid.Nil, domainerrors.BadRequest(msgInvalidRole)
	}
	if _, err := u.roleRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return uuid.Nil, domainerrors.BadRequest(msgInvalidRole)
		}
		return uuid.Nil, err
	}
	return id, nil
}

// SetRoleByEmail assigns a role by name. Used to bootstrap the first admin
// from the command line, so no caller check applies.
func (u *UserUsecase) SetRoleByEmail(ctx context.Context, email string, roleName entities.RoleName) (*entities.User, error) {
	if !roleName.Valid() {
		return nil, domainerrors.BadRequest(msgInvalidRole)
	}
	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound(msgUserNotFound)
		}
		return nil, err
	}
	role, err := u.roleRepo.GetByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.BadRequest(msgInvalidRole)
		}
		return nil, err
	}
	if err := u.userRepo.SetRole(ctx, user.ID, role.ID); err != nil {
		return nil, err
	}
	return u.userRepo.GetByID(ctx, user.ID)
}
