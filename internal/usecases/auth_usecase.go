package usecases

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Dinnartec/core-dashboard-web/internal/domain/entities"
	domainerrors "github.com/Dinnartec/core-dashboard-web/internal/domain/errors"
	"github.com/Dinnartec/core-dashboard-web/internal/domain/repositories"
	"github.com/Dinnartec/core-dashboard-web/pkg/crypto"
	"github.com/Dinnartec/core-dashboard-web/pkg/jwt"
	"github.com/Dinnartec/core-dashboard-web/pkg/logger"
	"github.com/Dinnartec/core-dashboard-web/pkg/redis"
)

// IdentityProvider runs the OAuth authorization code flow.
type IdentityProvider interface {
	AuthCodeURL(state string) string
	Identity(ctx context.Context, code string) (*entities.Identity, error)
}

// StateStore keeps single-use OAuth state values.
type StateStore interface {
	Save(ctx context.Context, state, redirectTo string) error
	Consume(ctx context.Context, state string) (string, error)
}

// SessionStore keeps encrypted sessions keyed by an opaque id.
type SessionStore interface {
	CreateSession(ctx context.Context, sessionID string, data *redis.SessionData, expiration time.Duration) error
	GetSession(ctx context.Context, sessionID string) (*redis.SessionData, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// AuthOptions holds the sign-in policy.
type AuthOptions struct {
	// IsAllowed reports whether an email may sign in.
	IsAllowed   func(email string) bool
	DefaultRole entities.RoleName
}

// LoginResult is returned by a completed sign-in.
type LoginResult struct {
	SessionID string
	ExpiresAt time.Time
	User      entities.SessionUser
}

const maxStateAttempts = 3

var (
	generateState     = crypto.GenerateOAuthState
	generateSessionID = crypto.GenerateSessionID
	now               = time.Now
)

// AuthUsecase gates sign-in against the allow-list, mirrors identities
// into users and manages sessions.
type AuthUsecase struct {
	provider   IdentityProvider
	states     StateStore
	sessions   SessionStore
	jwtService *jwt.JWTService
	userRepo   repositories.UserRepository
	roleRepo   repositories.RoleRepository
	opts       AuthOptions
}

func NewAuthUsecase(
	provider IdentityProvider,
	states StateStore,
	sessions SessionStore,
	jwtService *jwt.JWTService,
	userRepo repositories.UserRepository,
	roleRepo repositories.RoleRepository,
	opts AuthOptions,
) *AuthUsecase {
	if opts.DefaultRole == "" {
		opts.DefaultRole = entities.RoleMember
	}
	if opts.IsAllowed == nil {
		opts.IsAllowed = func(string) bool { return false }
	}
	return &AuthUsecase{
		provider:   provider,
		states:     states,
		sessions:   sessions,
		jwtService: jwtService,
		userRepo:   userRepo,
		roleRepo:   roleRepo,
		opts:       opts,
	}
}

// SessionTTL is the lifetime of sessions issued by CompleteLogin.
func (u *AuthUsecase) SessionTTL() time.Duration {
	return u.jwtService.Expiry()
}

// BeginLogin registers a fresh state and returns the provider URL.
func (u *AuthUsecase) BeginLogin(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxStateAttempts; attempt++ {
		state, err := generateState()
		if err != nil {
			return "", err
		}
		err = u.states.Save(ctx, state, "")
		if errors.Is(err, redis.ErrStateExists) {
			continue
		}
		if err != nil {
			return "", err
		}
		return u.provider.AuthCodeURL(state), nil
	}
	return "", redis.ErrStateExists
}

// CompleteLogin finishes the OAuth flow. Identities outside the allow-list
// get ErrNotAllowed and no session. Persisting the user is best-effort; a
// failure leaves the session without a user id.
func (u *AuthUsecase) CompleteLogin(ctx context.Context, state, code string) (*LoginResult, error) {
	if _, err := u.states.Consume(ctx, state); err != nil {
		if errors.Is(err, redis.ErrStateNotFound) {
			return nil, domainerrors.Unauthorized("Invalid OAuth state")
		}
		return nil, err
	}

	identity, err := u.provider.Identity(ctx, code)
	if err != nil {
		return nil, domainerrors.NewAppError(http.StatusUnauthorized, domainerrors.CodeUnauthorized, "OAuth exchange failed", err)
	}

	if !u.opts.IsAllowed(identity.Email) {
		logger.Warn(ctx, "Sign-in refused", zap.String("email", identity.Email))
		return nil, domainerrors.ErrNotAllowed
	}

	user := u.mirror(ctx, identity)
	sessionUser := entities.SessionUser{Email: identity.Email, Name: identity.Name}
	if user != nil {
		sessionUser.UserID = user.ID
		sessionUser.Name = user.Name
	}
	if sessionUser.Name == "" {
		sessionUser.Name = entities.LocalPart(identity.Email)
	}

	token, expiresAt, err := u.jwtService.GenerateToken(sessionUser.UserID, sessionUser.Email, sessionUser.Name)
	if err != nil {
		return nil, err
	}
	sessionID, err := generateSessionID()
	if err != nil {
		return nil, err
	}
	data := &redis.SessionData{AccessToken: token, Email: sessionUser.Email, CreatedAt: now().UTC()}
	if err := u.sessions.CreateSession(ctx, sessionID, data, u.jwtService.Expiry()); err != nil {
		return nil, err
	}

	logger.Info(ctx, "User signed in",
		zap.String("email", sessionUser.Email),
		zap.Bool("mirrored", user != nil),
	)
	return &LoginResult{SessionID: sessionID, ExpiresAt: expiresAt, User: sessionUser}, nil
}

// mirror upserts the identity with the default role. It returns nil when
// the role is missing or the write fails.
func (u *AuthUsecase) mirror(ctx context.Context, identity *entities.Identity) *entities.User {
	role, err := u.roleRepo.GetByName(ctx, u.opts.DefaultRole)
	if err != nil {
		logger.Warn(ctx, "Default role unavailable, skipping user mirror",
			zap.String("role", string(u.opts.DefaultRole)),
			zap.Error(err),
		)
		return nil
	}

	user := entities.NewMirroredUser(*identity, role.ID)
	if err := u.userRepo.UpsertMirror(ctx, user); err != nil {
		logger.Error(ctx, "Failed to mirror user", zap.String("email", identity.Email), zap.Error(err))
		return nil
	}
	return user
}

// Authenticate resolves a session id to the signed-in identity.
func (u *AuthUsecase) Authenticate(ctx context.Context, sessionID string) (*entities.SessionUser, error) {
	if sessionID == "" {
		return nil, domainerrors.ErrUnauthorized
	}
	session, err := u.sessions.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, redis.ErrSessionNotFound) {
			return nil, domainerrors.ErrUnauthorized
		}
		logger.Warn(ctx, "Session lookup failed", zap.Error(err))
		return nil, domainerrors.ErrUnauthorized
	}
	return u.AuthenticateToken(session.AccessToken)
}

// AuthenticateToken validates a signed session token.
func (u *AuthUsecase) AuthenticateToken(token string) (*entities.SessionUser, error) {
	claims, err := u.jwtService.ValidateToken(token)
	if err != nil {
		return nil, domainerrors.ErrUnauthorized
	}
	return &entities.SessionUser{UserID: claims.UserID, Email: claims.Email, Name: claims.Name}, nil
}

// Logout deletes the session. Unknown sessions are not an error.
func (u *AuthUsecase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return u.sessions.DeleteSession(ctx, sessionID)
}

// CurrentUser returns the persisted user behind a session with its role and
// permissions, or the bare session identity when no row exists.
func (u *AuthUsecase) CurrentUser(ctx context.Context, session entities.SessionUser) (*entities.CurrentUser, error) {
	user, err := u.userRepo.GetByEmail(ctx, session.Email)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return &entities.CurrentUser{
			Email:       session.Email,
			Name:        session.Name,
			Permissions: []entities.Permission{},
		}, nil
	}
	if err != nil {
		return nil, err
	}

	id := user.ID
	return &entities.CurrentUser{
		ID:          &id,
		Email:       user.Email,
		Name:        user.Name,
		Username:    user.Username,
		AvatarURL:   user.AvatarURL,
		IsActive:    user.IsActive,
		Role:        user.Role,
		Permissions: user.RoleName().Permissions(),
	}, nil
}
