package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Dinnartec/core-dashboard-web/internal/domain/entities"
	"github.com/Dinnartec/core-dashboard-web/pkg/logger"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// SessionIDHeader carries the session id for clients without cookies
	SessionIDHeader = "X-Session-ID"
	// UserIDKey is the context key for user ID
	UserIDKey = "userId"
	// UserEmailKey is the context key for user email
	UserEmailKey = "userEmail"
	// UserNameKey is the context key for the display name
	UserNameKey = "userName"
)

// Authenticator resolves request credentials to a signed-in identity.
type Authenticator interface {
	Authenticate(ctx context.Context, sessionID string) (*entities.SessionUser, error)
	AuthenticateToken(token string) (*entities.SessionUser, error)
}

// SessionID returns the session id sent with the request, from the cookie or
// the X-Session-ID header.
func SessionID(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}
	return strings.TrimSpace(c.GetHeader(SessionIDHeader))
}

func validUser(user *entities.SessionUser, err error) *entities.SessionUser {
	if err != nil || user == nil || user.Email == "" {
		return nil
	}
	return user
}

// SessionAuth rejects requests without a valid session with
// 401 {"error":"Unauthorized"}. The session id is tried first, then a bearer
// token.
func SessionAuth(auth Authenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var user *entities.SessionUser
		if sid := SessionID(c, cookieName); sid != "" {
			user = validUser(auth.Authenticate(ctx, sid))
		}
		// A stale session cookie must not shadow a valid bearer token.
		if header := c.GetHeader(AuthorizationHeader); user == nil && strings.HasPrefix(header, BearerPrefix) {
			user = validUser(auth.AuthenticateToken(strings.TrimPrefix(header, BearerPrefix)))
		}
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set(UserIDKey, user.UserID)
		c.Set(UserEmailKey, user.Email)
		c.Set(UserNameKey, user.Name)
		c.Request = c.Request.WithContext(logger.WithUserEmail(ctx, user.Email))

		c.Next()
	}
}

// GetSessionUser returns the identity set by SessionAuth.
func GetSessionUser(c *gin.Context) (entities.SessionUser, bool) {
	email := c.GetString(UserEmailKey)
	if email == "" {
		return entities.SessionUser{}, false
	}
	user := entities.SessionUser{Email: email, Name: c.GetString(UserNameKey)}
	if id, ok := c.Get(UserIDKey); ok {
		user.UserID, _ = id.(uuid.UUID)
	}
	return user, true
}
