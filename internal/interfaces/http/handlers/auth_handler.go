package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainerrors "github.com/Dinnartec/core-dashboard-web/internal/domain/errors"
	"github.com/Dinnartec/core-dashboard-web/internal/interfaces/http/middleware"
	"github.com/Dinnartec/core-dashboard-web/internal/interfaces/http/response"
	"github.com/Dinnartec/core-dashboard-web/internal/usecases"
	"github.com/Dinnartec/core-dashboard-web/pkg/logger"
)

// Sign-in error codes appended to the login page URL.
const (
	LoginErrorAccessDenied  = "AccessDenied"
	LoginErrorOAuthCallback = "OAuthCallback"
)

// CookieOptions controls the session cookie.
type CookieOptions struct {
	Name   string
	Secure bool
}

// AuthRedirects are the browser destinations after the OAuth callback.
type AuthRedirects struct {
	AfterLogin string
	Login      string
}

// AuthHandler handles sign-in, sign-out and the current user
type AuthHandler struct {
	authUsecase *usecases.AuthUsecase
	cookie      CookieOptions
	redirects   AuthRedirects
}

func NewAuthHandler(authUsecase *usecases.AuthUsecase, cookie CookieOptions, redirects AuthRedirects) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase, cookie: cookie, redirects: redirects}
}

// Login redirects the browser to the identity provider
// GET /auth/github/login
func (h *AuthHandler) Login(c *gin.Context) {
	target, err := h.authUsecase.BeginLogin(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Redirect(http.StatusFound, target)
}

// Callback completes the OAuth flow and sets the session cookie
// GET /auth/github/callback
func (h *AuthHandler) Callback(c *gin.Context) {
	ctx := c.Request.Context()
	result, err := h.authUsecase.CompleteLogin(ctx, c.Query("state"), c.Query("code"))
	if err != nil {
		code := LoginErrorOAuthCallback
		if errors.Is(err, domainerrors.ErrNotAllowed) {
			code = LoginErrorAccessDenied
		} else {
			logger.Warn(ctx, "OAuth callback failed", zap.Error(err))
		}
		c.Redirect(http.StatusFound, loginErrorURL(h.redirects.Login, code))
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, result.SessionID, int(h.authUsecase.SessionTTL().Seconds()), "/", "", h.cookie.Secure, true)
	c.Redirect(http.StatusFound, h.redirects.AfterLogin)
}

// Logout deletes the session and clears the cookie
// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authUsecase.Logout(c.Request.Context(), middleware.SessionID(c, h.cookie.Name)); err != nil {
		response.Error(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	response.Deleted(c)
}

// Me returns the signed-in user with role and permissions
// GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	session, ok := middleware.GetSessionUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}
	me, err := h.authUsecase.CurrentUser(c.Request.Context(), session)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, me)
}

func loginErrorURL(base, code string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	q := u.Query()
	q.Set("error", code)
	u.RawQuery = q.Encode()
	return u.String()
}
