package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dinnartec/core-dashboard-web/internal/domain/entities"
	"github.com/Dinnartec/core-dashboard-web/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAuthenticator struct {
	sessions map[string]*entities.SessionUser
	tokens   map[string]*entities.SessionUser
}

func (s *stubAuthenticator) Authenticate(_ context.Context, sid string) (*entities.SessionUser, error) {
	if u, ok := s.sessions[sid]; ok {
		return u, nil
	}
	return nil, errors.New("unknown session")
}

func (s *stubAuthenticator) AuthenticateToken(token string) (*entities.SessionUser, error) {
	if u, ok := s.tokens[token]; ok {
		return u, nil
	}
	return nil, errors.New("bad token")
}

func sessionRouter(auth Authenticator) *gin.Engine {
	r := gin.New()
	r.GET("/private", SessionAuth(auth, "core_session"), func(c *gin.Context) {
		user, ok := GetSessionUser(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": user.Email, "id": user.UserID, "name": user.Name})
	})
	return r
}

func TestSessionAuth(t *testing.T) {
	ana := &entities.SessionUser{UserID: uuid.New(), Email: "ana@dinnartec.com", Name: "Ana"}
	auth := &stubAuthenticator{
		sessions: map[string]*entities.SessionUser{"sid-1": ana},
		tokens:   map[string]*entities.SessionUser{"jwt-1": ana},
	}
	r := sessionRouter(auth)

	tests := []struct {
		name   string
		setup  func(req *http.Request)
		status int
	}{
		{"cookie", func(req *http.Request) { req.AddCookie(&http.Cookie{Name: "core_session", Value: "sid-1"}) }, http.StatusOK},
		{"header", func(req *http.Request) { req.Header.Set(SessionIDHeader, "sid-1") }, http.StatusOK},
		{"bearer", func(req *http.Request) { req.Header.Set(AuthorizationHeader, "Bearer jwt-1") }, http.StatusOK},
		{"missing", func(*http.Request) {}, http.StatusUnauthorized},
		{"unknown session", func(req *http.Request) { req.AddCookie(&http.Cookie{Name: "core_session", Value: "nope"}) }, http.StatusUnauthorized},
		{"bad token", func(req *http.Request) { req.Header.Set(AuthorizationHeader, "Bearer nope") }, http.StatusUnauthorized},
		{"basic auth", func(req *http.Request) { req.Header.Set(AuthorizationHeader, "Basic abc") }, http.StatusUnauthorized},
		{"stale cookie with bearer", func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: "core_session", Value: "expired"})
			req.Header.Set(AuthorizationHeader, "Bearer jwt-1")
		}, http.StatusOK},
		{"stale cookie with bad bearer", func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: "core_session", Value: "expired"})
			req.Header.Set(AuthorizationHeader, "Bearer nope")
		}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusUnauthorized {
				assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), ana.UserID.String())
			}
		})
	}
}

func TestGetSessionUser_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := GetSessionUser(c)
	assert.False(t, ok)
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	var fromCtx interface{}
	r.GET("/", func(c *gin.Context) {
		fromCtx = c.Request.Context().Value(logger.RequestIDKey)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, fromCtx)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "req-42", fromCtx)
}

func TestLoggerMiddlewarePassesThrough(t *testing.T) {
	r := gin.New()
	r.Use(LoggerMiddleware("/health"))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/x", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/x?q=1", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestMetrics(t *testing.T) {
	m := NewMetrics("core_dashboard")
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/projects/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/projects/abc", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	text := string(body)
	assert.Contains(t, text, `core_dashboard_http_requests_total{method="GET",route="/api/projects/:id",status="404"} 1`)
	assert.Contains(t, text, `route="unmatched"`)
	assert.Contains(t, text, "core_dashboard_http_request_duration_seconds_bucket")
}

func TestRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	rl := NewRateLimiter(ctx, 0.001, 2)
	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/auth/github/login", func(c *gin.Context) { c.Status(http.StatusFound) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/github/login", nil))
		codes = append(codes, w.Code)
		if w.Code == http.StatusTooManyRequests {
			assert.JSONEq(t, `{"error":"Too many requests"}`, w.Body.String())
		}
	}
	assert.Equal(t, []int{http.StatusFound, http.StatusFound, http.StatusTooManyRequests}, codes)
}

func TestRateLimiterSweep(t *testing.T) {
	rl := &RateLimiter{limiters: map[string]*ipLimiter{}, rps: 1, burst: 1}
	rl.getLimiter("10.0.0.1")
	rl.getLimiter("10.0.0.2")
	rl.limiters["10.0.0.1"].lastSeen = time.Now().Add(-10 * time.Minute)

	rl.sweep(time.Now())
	assert.NotContains(t, rl.limiters, "10.0.0.1")
	assert.Contains(t, rl.limiters, "10.0.0.2")
}

func TestRateLimiterSweepLoopStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	rl := NewRateLimiter(ctx, 1, 1)

	select {
	case <-rl.stopped:
		t.Fatal("sweep loop exited before cancel")
	default:
	}

	cancel()
	select {
	case <-rl.stopped:
	case <-time.After(time.Second):
		t.Fatal("sweep loop still running after cancel")
	}
}
