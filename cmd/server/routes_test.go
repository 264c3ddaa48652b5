package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Dinnartec/core-dashboard-web/internal/interfaces/http/handlers"
)

func TestRegisterRoutes_RegistersKeyRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	pass := func(c *gin.Context) { c.Next() }

	registerRoutes(r, routeDeps{
		authHandler:      &handlers.AuthHandler{},
		projectHandler:   &handlers.ProjectHandler{},
		childrenHandler:  &handlers.ProjectChildrenHandler{},
		userHandler:      &handlers.UserHandler{},
		referenceHandler: &handlers.ReferenceHandler{},
		dashboardHandler: &handlers.DashboardHandler{},
		sessionAuth:      pass,
		authRateLimit:    pass,
	})

	routes := r.Routes()
	if len(routes) != 29 {
		t.Fatalf("expected 29 routes registered, got %d", len(routes))
	}

	expects := []struct {
		method string
		path   string
	}{
		{"GET", "/auth/github/login"},
		{"GET", "/auth/github/callback"},
		{"POST", "/auth/logout"},
		{"GET", "/auth/me"},
		{"GET", "/api/projects"},
		{"PATCH", "/api/projects/:id"},
		{"DELETE", "/api/projects/:id/repos"},
		{"POST", "/api/projects/:id/team"},
		{"PATCH", "/api/users/:id/role"},
		{"GET", "/api/verticals"},
		{"GET", "/api/dashboard/recent"},
	}

	for _, exp := range expects {
		found := false
		for _, route := range routes {
			if route.Method == exp.method && route.Path == exp.path {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("route %s %s not registered", exp.method, exp.path)
		}
	}
}

func TestRegisterRoutes_APIRequiresSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	deny := func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	registerRoutes(r, routeDeps{
		authHandler:      &handlers.AuthHandler{},
		projectHandler:   &handlers.ProjectHandler{},
		childrenHandler:  &handlers.ProjectChildrenHandler{},
		userHandler:      &handlers.UserHandler{},
		referenceHandler: &handlers.ReferenceHandler{},
		dashboardHandler: &handlers.DashboardHandler{},
		sessionAuth:      deny,
		authRateLimit:    func(c *gin.Context) { c.Next() },
	})

	for _, path := range []string{"/api/projects", "/api/users", "/api/dashboard", "/auth/me"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, rec.Code)
		}
	}
}
