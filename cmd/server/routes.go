package main

import (
	"github.com/gin-gonic/gin"

	"github.com/Dinnartec/core-dashboard-web/internal/interfaces/http/handlers"
)

type routeDeps struct {
	authHandler      *handlers.AuthHandler
	projectHandler   *handlers.ProjectHandler
	childrenHandler  *handlers.ProjectChildrenHandler
	userHandler      *handlers.UserHandler
	referenceHandler *handlers.ReferenceHandler
	dashboardHandler *handlers.DashboardHandler
	sessionAuth      gin.HandlerFunc
	authRateLimit    gin.HandlerFunc
}

func registerRoutes(r *gin.Engine, d routeDeps) {
	// Sign-in routes (public, rate limited)
	auth := r.Group("/auth")
	auth.Use(d.authRateLimit)
	{
		auth.GET("/github/login", d.authHandler.Login)
		auth.GET("/github/callback", d.authHandler.Callback)
		auth.POST("/logout", d.authHandler.Logout)
		auth.GET("/me", d.sessionAuth, d.authHandler.Me)
	}

	api := r.Group("/api")
	api.Use(d.sessionAuth)
	{
		projects := api.Group("/projects")
		{
			projects.GET("", d.projectHandler.ListProjects)
			projects.POST("", d.projectHandler.CreateProject)
			projects.GET("/:id", d.projectHandler.GetProject)
			projects.PATCH("/:id", d.projectHandler.UpdateProject)
			projects.DELETE("/:id", d.projectHandler.DeleteProject)

			projects.GET("/:id/repos", d.childrenHandler.ListRepos)
			projects.POST("/:id/repos", d.childrenHandler.AddRepo)
			projects.DELETE("/:id/repos", d.childrenHandler.DeleteRepo)

			projects.GET("/:id/links", d.childrenHandler.ListLinks)
			projects.POST("/:id/links", d.childrenHandler.AddLink)
			projects.DELETE("/:id/links", d.childrenHandler.DeleteLink)

			projects.GET("/:id/team", d.childrenHandler.ListTeam)
			projects.POST("/:id/team", d.childrenHandler.AddTeamMember)
			projects.DELETE("/:id/team", d.childrenHandler.RemoveTeamMember)
		}

		users := api.Group("/users")
		{
			users.GET("", d.userHandler.ListUsers)
			users.GET("/:id", d.userHandler.GetUser)
			users.PATCH("/:id", d.userHandler.UpdateUser)
			users.DELETE("/:id", d.userHandler.DeactivateUser)
			users.PATCH("/:id/role", d.userHandler.ChangeRole)
		}

		api.GET("/verticals", d.referenceHandler.ListVerticals)
		api.GET("/statuses", d.referenceHandler.ListStatuses)
		api.GET("/roles", d.referenceHandler.ListRoles)

		dashboard := api.Group("/dashboard")
		{
			dashboard.GET("", d.dashboardHandler.Overview)
			dashboard.GET("/stats", d.dashboardHandler.Stats)
			dashboard.GET("/recent", d.dashboardHandler.Recent)
		}
	}
}
