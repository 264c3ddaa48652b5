package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dinnartec/core-dashboard-web/internal/domain/entities"
	"github.com/Dinnartec/core-dashboard-web/internal/interfaces/http/response"
	"github.com/Dinnartec/core-dashboard-web/internal/usecases"
)

// ProjectHandler handles project endpoints
type ProjectHandler struct {
	projectUsecase *usecases.ProjectUsecase
}

func NewProjectHandler(projectUsecase *usecases.ProjectUsecase) *ProjectHandler {
	return &ProjectHandler{projectUsecase: projectUsecase}
}

// ListProjects returns active projects
// GET /api/projects?vertical=&search=
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	items, err := h.projectUsecase.List(c.Request.Context(), c.Query("vertical"), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// GetProject returns a project by id or codename
// GET /api/projects/:id
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, err := h.projectUsecase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, project)
}

// CreateProject creates a project
// POST /api/projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var input entities.CreateProjectInput
	if !bindJSON(c, &input) {
		return
	}
	project, err := h.projectUsecase.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, project)
}

// UpdateProject applies a partial update
// PATCH /api/projects/:id
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	var input entities.UpdateProjectInput
	if !bindJSON(c, &input) {
		return
	}
	project, err := h.projectUsecase.Update(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, project)
}

// DeleteProject soft-deletes a project
// DELETE /api/projects/:id
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	if err := h.projectUsecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Deleted(c)
}
