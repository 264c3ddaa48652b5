package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dinnartec/core-dashboard-web/internal/domain/entities"
	"github.com/Dinnartec/core-dashboard-web/internal/interfaces/http/response"
	"github.com/Dinnartec/core-dashboard-web/internal/usecases"
)

// ProjectChildrenHandler handles a project's repos, links and team
type ProjectChildrenHandler struct {
	childrenUsecase *usecases.ProjectChildrenUsecase
}

func NewProjectChildrenHandler(childrenUsecase *usecases.ProjectChildrenUsecase) *ProjectChildrenHandler {
	return &ProjectChildrenHandler{childrenUsecase: childrenUsecase}
}

// GET /api/projects/:id/repos
func (h *ProjectChildrenHandler) ListRepos(c *gin.Context) {
	repos, err := h.childrenUsecase.ListRepos(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, repos)
}

// POST /api/projects/:id/repos
func (h *ProjectChildrenHandler) AddRepo(c *gin.Context) {
	var input entities.CreateRepoInput
	if !bindJSON(c, &input) {
		return
	}
	repo, err := h.childrenUsecase.AddRepo(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, repo)
}

// DELETE /api/projects/:id/repos?repoId=
func (h *ProjectChildrenHandler) DeleteRepo(c *gin.Context) {
	if err := h.childrenUsecase.DeleteRepo(c.Request.Context(), c.Param("id"), c.Query("repoId")); err != nil {
		response.Error(c, err)
		return
	}
	response.Deleted(c)
}

// GET /api/projects/:id/links
func (h *ProjectChildrenHandler) ListLinks(c *gin.Context) {
	links, err := h.childrenUsecase.ListLinks(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, links)
}

// POST /api/projects/:id/links
func (h *ProjectChildrenHandler) AddLink(c *gin.Context) {
	var input entities.CreateLinkInput
	if !bindJSON(c, &input) {
		return
	}
	link, err := h.childrenUsecase.AddLink(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, link)
}

// DELETE /api/projects/:id/links?linkId=
func (h *ProjectChildrenHandler) DeleteLink(c *gin.Context) {
	if err := h.childrenUsecase.DeleteLink(c.Request.Context(), c.Param("id"), c.Query("linkId")); err != nil {
		response.Error(c, err)
		return
	}
	response.Deleted(c)
}

// GET /api/projects/:id/team
func (h *ProjectChildrenHandler) ListTeam(c *gin.Context) {
	team, err := h.childrenUsecase.ListTeam(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, team)
}

// POST /api/projects/:id/team
func (h *ProjectChildrenHandler) AddTeamMember(c *gin.Context) {
	var input entities.AddTeamMemberInput
	if !bindJSON(c, &input) {
		return
	}
	member, err := h.childrenUsecase.AddTeamMember(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, member)
}

// DELETE /api/projects/:id/team?memberId=
func (h *ProjectChildrenHandler) RemoveTeamMember(c *gin.Context) {
	if err := h.childrenUsecase.RemoveTeamMember(c.Request.Context(), c.Param("id"), c.Query("memberId")); err != nil {
		response.Error(c, err)
		return
	}
	response.Deleted(c)
}
