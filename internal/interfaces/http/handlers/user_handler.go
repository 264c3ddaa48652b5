package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dinnartec/core-dashboard-web/internal/domain/entities"
	"github.com/Dinnartec/core-dashboard-web/internal/interfaces/http/response"
	"github.com/Dinnartec/core-dashboard-web/internal/usecases"
)

// UserHandler handles user endpoints
type UserHandler struct {
	userUsecase *usecases.UserUsecase
}

func NewUserHandler(userUsecase *usecases.UserUsecase) *UserHandler {
	return &UserHandler{userUsecase: userUsecase}
}

// ListUsers returns active users
// GET /api/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userUsecase.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, users)
}

// GET /api/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userUsecase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// UpdateUser renames a user
// PATCH /api/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	caller, ok := sessionUser(c)
	if !ok {
		return
	}
	var input entities.UpdateUserInput
	if !bindJSON(c, &input) {
		return
	}
	user, err := h.userUsecase.UpdateProfile(c.Request.Context(), caller, c.Param("id"), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// DeactivateUser soft-deletes a user (admin)
// DELETE /api/users/:id
func (h *UserHandler) DeactivateUser(c *gin.Context) {
	caller, ok := sessionUser(c)
	if !ok {
		return
	}
	if err := h.userUsecase.Deactivate(c.Request.Context(), caller, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Deleted(c)
}

// ChangeRole assigns a role (admin)
// PATCH /api/users/:id/role
func (h *UserHandler) ChangeRole(c *gin.Context) {
	caller, ok := sessionUser(c)
	if !ok {
		return
	}
	var input entities.ChangeRoleInput
	if !bindJSON(c, &input) {
		return
	}
	user, err := h.userUsecase.ChangeRole(c.Request.Context(), caller, c.Param("id"), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}
