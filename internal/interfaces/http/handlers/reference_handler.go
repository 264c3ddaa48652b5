package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dinnartec/core-dashboard-web/internal/interfaces/http/response"
	"github.com/Dinnartec/core-dashboard-web/internal/usecases"
)

// ReferenceHandler serves verticals, statuses and roles
type ReferenceHandler struct {
	referenceUsecase *usecases.ReferenceUsecase
}

func NewReferenceHandler(referenceUsecase *usecases.ReferenceUsecase) *ReferenceHandler {
	return &ReferenceHandler{referenceUsecase: referenceUsecase}
}

// GET /api/verticals
func (h *ReferenceHandler) ListVerticals(c *gin.Context) {
	items, err := h.referenceUsecase.Verticals(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// GET /api/statuses
func (h *ReferenceHandler) ListStatuses(c *gin.Context) {
	items, err := h.referenceUsecase.Statuses(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// GET /api/roles
func (h *ReferenceHandler) ListRoles(c *gin.Context) {
	items, err := h.referenceUsecase.Roles(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}
