package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dinnartec/core-dashboard-web/internal/interfaces/http/response"
	"github.com/Dinnartec/core-dashboard-web/internal/usecases"
)

// DashboardHandler serves the dashboard page data
type DashboardHandler struct {
	dashboardUsecase *usecases.DashboardUsecase
}

func NewDashboardHandler(dashboardUsecase *usecases.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{dashboardUsecase: dashboardUsecase}
}

// GET /api/dashboard
func (h *DashboardHandler) Overview(c *gin.Context) {
	d, err := h.dashboardUsecase.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, d)
}

// GET /api/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardUsecase.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// GET /api/dashboard/recent
func (h *DashboardHandler) Recent(c *gin.Context) {
	recent, err := h.dashboardUsecase.Recent(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, recent)
}
