package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jurisconnect/jurisconnect-api/internal/services"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Index returns the admin dashboard aggregate
func (h *DashboardHandler) Index(c *gin.Context) {
	data, err := h.dashboardService.Overview(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Dashboard recuperado com sucesso", data)
}
