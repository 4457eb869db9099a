package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fluxoapp/fluxo-api/internal/httpresp"
	ucDashboard "github.com/fluxoapp/fluxo-api/internal/usecase/dashboard"
)

type DashboardHandler struct {
	statsUC *ucDashboard.GetStats
}

func NewDashboardHandler(statsUC *ucDashboard.GetStats) *DashboardHandler {
	return &DashboardHandler{statsUC: statsUC}
}

// GET /me/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	_, businessID := tenant(c)

	stats, err := h.statsUC.Execute(c.Request.Context(), businessID, time.Now())
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, stats)
}
