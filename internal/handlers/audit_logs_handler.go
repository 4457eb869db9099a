package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fluxoapp/fluxo-api/internal/httperr"
	"github.com/fluxoapp/fluxo-api/internal/httpresp"
	"github.com/fluxoapp/fluxo-api/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// GET /me/audit-logs?limit=50
func (h *AuditLogsHandler) List(c *gin.Context) {
	_, businessID := tenant(c)

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 500 {
			limit = v
		}
	}

	var logs []models.AuditLog
	if err := h.db.
		Where("business_id = ?", businessID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		httperr.Unavailable(c, "storage_error", "Erro ao listar auditoria.")
		return
	}

	httpresp.List(c, logs)
}
