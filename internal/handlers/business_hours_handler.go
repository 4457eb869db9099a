package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fluxoapp/fluxo-api/internal/domain/schedule"
	"github.com/fluxoapp/fluxo-api/internal/httperr"
	"github.com/fluxoapp/fluxo-api/internal/httpresp"
	"github.com/fluxoapp/fluxo-api/internal/models"
)

type BusinessHoursHandler struct {
	db *gorm.DB
}

func NewBusinessHoursHandler(db *gorm.DB) *BusinessHoursHandler {
	return &BusinessHoursHandler{db: db}
}

// Weekday segue a convenção segunda=0 .. domingo=6.
type BusinessDayConfig struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	IsOpen     bool   `json:"is_open"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	LunchStart string `json:"lunch_start"`
	LunchEnd   string `json:"lunch_end"`
}

type BusinessHoursUpdateRequest struct {
	Days []BusinessDayConfig `json:"days" binding:"required"`
}

// validateDayTimes exige "HH:MM" em todo campo de hora preenchido; nada
// com segundos ou lixo chega ao banco para virar janela 00:00.
func validateDayTimes(d BusinessDayConfig) string {
	fields := []struct {
		name  string
		value string
	}{
		{"start_time", d.StartTime},
		{"end_time", d.EndTime},
		{"lunch_start", d.LunchStart},
		{"lunch_end", d.LunchEnd},
	}

	for _, f := range fields {
		if f.value != "" && !schedule.ValidWallClock(f.value) {
			return "Campo " + f.name + ": use o formato HH:MM."
		}
	}
	return ""
}

// GET /me/business-hours: visão da agenda semanal resolvida
func (h *BusinessHoursHandler) Get(c *gin.Context) {
	_, businessID := tenant(c)

	var hours []models.BusinessHours
	if err := h.db.
		Where("business_id = ?", businessID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {
		httperr.Unavailable(c, "storage_error", "Erro ao buscar horários.")
		return
	}

	httpresp.OK(c, hours)
}

// PUT /me/business-hours: substitui a agenda semanal inteira
func (h *BusinessHoursHandler) Update(c *gin.Context) {
	_, businessID := tenant(c)

	var req BusinessHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	for _, d := range req.Days {
		if d.IsOpen && (d.StartTime == "" || d.EndTime == "") {
			httperr.BadRequest(c, "invalid_request", "Dia aberto precisa de start_time e end_time.")
			return
		}
		if err := validateDayTimes(d); err != "" {
			httperr.BadRequest(c, "validation_error", err)
			return
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("business_id = ?", businessID).
			Delete(&models.BusinessHours{}).Error; err != nil {
			return err
		}

		for _, d := range req.Days {
			wh := models.BusinessHours{
				BusinessID: businessID,
				Weekday:    d.Weekday,
				IsOpen:     d.IsOpen,
				StartTime:  d.StartTime,
				EndTime:    d.EndTime,
				LunchStart: d.LunchStart,
				LunchEnd:   d.LunchEnd,
			}
			if err := tx.Create(&wh).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		httperr.Unavailable(c, "storage_error", "Erro ao salvar horários.")
		return
	}

	var hours []models.BusinessHours
	h.db.
		Where("business_id = ?", businessID).
		Order("weekday ASC").
		Find(&hours)

	httpresp.OK(c, hours)
}
