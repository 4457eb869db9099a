package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fluxoapp/fluxo-api/internal/domain/schedule"
	"github.com/fluxoapp/fluxo-api/internal/httperr"
	"github.com/fluxoapp/fluxo-api/internal/httpresp"
	"github.com/fluxoapp/fluxo-api/internal/models"
	ucAppointment "github.com/fluxoapp/fluxo-api/internal/usecase/appointment"
)

// PublicHandler atende os clientes finais (página de agendamento, robô de
// WhatsApp). O tenant vem do slug na URL, nunca do corpo da requisição.
type PublicHandler struct {
	db   *gorm.DB
	repo schedule.Repository

	slotsUC        *ucAppointment.GetAvailableSlots
	daysUC         *ucAppointment.GetAvailableDays
	availabilityUC *ucAppointment.GetAvailableProfessionals
	createUC       *ucAppointment.CreateAppointment
}

func NewPublicHandler(
	db *gorm.DB,
	repo schedule.Repository,
	slotsUC *ucAppointment.GetAvailableSlots,
	daysUC *ucAppointment.GetAvailableDays,
	availabilityUC *ucAppointment.GetAvailableProfessionals,
	createUC *ucAppointment.CreateAppointment,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		repo:           repo,
		slotsUC:        slotsUC,
		daysUC:         daysUC,
		availabilityUC: availabilityUC,
		createUC:       createUC,
	}
}

func (h *PublicHandler) businessFromSlug(c *gin.Context) *models.Business {
	biz, err := h.repo.GetBusinessBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeDomainError(c, err)
		return nil
	}
	return biz
}

// GET /public/:slug/services
func (h *PublicHandler) ListServices(c *gin.Context) {
	biz := h.businessFromSlug(c)
	if biz == nil {
		return
	}

	var services []models.Service
	if err := h.db.
		Where("business_id = ? AND active", biz.ID).
		Order("created_at ASC").
		Find(&services).Error; err != nil {
		httperr.Unavailable(c, "storage_error", "Erro ao listar serviços.")
		return
	}

	httpresp.List(c, services)
}

// GET /public/:slug/professionals?service_id=
func (h *PublicHandler) ListProfessionals(c *gin.Context) {
	biz := h.businessFromSlug(c)
	if biz == nil {
		return
	}

	serviceID, err := uuid.Parse(c.Query("service_id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "service_id inválido.")
		return
	}

	pros, err := h.repo.ListQualifiedProfessionals(c.Request.Context(), biz.ID, serviceID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	views := make([]schedule.ProfessionalView, 0, len(pros))
	for _, p := range pros {
		views = append(views, schedule.ProfessionalView{ID: p.ID, Name: p.Name})
	}

	httpresp.List(c, views)
}

// GET /public/:slug/availability?service_id=&professional_id=&date=
func (h *PublicHandler) Availability(c *gin.Context) {
	biz := h.businessFromSlug(c)
	if biz == nil {
		return
	}

	serviceID, err := uuid.Parse(c.Query("service_id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "service_id inválido.")
		return
	}

	professionalID, err := uuid.Parse(c.Query("professional_id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_professional_id", "professional_id inválido.")
		return
	}

	date, err := parseDateInBusiness(biz, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	slots, err := h.slotsUC.Execute(c.Request.Context(), ucAppointment.SlotsInput{
		BusinessID:     biz.ID,
		ServiceID:      serviceID,
		ProfessionalID: professionalID,
		Date:           date,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(200, gin.H{"available_slots": slots})
}

// GET /public/:slug/days?service_id=&professional_id=&from=
func (h *PublicHandler) Days(c *gin.Context) {
	biz := h.businessFromSlug(c)
	if biz == nil {
		return
	}

	serviceID, err := uuid.Parse(c.Query("service_id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "service_id inválido.")
		return
	}

	professionalID, err := uuid.Parse(c.Query("professional_id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_professional_id", "professional_id inválido.")
		return
	}

	from := time.Now()
	if raw := c.Query("from"); raw != "" {
		from, err = parseDateInBusiness(biz, raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_from", "Data inválida.")
			return
		}
	}

	days, err := h.daysUC.Execute(c.Request.Context(), ucAppointment.DaysInput{
		BusinessID:     biz.ID,
		ServiceID:      serviceID,
		ProfessionalID: professionalID,
		From:           from,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(200, gin.H{"available_days": days})
}

// POST /public/:slug/appointments
func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	biz := h.businessFromSlug(c)
	if biz == nil {
		return
	}

	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	start, err := parseTimestampInBusiness(biz, req.StartTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_start_time", "start_time inválido.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateInput{
		BusinessID:     biz.ID,
		ServiceID:      req.ServiceID,
		ProfessionalID: req.ProfessionalID,
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		StartTime:      start,
		Notes:          req.Notes,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.Created(c, ap)
}
