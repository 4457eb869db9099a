package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fluxoapp/fluxo-api/internal/domain/schedule"
	"github.com/fluxoapp/fluxo-api/internal/dto"
	"github.com/fluxoapp/fluxo-api/internal/httperr"
	"github.com/fluxoapp/fluxo-api/internal/httpresp"
	"github.com/fluxoapp/fluxo-api/internal/middleware"
	ucAppointment "github.com/fluxoapp/fluxo-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	repo schedule.Repository

	availabilityUC *ucAppointment.GetAvailableProfessionals
	slotsUC        *ucAppointment.GetAvailableSlots
	daysUC         *ucAppointment.GetAvailableDays
	createUC       *ucAppointment.CreateAppointment
	updateUC       *ucAppointment.UpdateAppointment
	deleteUC       *ucAppointment.DeleteAppointment
	cancelUC       *ucAppointment.CancelAppointment
	completeUC     *ucAppointment.CompleteAppointment
}

func NewAppointmentHandler(
	repo schedule.Repository,
	availabilityUC *ucAppointment.GetAvailableProfessionals,
	slotsUC *ucAppointment.GetAvailableSlots,
	daysUC *ucAppointment.GetAvailableDays,
	createUC *ucAppointment.CreateAppointment,
	updateUC *ucAppointment.UpdateAppointment,
	deleteUC *ucAppointment.DeleteAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	completeUC *ucAppointment.CompleteAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		repo:           repo,
		availabilityUC: availabilityUC,
		slotsUC:        slotsUC,
		daysUC:         daysUC,
		createUC:       createUC,
		updateUC:       updateUC,
		deleteUC:       deleteUC,
		cancelUC:       cancelUC,
		completeUC:     completeUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AppointmentRequest struct {
	ServiceID      uuid.UUID `json:"service_id" binding:"required"`
	ProfessionalID uuid.UUID `json:"professional_id" binding:"required"`
	CustomerName   string    `json:"customer_name" binding:"required"`
	CustomerPhone  string    `json:"customer_phone" binding:"required"`
	StartTime      string    `json:"start_time" binding:"required"`
	Notes          string    `json:"notes"`
}

func tenant(c *gin.Context) (uuid.UUID, uuid.UUID) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	businessID := c.MustGet(middleware.ContextBusinessID).(uuid.UUID)
	return userID, businessID
}

// ======================================================
// AVAILABILITY
// ======================================================

// GET /me/availability?service_id=&start_time=&appointment_id=
func (h *AppointmentHandler) Availability(c *gin.Context) {
	_, businessID := tenant(c)

	serviceID, err := uuid.Parse(c.Query("service_id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "service_id inválido.")
		return
	}

	biz, err := h.repo.GetBusinessByID(c.Request.Context(), businessID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	start, err := parseTimestampInBusiness(biz, c.Query("start_time"))
	if err != nil {
		httperr.BadRequest(c, "invalid_start_time", "start_time inválido.")
		return
	}

	var exclude *uuid.UUID
	if raw := c.Query("appointment_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_appointment_id", "appointment_id inválido.")
			return
		}
		exclude = &id
	}

	pros, err := h.availabilityUC.Execute(c.Request.Context(), ucAppointment.AvailabilityInput{
		BusinessID:           businessID,
		ServiceID:            serviceID,
		StartTime:            start,
		ExcludeAppointmentID: exclude,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.List(c, pros)
}

// GET /me/slots?service_id=&professional_id=&date=
func (h *AppointmentHandler) Slots(c *gin.Context) {
	_, businessID := tenant(c)

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

	biz, err := h.repo.GetBusinessByID(c.Request.Context(), businessID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	date, err := parseDateInBusiness(biz, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	slots, err := h.slotsUC.Execute(c.Request.Context(), ucAppointment.SlotsInput{
		BusinessID:     businessID,
		ServiceID:      serviceID,
		ProfessionalID: professionalID,
		Date:           date,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.List(c, slots)
}

// GET /me/days?service_id=&professional_id=&from=
func (h *AppointmentHandler) Days(c *gin.Context) {
	_, businessID := tenant(c)

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

	biz, err := h.repo.GetBusinessByID(c.Request.Context(), businessID)
	if err != nil {
		writeDomainError(c, err)
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
		BusinessID:     businessID,
		ServiceID:      serviceID,
		ProfessionalID: professionalID,
		From:           from,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.List(c, days)
}

// ======================================================
// CREATE / UPDATE / DELETE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID, businessID := tenant(c)

	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	biz, err := h.repo.GetBusinessByID(c.Request.Context(), businessID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	start, err := parseTimestampInBusiness(biz, req.StartTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_start_time", "start_time inválido.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateInput{
		BusinessID:     businessID,
		ServiceID:      req.ServiceID,
		ProfessionalID: req.ProfessionalID,
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		StartTime:      start,
		Notes:          req.Notes,
		ActorID:        &userID,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	userID, businessID := tenant(c)

	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	biz, err := h.repo.GetBusinessByID(c.Request.Context(), businessID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	start, err := parseTimestampInBusiness(biz, req.StartTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_start_time", "start_time inválido.")
		return
	}

	ap, err := h.updateUC.Execute(c.Request.Context(), ucAppointment.UpdateInput{
		BusinessID:     businessID,
		AppointmentID:  appointmentID,
		ServiceID:      req.ServiceID,
		ProfessionalID: req.ProfessionalID,
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		StartTime:      start,
		Notes:          req.Notes,
		ActorID:        &userID,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	userID, businessID := tenant(c)

	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), businessID, appointmentID, &userID); err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"deleted": true})
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	_, businessID := tenant(c)

	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	ap, err := h.repo.GetAppointment(c.Request.Context(), businessID, appointmentID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	view := dto.NewAppointmentView(ap)
	httpresp.OK(c, view)
}

// GET /me/appointments?date=2006-01-02 (default: hoje)
func (h *AppointmentHandler) List(c *gin.Context) {
	_, businessID := tenant(c)

	biz, err := h.repo.GetBusinessByID(c.Request.Context(), businessID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	loc := locationFromBusiness(biz)

	var day time.Time
	if dateStr := c.Query("date"); dateStr != "" {
		day, err = parseDateInBusiness(biz, dateStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
	} else {
		now := time.Now().In(loc)
		day = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	end := start.Add(24 * time.Hour)

	aps, err := h.repo.ListAppointmentsBetween(c.Request.Context(), businessID, start, end)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.List(c, dto.NewAppointmentViews(aps))
}

// ======================================================
// CANCEL / COMPLETE
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	userID, businessID := tenant(c)

	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), businessID, appointmentID, &userID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	userID, businessID := tenant(c)

	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	ap, err := h.completeUC.Execute(c.Request.Context(), businessID, appointmentID, &userID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, ap)
}
