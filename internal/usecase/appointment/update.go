package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fluxoapp/fluxo-api/internal/audit"
	"github.com/fluxoapp/fluxo-api/internal/domain/schedule"
	"github.com/fluxoapp/fluxo-api/internal/httperr"
	"github.com/fluxoapp/fluxo-api/internal/models"
	"github.com/fluxoapp/fluxo-api/internal/timezone"
)

type UpdateInput struct {
	BusinessID    uuid.UUID
	AppointmentID uuid.UUID

	ServiceID      uuid.UUID
	ProfessionalID uuid.UUID

	CustomerName  string
	CustomerPhone string

	StartTime time.Time
	Notes     string

	ActorID *uuid.UUID
}

type UpdateAppointment struct {
	repo  schedule.Repository
	audit *audit.Dispatcher
}

func NewUpdateAppointment(
	repo schedule.Repository,
	auditDisp *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{repo: repo, audit: auditDisp}
}

// Execute repete o pipeline de criação contra o novo intervalo proposto,
// excluindo o próprio agendamento da checagem de conflito: reeditar para
// o mesmo horário nunca conflita consigo mesmo.
func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateInput,
) (*models.Appointment, error) {

	if err := validateBookingInput(
		in.ServiceID, in.ProfessionalID,
		in.CustomerName, in.CustomerPhone,
		in.StartTime,
	); err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, in.BusinessID, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	if schedule.Status(ap.Status) != schedule.StatusScheduled {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	biz, err := uc.repo.GetBusinessByID(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(biz.Timezone)
	start := in.StartTime.In(loc)

	svc, err := uc.repo.GetService(ctx, in.BusinessID, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc.DurationMinutes <= 0 {
		return nil, httperr.ErrValidation("duration_minutes", "must be positive")
	}

	pro, err := uc.repo.GetProfessional(ctx, in.BusinessID, in.ProfessionalID)
	if err != nil {
		return nil, err
	}

	end := start.Add(time.Duration(svc.DurationMinutes) * time.Minute)

	hours, err := uc.repo.ListBusinessHours(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}

	day := schedule.ResolveDay(hours, schedule.WeekdayOf(start))
	if err := schedule.CheckWithin(day, start, end); err != nil {
		return nil, err
	}

	// as associações pré-carregadas acompanham os novos ids, senão o JSON
	// devolvido embute o serviço/profissional antigos
	ap.ServiceID = svc.ID
	ap.Service = *svc
	ap.ProfessionalID = pro.ID
	ap.Professional = *pro
	ap.CustomerName = in.CustomerName
	ap.CustomerPhone = in.CustomerPhone
	ap.StartTime = start
	ap.EndTime = end
	ap.DurationMin = svc.DurationMinutes
	ap.PriceAtBooking = svc.Price
	ap.Notes = in.Notes

	if err := uc.repo.UpdateAppointmentChecked(ctx, ap); err != nil {
		return nil, err
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			BusinessID: in.BusinessID,
			UserID:     in.ActorID,
			Action:     "appointment_updated",
			Entity:     "appointment",
			EntityID:   &ap.ID,
		})
	}

	return ap, nil
}
