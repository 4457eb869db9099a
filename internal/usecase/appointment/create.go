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

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	BusinessID     uuid.UUID
	ServiceID      uuid.UUID
	ProfessionalID uuid.UUID

	CustomerName  string
	CustomerPhone string

	StartTime time.Time
	Notes     string

	// usuário autenticado, para auditoria (nil em agendamento público)
	ActorID *uuid.UUID
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  schedule.Repository
	audit *audit.Dispatcher

	// relógio injetável para testes determinísticos
	now func(tz string) time.Time
}

func NewCreateAppointment(
	repo schedule.Repository,
	auditDisp *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: auditDisp,
		now:   timezone.NowIn,
	}
}

func (uc *CreateAppointment) WithClock(now func(tz string) time.Time) *CreateAppointment {
	uc.now = now
	return uc
}

// ======================================================
// EXECUTE
// ======================================================

// Execute percorre o pipeline completo de reserva:
// validação → serviço/profissional → expediente → conflito → gravação.
// A rechecagem de conflito acontece dentro da transação de escrita mesmo
// que o chamador já tenha consultado a disponibilidade: entre consulta e
// commit há janela de corrida.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Validação de presença
	// --------------------------------------------------
	if err := validateBookingInput(
		in.ServiceID, in.ProfessionalID,
		in.CustomerName, in.CustomerPhone,
		in.StartTime,
	); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Negócio + timezone
	// --------------------------------------------------
	biz, err := uc.repo.GetBusinessByID(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(biz.Timezone)
	start := in.StartTime.In(loc)

	// --------------------------------------------------
	// 3. Antecedência mínima
	// --------------------------------------------------
	minAdvance := biz.MinAdvanceMinutes
	if minAdvance < 0 {
		minAdvance = 0
	}

	now := uc.now(biz.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// 4. Serviço e profissional
	// --------------------------------------------------
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

	// --------------------------------------------------
	// 5. Expediente do negócio
	// --------------------------------------------------
	hours, err := uc.repo.ListBusinessHours(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}

	day := schedule.ResolveDay(hours, schedule.WeekdayOf(start))
	if err := schedule.CheckWithin(day, start, end); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6. Gravação com rechecagem de conflito na transação
	// --------------------------------------------------
	ap := &models.Appointment{
		BusinessID:     in.BusinessID,
		ServiceID:      svc.ID,
		ProfessionalID: pro.ID,
		CustomerName:   in.CustomerName,
		CustomerPhone:  in.CustomerPhone,
		StartTime:      start,
		EndTime:        end,
		DurationMin:    svc.DurationMinutes,
		PriceAtBooking: svc.Price,
		Status:         string(schedule.InitialStatus()),
		Notes:          in.Notes,
	}

	if err := uc.repo.CreateAppointmentChecked(ctx, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 7. Auditoria
	// --------------------------------------------------
	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			BusinessID: in.BusinessID,
			UserID:     in.ActorID,
			Action:     "appointment_created",
			Entity:     "appointment",
			EntityID:   &ap.ID,
		})
	}

	return ap, nil
}

// ======================================================
// HELPERS
// ======================================================

func validateBookingInput(
	serviceID uuid.UUID,
	professionalID uuid.UUID,
	customerName string,
	customerPhone string,
	start time.Time,
) error {
	switch {
	case serviceID == uuid.Nil:
		return httperr.ErrValidation("service_id", "is required")
	case professionalID == uuid.Nil:
		return httperr.ErrValidation("professional_id", "is required")
	case customerName == "":
		return httperr.ErrValidation("customer_name", "is required")
	case customerPhone == "":
		return httperr.ErrValidation("customer_phone", "is required")
	case start.IsZero():
		return httperr.ErrValidation("start_time", "is required")
	}
	return nil
}
