package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/fluxoapp/fluxo-api/internal/audit"
	"github.com/fluxoapp/fluxo-api/internal/domain/schedule"
	"github.com/fluxoapp/fluxo-api/internal/models"
	"github.com/fluxoapp/fluxo-api/internal/timezone"
)

type CancelAppointment struct {
	repo  schedule.Repository
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo schedule.Repository,
	auditDisp *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{repo: repo, audit: auditDisp}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	businessID uuid.UUID,
	appointmentID uuid.UUID,
	actorID *uuid.UUID,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, businessID, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := schedule.CanCancel(schedule.Status(ap.Status)); err != nil {
		return nil, err
	}

	biz, err := uc.repo.GetBusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(biz.Timezone)
	ap.Status = string(schedule.StatusCancelled)
	ap.CancelledAt = &now

	if err := uc.repo.SaveAppointment(ctx, ap); err != nil {
		return nil, err
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			BusinessID: businessID,
			UserID:     actorID,
			Action:     "appointment_cancelled",
			Entity:     "appointment",
			EntityID:   &ap.ID,
		})
	}

	return ap, nil
}
