package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/fluxoapp/fluxo-api/internal/audit"
	"github.com/fluxoapp/fluxo-api/internal/domain/schedule"
	"github.com/fluxoapp/fluxo-api/internal/models"
	"github.com/fluxoapp/fluxo-api/internal/timezone"
)

type CompleteAppointment struct {
	repo  schedule.Repository
	audit *audit.Dispatcher
}

func NewCompleteAppointment(
	repo schedule.Repository,
	auditDisp *audit.Dispatcher,
) *CompleteAppointment {
	return &CompleteAppointment{repo: repo, audit: auditDisp}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	businessID uuid.UUID,
	appointmentID uuid.UUID,
	actorID *uuid.UUID,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, businessID, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := schedule.CanComplete(schedule.Status(ap.Status)); err != nil {
		return nil, err
	}

	biz, err := uc.repo.GetBusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(biz.Timezone)
	ap.Status = string(schedule.StatusCompleted)
	ap.CompletedAt = &now

	if err := uc.repo.SaveAppointment(ctx, ap); err != nil {
		return nil, err
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			BusinessID: businessID,
			UserID:     actorID,
			Action:     "appointment_completed",
			Entity:     "appointment",
			EntityID:   &ap.ID,
		})
	}

	return ap, nil
}
