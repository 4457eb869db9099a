package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/fluxoapp/fluxo-api/internal/audit"
	"github.com/fluxoapp/fluxo-api/internal/domain/schedule"
)

type DeleteAppointment struct {
	repo  schedule.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo schedule.Repository,
	auditDisp *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{repo: repo, audit: auditDisp}
}

// Execute remove incondicionalmente dentro do escopo do tenant.
// Sem soft-delete e sem efeitos em cascata.
func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	businessID uuid.UUID,
	appointmentID uuid.UUID,
	actorID *uuid.UUID,
) error {

	if err := uc.repo.DeleteAppointment(ctx, businessID, appointmentID); err != nil {
		return err
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			BusinessID: businessID,
			UserID:     actorID,
			Action:     "appointment_deleted",
			Entity:     "appointment",
			EntityID:   &appointmentID,
		})
	}

	return nil
}
