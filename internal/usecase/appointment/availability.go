package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fluxoapp/fluxo-api/internal/domain/schedule"
	"github.com/fluxoapp/fluxo-api/internal/timezone"
)

// ======================================================
// AVAILABLE PROFESSIONALS
// ======================================================

type AvailabilityInput struct {
	BusinessID uuid.UUID
	ServiceID  uuid.UUID
	StartTime  time.Time

	// edição: o agendamento mantém o próprio horário sem conflitar consigo
	ExcludeAppointmentID *uuid.UUID
}

type GetAvailableProfessionals struct {
	repo schedule.Repository
}

func NewGetAvailableProfessionals(repo schedule.Repository) *GetAvailableProfessionals {
	return &GetAvailableProfessionals{repo: repo}
}

// Execute devolve os profissionais habilitados para o serviço e livres no
// intervalo candidato. Conjunto qualificado vazio é resultado vazio, não
// erro. Horário fora do expediente devolve HoursError para o chamador
// distinguir "fechado" de "lotado".
func (uc *GetAvailableProfessionals) Execute(
	ctx context.Context,
	in AvailabilityInput,
) ([]schedule.ProfessionalView, error) {

	biz, err := uc.repo.GetBusinessByID(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}

	svc, err := uc.repo.GetService(ctx, in.BusinessID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(biz.Timezone)
	start := in.StartTime.In(loc)
	end := start.Add(time.Duration(svc.DurationMinutes) * time.Minute)

	hours, err := uc.repo.ListBusinessHours(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}

	day := schedule.ResolveDay(hours, schedule.WeekdayOf(start))
	if err := schedule.CheckWithin(day, start, end); err != nil {
		return nil, err
	}

	qualified, err := uc.repo.ListQualifiedProfessionals(ctx, in.BusinessID, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if len(qualified) == 0 {
		return []schedule.ProfessionalView{}, nil
	}

	conflicts, err := uc.repo.ListConflicts(
		ctx,
		in.BusinessID,
		start,
		end,
		in.ExcludeAppointmentID,
	)
	if err != nil {
		return nil, err
	}

	busy := make(map[uuid.UUID]bool, len(conflicts))
	for _, ap := range conflicts {
		busy[ap.ProfessionalID] = true
	}

	available := make([]schedule.ProfessionalView, 0, len(qualified))
	for _, pro := range qualified {
		if busy[pro.ID] {
			continue
		}
		available = append(available, schedule.ProfessionalView{
			ID:   pro.ID,
			Name: pro.Name,
		})
	}

	return available, nil
}
