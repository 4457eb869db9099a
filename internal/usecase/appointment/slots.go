package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fluxoapp/fluxo-api/internal/domain/schedule"
	"github.com/fluxoapp/fluxo-api/internal/timezone"
)

// ======================================================
// AVAILABLE SLOTS (um profissional, um dia)
// ======================================================

type SlotsInput struct {
	BusinessID     uuid.UUID
	ServiceID      uuid.UUID
	ProfessionalID uuid.UUID
	Date           time.Time // qualquer instante do dia desejado
}

type GetAvailableSlots struct {
	repo schedule.Repository
}

func NewGetAvailableSlots(repo schedule.Repository) *GetAvailableSlots {
	return &GetAvailableSlots{repo: repo}
}

func (uc *GetAvailableSlots) Execute(
	ctx context.Context,
	in SlotsInput,
) ([]schedule.TimeSlot, error) {

	biz, err := uc.repo.GetBusinessByID(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}

	svc, err := uc.repo.GetService(ctx, in.BusinessID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.repo.GetProfessional(ctx, in.BusinessID, in.ProfessionalID); err != nil {
		return nil, err
	}

	loc := timezone.Location(biz.Timezone)
	date := in.Date.In(loc)

	hours, err := uc.repo.ListBusinessHours(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}

	day := schedule.ResolveDay(hours, schedule.WeekdayOf(date))

	// dia fechado → lista vazia, sem erro
	candidates := schedule.Slots(day, date, loc, svc.DurationMinutes)
	if len(candidates) == 0 {
		return []schedule.TimeSlot{}, nil
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	booked, err := uc.repo.ListAppointmentsForProfessional(
		ctx,
		in.ProfessionalID,
		dayStart,
		dayEnd,
	)
	if err != nil {
		return nil, err
	}

	busy := make([]schedule.Interval, 0, len(booked))
	for _, ap := range booked {
		busy = append(busy, schedule.Interval{Start: ap.StartTime, End: ap.EndTime})
	}

	free := schedule.FreeSlots(candidates, svc.DurationMinutes, busy)
	duration := time.Duration(svc.DurationMinutes) * time.Minute

	slots := make([]schedule.TimeSlot, 0, len(free))
	for _, s := range free {
		slots = append(slots, schedule.TimeSlot{
			Start: s.Format("15:04"),
			End:   s.Add(duration).Format("15:04"),
		})
	}

	return slots, nil
}
