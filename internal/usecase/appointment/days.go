package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fluxoapp/fluxo-api/internal/domain/schedule"
	"github.com/fluxoapp/fluxo-api/internal/timezone"
)

// ======================================================
// AVAILABLE DAYS (um profissional, horizonte de dias)
// ======================================================

type DaysInput struct {
	BusinessID     uuid.UUID
	ServiceID      uuid.UUID
	ProfessionalID uuid.UUID
	From           time.Time // primeiro dia do horizonte
}

// DayAvailability resume quantos horários livres restam em cada dia.
type DayAvailability struct {
	Date  string `json:"date"` // 2006-01-02 local
	Slots int    `json:"slots"`
}

type GetAvailableDays struct {
	repo schedule.Repository
}

func NewGetAvailableDays(repo schedule.Repository) *GetAvailableDays {
	return &GetAvailableDays{repo: repo}
}

// Execute varre os próximos DefaultHorizonDays dias a partir de From e
// devolve a contagem de horários livres por dia. Dia fechado aparece com
// zero, nunca como erro: o cliente enxerga a semana inteira de uma vez.
func (uc *GetAvailableDays) Execute(
	ctx context.Context,
	in DaysInput,
) ([]DayAvailability, error) {

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

	hours, err := uc.repo.ListBusinessHours(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(biz.Timezone)
	from := in.From.In(loc)
	first := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, loc)
	horizonEnd := first.AddDate(0, 0, schedule.DefaultHorizonDays)

	// uma única consulta cobre o horizonte inteiro
	booked, err := uc.repo.ListAppointmentsForProfessional(
		ctx,
		in.ProfessionalID,
		first,
		horizonEnd,
	)
	if err != nil {
		return nil, err
	}

	busy := make([]schedule.Interval, 0, len(booked))
	for _, ap := range booked {
		busy = append(busy, schedule.Interval{Start: ap.StartTime, End: ap.EndTime})
	}

	days := make([]DayAvailability, 0, schedule.DefaultHorizonDays)
	for i := 0; i < schedule.DefaultHorizonDays; i++ {
		date := first.AddDate(0, 0, i)
		day := schedule.ResolveDay(hours, schedule.WeekdayOf(date))

		candidates := schedule.Slots(day, date, loc, svc.DurationMinutes)
		free := schedule.FreeSlots(candidates, svc.DurationMinutes, busy)

		days = append(days, DayAvailability{
			Date:  date.Format("2006-01-02"),
			Slots: len(free),
		})
	}

	return days, nil
}
