package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/fluxoapp/fluxo-api/internal/cache"
	"github.com/fluxoapp/fluxo-api/internal/domain/schedule"
	"github.com/fluxoapp/fluxo-api/internal/models"
	"github.com/fluxoapp/fluxo-api/internal/timezone"
)

const statsTTL = 60 * time.Second

// ======================================================
// OUTPUT
// ======================================================

type ServiceCount struct {
	ServiceID uuid.UUID `json:"service_id"`
	Name      string    `json:"name"`
	Count     int       `json:"count"`
}

type DayBucket struct {
	Date  string `json:"date"` // 2006-01-02 local
	Count int    `json:"count"`
}

type WeekBucket struct {
	WeekStart string `json:"week_start"`
	Count     int    `json:"count"`
}

type Stats struct {
	AppointmentsToday int     `json:"appointments_today"`
	RevenueToday      float64 `json:"revenue_today"`
	RevenueMonth      float64 `json:"revenue_month"`
	NewClientsMonth   int     `json:"new_clients_month"`

	TopServices []ServiceCount `json:"top_services"`
	Last7Days   []DayBucket    `json:"last_7_days"`
	Last4Weeks  []WeekBucket   `json:"last_4_weeks"`
}

// ======================================================
// USE CASE
// ======================================================

type GetStats struct {
	repo  schedule.Repository
	cache *cache.Cache
}

func NewGetStats(repo schedule.Repository, c *cache.Cache) *GetStats {
	return &GetStats{repo: repo, cache: c}
}

// Execute agrega contagens e somas sobre os agendamentos, com todas as
// janelas (dia, mês, 7 dias, 4 semanas) ancoradas na timezone do negócio.
// Somente leitura; a receita usa o preço ATUAL do serviço. O preço no
// momento da reserva fica em price_at_booking caso isso mude um dia.
func (uc *GetStats) Execute(
	ctx context.Context,
	businessID uuid.UUID,
	asOf time.Time,
) (*Stats, error) {

	biz, err := uc.repo.GetBusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(biz.Timezone)
	now := asOf.In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	cacheKey := fmt.Sprintf("dashboard:stats:%s:%s", businessID, today.Format("2006-01-02"))
	var cached Stats
	if hit, _ := uc.cache.GetJSON(ctx, cacheKey, &cached); hit {
		return &cached, nil
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	monthEnd := monthStart.AddDate(0, 1, 0)
	trailingStart := today.AddDate(0, 0, -27)
	tomorrow := today.Add(24 * time.Hour)

	// uma única janela cobre mês corrente e 4 semanas correntes
	windowStart := monthStart
	if trailingStart.Before(windowStart) {
		windowStart = trailingStart
	}
	windowEnd := monthEnd
	if tomorrow.After(windowEnd) {
		windowEnd = tomorrow
	}

	aps, err := uc.repo.ListAppointmentsBetween(ctx, businessID, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}

	phonesBefore, err := uc.repo.DistinctCustomerPhonesBefore(ctx, businessID, monthStart)
	if err != nil {
		return nil, err
	}
	seenBefore := make(map[string]bool, len(phonesBefore))
	for _, p := range phonesBefore {
		seenBefore[p] = true
	}

	stats := &Stats{
		TopServices: []ServiceCount{},
		Last7Days:   make([]DayBucket, 7),
		Last4Weeks:  make([]WeekBucket, 4),
	}

	for i := 0; i < 7; i++ {
		d := today.AddDate(0, 0, i-6)
		stats.Last7Days[i] = DayBucket{Date: d.Format("2006-01-02")}
	}
	for i := 0; i < 4; i++ {
		w := trailingStart.AddDate(0, 0, i*7)
		stats.Last4Weeks[i] = WeekBucket{WeekStart: w.Format("2006-01-02")}
	}

	sevenDaysStart := today.AddDate(0, 0, -6)
	newPhones := map[string]bool{}
	serviceCounts := map[uuid.UUID]*ServiceCount{}
	serviceOrder := []uuid.UUID{}

	for i := range aps {
		ap := &aps[i]
		if schedule.Status(ap.Status) == schedule.StatusCancelled {
			continue
		}

		start := ap.StartTime.In(loc)
		price := currentPrice(ap)

		inToday := !start.Before(today) && start.Before(tomorrow)
		inMonth := !start.Before(monthStart) && start.Before(monthEnd)

		if inToday {
			stats.AppointmentsToday++
			stats.RevenueToday += price
		}

		if inMonth {
			stats.RevenueMonth += price

			if !seenBefore[ap.CustomerPhone] {
				newPhones[ap.CustomerPhone] = true
			}

			sc, ok := serviceCounts[ap.ServiceID]
			if !ok {
				sc = &ServiceCount{ServiceID: ap.ServiceID, Name: ap.Service.Name}
				serviceCounts[ap.ServiceID] = sc
				serviceOrder = append(serviceOrder, ap.ServiceID)
			}
			sc.Count++
		}

		if !start.Before(sevenDaysStart) && start.Before(tomorrow) {
			idx := int(start.Sub(sevenDaysStart).Hours() / 24)
			if idx >= 0 && idx < 7 {
				stats.Last7Days[idx].Count++
			}
		}

		if !start.Before(trailingStart) && start.Before(tomorrow) {
			idx := int(start.Sub(trailingStart).Hours()/24) / 7
			if idx >= 0 && idx < 4 {
				stats.Last4Weeks[idx].Count++
			}
		}
	}

	stats.NewClientsMonth = len(newPhones)

	// top 5 do mês; empate mantém a ordem de descoberta (sort estável)
	ranked := make([]ServiceCount, 0, len(serviceOrder))
	for _, id := range serviceOrder {
		ranked = append(ranked, *serviceCounts[id])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > 5 {
		ranked = ranked[:5]
	}
	stats.TopServices = ranked

	_ = uc.cache.SetJSON(ctx, cacheKey, stats, statsTTL)

	return stats, nil
}

// currentPrice prefere o preço atual do serviço (comportamento de
// referência); cai no snapshot quando o serviço foi removido.
func currentPrice(ap *models.Appointment) float64 {
	if ap.Service.ID != uuid.Nil {
		return ap.Service.Price
	}
	return ap.PriceAtBooking
}
