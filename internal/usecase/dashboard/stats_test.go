package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxoapp/fluxo-api/internal/cache"
	"github.com/fluxoapp/fluxo-api/internal/domain/schedule"
	"github.com/fluxoapp/fluxo-api/internal/models"
)

// statsRepo embute a porta e sobrescreve só o que o agregador consulta.
type statsRepo struct {
	schedule.Repository

	biz          *models.Business
	appointments []models.Appointment
	phonesBefore []string

	fetches int
}

func (r *statsRepo) GetBusinessByID(_ context.Context, id uuid.UUID) (*models.Business, error) {
	return r.biz, nil
}

func (r *statsRepo) ListAppointmentsBetween(
	_ context.Context,
	_ uuid.UUID,
	start, end time.Time,
) ([]models.Appointment, error) {
	r.fetches++

	var out []models.Appointment
	for _, ap := range r.appointments {
		if !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *statsRepo) DistinctCustomerPhonesBefore(
	_ context.Context,
	_ uuid.UUID,
	_ time.Time,
) ([]string, error) {
	return r.phonesBefore, nil
}

func newStatsRepo(t *testing.T) (*statsRepo, *time.Location) {
	t.Helper()

	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	return &statsRepo{
		biz: &models.Business{
			ID:       uuid.New(),
			Timezone: "America/Sao_Paulo",
		},
	}, loc
}

func booked(svc *models.Service, phone string, start time.Time) models.Appointment {
	return models.Appointment{
		ID:             uuid.New(),
		ServiceID:      svc.ID,
		Service:        *svc,
		CustomerPhone:  phone,
		StartTime:      start,
		EndTime:        start.Add(30 * time.Minute),
		PriceAtBooking: svc.Price,
		Status:         "scheduled",
	}
}

func TestGetStats_Aggregation(t *testing.T) {
	repo, loc := newStatsRepo(t)
	ctx := context.Background()

	corte := &models.Service{ID: uuid.New(), Name: "Corte", Price: 50}
	barba := &models.Service{ID: uuid.New(), Name: "Barba", Price: 30}

	asOf := time.Date(2024, 1, 15, 14, 0, 0, 0, loc) // segunda

	repo.appointments = []models.Appointment{
		// hoje: dois válidos e um cancelado
		booked(corte, "+5511000000001", time.Date(2024, 1, 15, 9, 0, 0, 0, loc)),
		booked(barba, "+5511000000002", time.Date(2024, 1, 15, 10, 0, 0, 0, loc)),
		func() models.Appointment {
			ap := booked(corte, "+5511000000003", time.Date(2024, 1, 15, 11, 0, 0, 0, loc))
			ap.Status = "cancelled"
			return ap
		}(),
		// começo do mês: cliente recorrente
		booked(corte, "+5511000000009", time.Date(2024, 1, 3, 9, 0, 0, 0, loc)),
	}
	repo.phonesBefore = []string{"+5511000000009"}

	stats, err := NewGetStats(repo, nil).Execute(ctx, repo.biz.ID, asOf)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.AppointmentsToday)
	assert.InDelta(t, 80.0, stats.RevenueToday, 0.001)
	assert.InDelta(t, 130.0, stats.RevenueMonth, 0.001)

	// +01 e +02 são novos; +09 já aparecia antes do mês; cancelado não conta
	assert.Equal(t, 2, stats.NewClientsMonth)

	require.Len(t, stats.Last7Days, 7)
	assert.Equal(t, "2024-01-15", stats.Last7Days[6].Date)
	assert.Equal(t, 2, stats.Last7Days[6].Count)

	require.Len(t, stats.Last4Weeks, 4)
}

func TestGetStats_RevenueUsesCurrentPrice(t *testing.T) {
	repo, loc := newStatsRepo(t)
	ctx := context.Background()

	svc := &models.Service{ID: uuid.New(), Name: "Corte", Price: 70}
	asOf := time.Date(2024, 1, 15, 14, 0, 0, 0, loc)

	ap := booked(svc, "+5511000000001", time.Date(2024, 1, 15, 9, 0, 0, 0, loc))
	ap.PriceAtBooking = 50 // reservado antes do reajuste
	repo.appointments = []models.Appointment{ap}

	stats, err := NewGetStats(repo, nil).Execute(ctx, repo.biz.ID, asOf)
	require.NoError(t, err)

	assert.InDelta(t, 70.0, stats.RevenueToday, 0.001)

	t.Run("serviço removido cai no snapshot", func(t *testing.T) {
		orphan := ap
		orphan.Service = models.Service{}
		repo.appointments = []models.Appointment{orphan}

		stats, err := NewGetStats(repo, nil).Execute(ctx, repo.biz.ID, asOf)
		require.NoError(t, err)
		assert.InDelta(t, 50.0, stats.RevenueToday, 0.001)
	})
}

func TestGetStats_TopServices(t *testing.T) {
	repo, loc := newStatsRepo(t)
	ctx := context.Background()
	asOf := time.Date(2024, 1, 15, 14, 0, 0, 0, loc)

	corte := &models.Service{ID: uuid.New(), Name: "Corte", Price: 50}
	barba := &models.Service{ID: uuid.New(), Name: "Barba", Price: 30}
	combo := &models.Service{ID: uuid.New(), Name: "Combo", Price: 75}

	day := func(d, h int) time.Time {
		return time.Date(2024, 1, d, h, 0, 0, 0, loc)
	}

	// corte 3x, barba 2x, combo 2x; barba descoberto antes do combo
	repo.appointments = []models.Appointment{
		booked(corte, "a", day(2, 9)),
		booked(barba, "b", day(2, 10)),
		booked(combo, "c", day(3, 9)),
		booked(corte, "d", day(4, 9)),
		booked(barba, "e", day(5, 9)),
		booked(combo, "f", day(8, 9)),
		booked(corte, "g", day(9, 9)),
	}

	stats, err := NewGetStats(repo, nil).Execute(ctx, repo.biz.ID, asOf)
	require.NoError(t, err)

	require.Len(t, stats.TopServices, 3)
	assert.Equal(t, "Corte", stats.TopServices[0].Name)
	assert.Equal(t, 3, stats.TopServices[0].Count)

	// empate 2x2 preserva a ordem de descoberta
	assert.Equal(t, "Barba", stats.TopServices[1].Name)
	assert.Equal(t, "Combo", stats.TopServices[2].Name)
}

func TestGetStats_CacheHit(t *testing.T) {
	repo, loc := newStatsRepo(t)
	ctx := context.Background()
	asOf := time.Date(2024, 1, 15, 14, 0, 0, 0, loc)

	svc := &models.Service{ID: uuid.New(), Name: "Corte", Price: 50}
	repo.appointments = []models.Appointment{
		booked(svc, "+5511000000001", time.Date(2024, 1, 15, 9, 0, 0, 0, loc)),
	}

	mr := miniredis.RunT(t)
	c := cache.NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	uc := NewGetStats(repo, c)

	first, err := uc.Execute(ctx, repo.biz.ID, asOf)
	require.NoError(t, err)
	require.Equal(t, 1, repo.fetches)

	second, err := uc.Execute(ctx, repo.biz.ID, asOf)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.fetches, "segunda leitura vem do cache")
	assert.Equal(t, first, second)

	// TTL vencido força nova agregação
	mr.FastForward(2 * time.Minute)

	_, err = uc.Execute(ctx, repo.biz.ID, asOf)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.fetches)
}
