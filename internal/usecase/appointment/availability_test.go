package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxoapp/fluxo-api/internal/httperr"
	"github.com/fluxoapp/fluxo-api/internal/models"
)

func TestGetAvailableProfessionals(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	uc := NewGetAvailableProfessionals(f.repo)

	other := &models.Professional{ID: uuid.New(), Name: "Bruno"}
	f.repo.addProfessional(other, f.svc.ID)

	tuesday := func(h, m int) time.Time {
		return time.Date(2024, 1, 9, h, m, 0, 0, f.loc)
	}

	t.Run("todos livres", func(t *testing.T) {
		out, err := uc.Execute(ctx, AvailabilityInput{
			BusinessID: f.biz.ID,
			ServiceID:  f.svc.ID,
			StartTime:  tuesday(8, 0),
		})
		require.NoError(t, err)
		require.Len(t, out, 2)
	})

	t.Run("ocupado sai da lista", func(t *testing.T) {
		_, err := f.createUC().Execute(ctx, f.input(tuesday(8, 0)))
		require.NoError(t, err)

		out, err := uc.Execute(ctx, AvailabilityInput{
			BusinessID: f.biz.ID,
			ServiceID:  f.svc.ID,
			StartTime:  tuesday(8, 30),
		})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, other.ID, out[0].ID)
	})

	t.Run("consulta é idempotente", func(t *testing.T) {
		first, err := uc.Execute(ctx, AvailabilityInput{
			BusinessID: f.biz.ID,
			ServiceID:  f.svc.ID,
			StartTime:  tuesday(8, 30),
		})
		require.NoError(t, err)

		second, err := uc.Execute(ctx, AvailabilityInput{
			BusinessID: f.biz.ID,
			ServiceID:  f.svc.ID,
			StartTime:  tuesday(8, 30),
		})
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("fora do expediente é HoursError, não lista vazia", func(t *testing.T) {
		_, err := uc.Execute(ctx, AvailabilityInput{
			BusinessID: f.biz.ID,
			ServiceID:  f.svc.ID,
			StartTime:  tuesday(6, 0),
		})

		var he httperr.HoursError
		require.True(t, errors.As(err, &he))
		assert.Equal(t, "too_early", he.Reason)
	})
}

func TestGetAvailableProfessionals_NoQualified(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	uc := NewGetAvailableProfessionals(f.repo)

	// serviço sem nenhum profissional habilitado
	lone := &models.Service{ID: uuid.New(), Name: "Coloração", DurationMinutes: 30, Price: 80}
	f.repo.addService(lone)

	out, err := uc.Execute(ctx, AvailabilityInput{
		BusinessID: f.biz.ID,
		ServiceID:  lone.ID,
		StartTime:  time.Date(2024, 1, 9, 8, 0, 0, 0, f.loc),
	})

	require.NoError(t, err, "sem habilitados é resultado vazio, não erro")
	assert.Empty(t, out)
	assert.NotNil(t, out)
}

func TestGetAvailableProfessionals_ExcludeSelf(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	uc := NewGetAvailableProfessionals(f.repo)

	start := time.Date(2024, 1, 9, 8, 0, 0, 0, f.loc)
	ap, err := f.createUC().Execute(ctx, f.input(start))
	require.NoError(t, err)

	// sem exclusão o profissional aparece ocupado no próprio horário
	out, err := uc.Execute(ctx, AvailabilityInput{
		BusinessID: f.biz.ID,
		ServiceID:  f.svc.ID,
		StartTime:  start,
	})
	require.NoError(t, err)
	assert.Empty(t, out)

	// excluindo o próprio agendamento ele volta a estar livre
	out, err = uc.Execute(ctx, AvailabilityInput{
		BusinessID:           f.biz.ID,
		ServiceID:            f.svc.ID,
		StartTime:            start,
		ExcludeAppointmentID: &ap.ID,
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, f.pro.ID, out[0].ID)
}

func TestGetAvailableSlots(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	uc := NewGetAvailableSlots(f.repo)

	tuesday := time.Date(2024, 1, 9, 0, 0, 0, 0, f.loc)

	t.Run("agenda cheia reduz os slots", func(t *testing.T) {
		_, err := f.createUC().Execute(ctx, f.input(time.Date(2024, 1, 9, 9, 0, 0, 0, f.loc)))
		require.NoError(t, err)

		slots, err := uc.Execute(ctx, SlotsInput{
			BusinessID:     f.biz.ID,
			ServiceID:      f.svc.ID,
			ProfessionalID: f.pro.ID,
			Date:           tuesday,
		})
		require.NoError(t, err)

		got := make([]string, 0, len(slots))
		for _, s := range slots {
			got = append(got, s.Start)
		}
		assert.Equal(t, []string{"08:00", "10:00", "10:30", "11:00"}, got)
		assert.Equal(t, "09:00", slots[0].End)
	})

	t.Run("dia fechado é lista vazia, sem erro", func(t *testing.T) {
		sunday := time.Date(2024, 1, 7, 0, 0, 0, 0, f.loc)

		slots, err := uc.Execute(ctx, SlotsInput{
			BusinessID:     f.biz.ID,
			ServiceID:      f.svc.ID,
			ProfessionalID: f.pro.ID,
			Date:           sunday,
		})
		require.NoError(t, err)
		assert.Empty(t, slots)
		assert.NotNil(t, slots)
	})
}
