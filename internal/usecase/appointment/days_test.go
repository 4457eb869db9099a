package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxoapp/fluxo-api/internal/domain/schedule"
	"github.com/fluxoapp/fluxo-api/internal/httperr"
)

func TestGetAvailableDays(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	uc := NewGetAvailableDays(f.repo)

	monday := time.Date(2024, 1, 8, 0, 0, 0, 0, f.loc)

	days, err := uc.Execute(ctx, DaysInput{
		BusinessID:     f.biz.ID,
		ServiceID:      f.svc.ID,
		ProfessionalID: f.pro.ID,
		From:           monday,
	})
	require.NoError(t, err)
	require.Len(t, days, schedule.DefaultHorizonDays)

	// só a terça tem expediente no cadastro; o resto fica com zero
	assert.Equal(t, "2024-01-08", days[0].Date)
	assert.Equal(t, 0, days[0].Slots)
	assert.Equal(t, "2024-01-09", days[1].Date)
	assert.Equal(t, 7, days[1].Slots)
	for i := 2; i < len(days); i++ {
		assert.Zero(t, days[i].Slots, "dia %s deveria estar fechado", days[i].Date)
	}

	t.Run("agendamento existente reduz a contagem do dia", func(t *testing.T) {
		_, err := f.createUC().Execute(ctx, f.input(time.Date(2024, 1, 9, 9, 0, 0, 0, f.loc)))
		require.NoError(t, err)

		days, err := uc.Execute(ctx, DaysInput{
			BusinessID:     f.biz.ID,
			ServiceID:      f.svc.ID,
			ProfessionalID: f.pro.ID,
			From:           monday,
		})
		require.NoError(t, err)
		assert.Equal(t, 4, days[1].Slots)
	})

	t.Run("serviço inexistente é not found", func(t *testing.T) {
		_, err := uc.Execute(ctx, DaysInput{
			BusinessID:     f.biz.ID,
			ServiceID:      uuid.New(),
			ProfessionalID: f.pro.ID,
			From:           monday,
		})

		var nfe httperr.NotFoundError
		require.True(t, errors.As(err, &nfe))
		assert.Equal(t, "service", nfe.Entity)
	})
}
