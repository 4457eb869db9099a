package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxoapp/fluxo-api/internal/httperr"
	"github.com/fluxoapp/fluxo-api/internal/models"
)

func saoPaulo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	return loc
}

func mondayHours() []models.BusinessHours {
	return []models.BusinessHours{
		{Weekday: 0, IsOpen: true, StartTime: "09:00", EndTime: "18:00"},
		{Weekday: 6, IsOpen: false},
	}
}

func TestWeekdayOf(t *testing.T) {
	loc := saoPaulo(t)

	monday := time.Date(2024, 1, 8, 10, 0, 0, 0, loc)
	sunday := time.Date(2024, 1, 7, 10, 0, 0, 0, loc)

	assert.Equal(t, 0, WeekdayOf(monday))
	assert.Equal(t, 6, WeekdayOf(sunday))
}

func TestResolveDay(t *testing.T) {
	hours := mondayHours()

	t.Run("dia sem linha é não configurado", func(t *testing.T) {
		day := ResolveDay(hours, 2)
		assert.False(t, day.Configured)
		assert.False(t, day.IsOpen)
	})

	t.Run("is_open=false é fechado", func(t *testing.T) {
		day := ResolveDay(hours, 6)
		assert.True(t, day.Configured)
		assert.False(t, day.IsOpen)
	})

	t.Run("limite em branco é fechado", func(t *testing.T) {
		rows := []models.BusinessHours{
			{Weekday: 1, IsOpen: true, StartTime: "09:00", EndTime: ""},
		}
		day := ResolveDay(rows, 1)
		assert.True(t, day.Configured)
		assert.False(t, day.IsOpen)
	})

	t.Run("dia aberto resolve a janela", func(t *testing.T) {
		day := ResolveDay(hours, 0)
		assert.True(t, day.Configured)
		assert.True(t, day.IsOpen)
		assert.Equal(t, "09:00", day.Start)
		assert.Equal(t, "18:00", day.End)
	})
}

func TestCheckWithin_Timezone(t *testing.T) {
	loc := saoPaulo(t)
	day := ResolveDay(mondayHours(), 0) // segunda 09:00–18:00

	at := func(h, m int) time.Time {
		return time.Date(2024, 1, 8, h, m, 0, 0, loc) // segunda-feira
	}

	t.Run("08:59 é cedo demais", func(t *testing.T) {
		err := CheckWithin(day, at(8, 59), at(9, 29))

		var he httperr.HoursError
		require.True(t, errors.As(err, &he))
		assert.Equal(t, ReasonTooEarly, he.Reason)
		assert.Equal(t, "09:00", he.Boundary)
	})

	t.Run("09:00 em ponto é aceito", func(t *testing.T) {
		assert.NoError(t, CheckWithin(day, at(9, 0), at(9, 30)))
	})

	t.Run("17:31 com 30min estoura o fechamento", func(t *testing.T) {
		err := CheckWithin(day, at(17, 31), at(18, 1))

		var he httperr.HoursError
		require.True(t, errors.As(err, &he))
		assert.Equal(t, ReasonTooLate, he.Reason)
		assert.Equal(t, "18:00", he.Boundary)
	})

	t.Run("terminar exatamente no fechamento é aceito", func(t *testing.T) {
		assert.NoError(t, CheckWithin(day, at(17, 30), at(18, 0)))
	})

	t.Run("dia fechado", func(t *testing.T) {
		closed := ResolveDay(mondayHours(), 6)
		err := CheckWithin(closed, at(10, 0), at(10, 30))

		var he httperr.HoursError
		require.True(t, errors.As(err, &he))
		assert.Equal(t, ReasonClosedDay, he.Reason)
	})

	t.Run("dia não configurado", func(t *testing.T) {
		missing := ResolveDay(mondayHours(), 3)
		err := CheckWithin(missing, at(10, 0), at(10, 30))

		var he httperr.HoursError
		require.True(t, errors.As(err, &he))
		assert.Equal(t, ReasonNotConfigured, he.Reason)
	})
}

func TestValidWallClock(t *testing.T) {
	assert.True(t, ValidWallClock("09:00"))
	assert.True(t, ValidWallClock("23:59"))

	// formato com segundos (como sistemas legados gravam) não é "15:04"
	assert.False(t, ValidWallClock("18:00:00"))
	assert.False(t, ValidWallClock(""))
	assert.False(t, ValidWallClock("25:00"))
	assert.False(t, ValidWallClock("abc"))
}

func TestCheckWithin_MalformedBoundary(t *testing.T) {
	loc := saoPaulo(t)
	day := DayHours{
		Configured: true,
		IsOpen:     true,
		Start:      "09:00",
		End:        "18:00:00",
	}

	// 10:00 está dentro do expediente real; o limite ilegível não pode
	// virar janela 00:00 e derrubar o dia inteiro como too_late
	start := time.Date(2024, 1, 8, 10, 0, 0, 0, loc)
	err := CheckWithin(day, start, start.Add(30*time.Minute))

	var he httperr.HoursError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, ReasonNotConfigured, he.Reason)
	assert.Empty(t, he.Boundary)
}

func TestCheckWithin_LunchBreak(t *testing.T) {
	loc := saoPaulo(t)
	day := DayHours{
		Configured: true,
		IsOpen:     true,
		Start:      "09:00",
		End:        "18:00",
		LunchStart: "12:00",
		LunchEnd:   "13:00",
	}

	at := func(h, m int) time.Time {
		return time.Date(2024, 1, 8, h, m, 0, 0, loc)
	}

	err := CheckWithin(day, at(12, 30), at(13, 0))
	var he httperr.HoursError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, ReasonLunchBreak, he.Reason)

	// encostar na pausa não conflita (intervalo meio-aberto)
	assert.NoError(t, CheckWithin(day, at(11, 30), at(12, 0)))
	assert.NoError(t, CheckWithin(day, at(13, 0), at(13, 30)))
}

func TestOverlaps_HalfOpen(t *testing.T) {
	loc := saoPaulo(t)
	at := func(h, m int) time.Time {
		return time.Date(2024, 1, 9, h, m, 0, 0, loc)
	}

	// sobreposição parcial
	assert.True(t, Overlaps(at(8, 0), at(9, 0), at(8, 30), at(9, 30)))
	// contido
	assert.True(t, Overlaps(at(8, 0), at(9, 0), at(8, 15), at(8, 45)))
	// extremos que se tocam NÃO conflitam
	assert.False(t, Overlaps(at(8, 0), at(9, 0), at(9, 0), at(10, 0)))
	assert.False(t, Overlaps(at(9, 0), at(10, 0), at(8, 0), at(9, 0)))
	// disjuntos
	assert.False(t, Overlaps(at(8, 0), at(9, 0), at(10, 0), at(11, 0)))
}
