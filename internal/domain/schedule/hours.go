package schedule

import (
	"time"

	"github.com/fluxoapp/fluxo-api/internal/httperr"
	"github.com/fluxoapp/fluxo-api/internal/models"
)

// Motivos de indisponibilidade retornados por CheckWithin.
const (
	ReasonNotConfigured = "hours_not_configured"
	ReasonClosedDay     = "closed_day"
	ReasonTooEarly      = "too_early"
	ReasonTooLate       = "too_late"
	ReasonLunchBreak    = "lunch_break"
)

// DayHours é a janela de funcionamento resolvida para um dia da semana.
type DayHours struct {
	Configured bool
	IsOpen     bool
	Start      string
	End        string
	LunchStart string
	LunchEnd   string
}

// WeekdayOf converte o weekday do Go (domingo=0) para a convenção
// do modelo (segunda=0 .. domingo=6). Único ponto de conversão.
func WeekdayOf(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// ResolveDay procura a janela do dia entre as linhas de horário do negócio.
// Dia sem linha é "não configurado"; linha com is_open=false ou limite em
// branco é "fechado". Ambos significam nenhuma disponibilidade.
func ResolveDay(rows []models.BusinessHours, weekday int) DayHours {
	for _, row := range rows {
		if row.Weekday != weekday {
			continue
		}
		return DayHours{
			Configured: true,
			IsOpen:     row.IsOpen && row.StartTime != "" && row.EndTime != "",
			Start:      row.StartTime,
			End:        row.EndTime,
			LunchStart: row.LunchStart,
			LunchEnd:   row.LunchEnd,
		}
	}
	return DayHours{}
}

// ValidWallClock aceita apenas hora local no formato "15:04". Valores com
// segundos ou lixo ("18:00:00") são rejeitados na borda, nunca lidos como
// 00:00.
func ValidWallClock(hm string) bool {
	_, err := time.Parse("15:04", hm)
	return err == nil
}

// AtWallClock ancora uma hora local "15:04" no dia de ref, na mesma
// location. hm precisa ter passado por ValidWallClock.
func AtWallClock(ref time.Time, hm string, loc *time.Location) time.Time {
	t, _ := time.Parse("15:04", hm)
	return time.Date(
		ref.Year(), ref.Month(), ref.Day(),
		t.Hour(), t.Minute(), 0, 0,
		loc,
	)
}

// Overlaps testa sobreposição de intervalos meio-abertos [start, end).
// Extremos que apenas se tocam NÃO conflitam.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// CheckWithin valida que o intervalo [start, end) cabe dentro da janela do
// dia. start e end devem estar na timezone do negócio; o dia considerado é o
// de start. O agendamento precisa terminar até o fechamento, nunca depois.
func CheckWithin(day DayHours, start, end time.Time) error {
	if !day.Configured {
		return httperr.ErrHours(ReasonNotConfigured, "")
	}
	if !day.IsOpen {
		return httperr.ErrHours(ReasonClosedDay, "")
	}

	// limite ilegível equivale a dia sem configuração utilizável
	if !ValidWallClock(day.Start) || !ValidWallClock(day.End) {
		return httperr.ErrHours(ReasonNotConfigured, "")
	}

	loc := start.Location()
	open := AtWallClock(start, day.Start, loc)
	close := AtWallClock(start, day.End, loc)

	if start.Before(open) {
		return httperr.ErrHours(ReasonTooEarly, day.Start)
	}
	if end.After(close) {
		return httperr.ErrHours(ReasonTooLate, day.End)
	}

	if ValidWallClock(day.LunchStart) && ValidWallClock(day.LunchEnd) {
		lunchStart := AtWallClock(start, day.LunchStart, loc)
		lunchEnd := AtWallClock(start, day.LunchEnd, loc)
		if Overlaps(start, end, lunchStart, lunchEnd) {
			return httperr.ErrHours(ReasonLunchBreak, day.LunchStart)
		}
	}

	return nil
}
