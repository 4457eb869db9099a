package schedule

import "time"

const (
	// passo fixo entre horários candidatos
	SlotStepMinutes = 30

	// horizonte padrão de listagem de disponibilidade
	DefaultHorizonDays = 7
)

// Slots enumera os inícios candidatos de um dia, ancorados em date na
// location dada. Dia fechado ou não configurado devolve slice vazio;
// ausência de vaga é um resultado normal, não um erro.
//
// Um candidato entra somente se slot + duração terminar até o fechamento
// e não cruzar a pausa de almoço.
func Slots(day DayHours, date time.Time, loc *time.Location, durationMin int) []time.Time {
	if !day.Configured || !day.IsOpen || durationMin <= 0 {
		return nil
	}
	if !ValidWallClock(day.Start) || !ValidWallClock(day.End) {
		return nil
	}

	open := AtWallClock(date, day.Start, loc)
	close := AtWallClock(date, day.End, loc)

	duration := time.Duration(durationMin) * time.Minute
	step := SlotStepMinutes * time.Minute

	hasLunch := ValidWallClock(day.LunchStart) && ValidWallClock(day.LunchEnd)
	var lunchStart, lunchEnd time.Time
	if hasLunch {
		lunchStart = AtWallClock(date, day.LunchStart, loc)
		lunchEnd = AtWallClock(date, day.LunchEnd, loc)
	}

	var slots []time.Time
	for cur := open; !cur.Add(duration).After(close); cur = cur.Add(step) {
		if hasLunch && Overlaps(cur, cur.Add(duration), lunchStart, lunchEnd) {
			continue
		}
		slots = append(slots, cur)
	}

	return slots
}

// FreeSlots filtra os candidatos de Slots contra os agendamentos já
// existentes do profissional (intervalos meio-abertos).
func FreeSlots(candidates []time.Time, durationMin int, busy []Interval) []time.Time {
	duration := time.Duration(durationMin) * time.Minute

	var free []time.Time
	for _, slot := range candidates {
		end := slot.Add(duration)

		conflict := false
		for _, b := range busy {
			if Overlaps(slot, end, b.Start, b.End) {
				conflict = true
				break
			}
		}

		if !conflict {
			free = append(free, slot)
		}
	}

	return free
}

// Interval é um intervalo meio-aberto [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}
