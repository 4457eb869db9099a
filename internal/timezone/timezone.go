// Package timezone centraliza a resolução de fusos IANA. Todo horário
// comparado ou exibido pelo sistema é ancorado no fuso do negócio.
package timezone

import "time"

const DefaultTimezone = "America/Sao_Paulo"

// IsValid aceita somente nomes IANA carregáveis; vazio não vale.
func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolve tz caindo no padrão quando inválido; nunca devolve nil.
func Location(tz string) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

// NowIn é o relógio local de um negócio (antecedência mínima, carimbos
// de cancelamento/conclusão).
func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}
