package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New monta o logger do serviço: JSON puro em produção, console colorido
// com nível debug no resto.
func New(appEnv string) zerolog.Logger {
	if appEnv == "production" {
		return zerolog.New(os.Stdout).
			Level(zerolog.InfoLevel).
			With().
			Timestamp().
			Str("service", "fluxo-api").
			Logger()
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
		Level(zerolog.DebugLevel).
		With().
		Timestamp().
		Logger()
}
