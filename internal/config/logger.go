package config

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the root logger from the logger config. Sub-loggers
// for repositories, services and handlers derive from it with their own
// component fields.
func NewLogger(cfg LoggerConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var out zerolog.Logger
	if cfg.Format == "console" {
		out = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	} else {
		out = zerolog.New(os.Stdout)
	}

	return out.With().Timestamp().Str("app", "shopkart").Logger()
}
