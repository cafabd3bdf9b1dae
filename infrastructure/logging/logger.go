package logging

import (
	"fmt"
	"io"
	"time"
	"udpreceiver/domain/app"
	"udpreceiver/infrastructure/settings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

// Setup builds the process logger, writing to out, and installs it as the
// zerolog global logger. The level is applied globally so GlobalLevel can
// change it later.
func Setup(cfg settings.LoggingSettings, out io.Writer) (zerolog.Logger, error) {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	zerolog.SetGlobalLevel(level)

	var output io.Writer
	switch cfg.Format {
	case settings.JSONLogFormat:
		output = out
	case settings.ConsoleLogFormat, "":
		output = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: "15:04:05",
		}
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q", cfg.Format)
	}

	logger := zerolog.New(output).
		With().
		Timestamp().
		Stack().
		Str("service", app.Name).
		Logger()
	log.Logger = logger

	return logger, nil
}

// GlobalLevel changes the level of every logger created by Setup.
type GlobalLevel struct {
}

func NewGlobalLevel() *GlobalLevel {
	return &GlobalLevel{}
}

func (g *GlobalLevel) SetLevel(level string) error {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(parsed)
	return nil
}
