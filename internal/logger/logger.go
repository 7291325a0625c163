// Package logger provides a configured zerolog logger.
package logger

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New returns a zerolog.Logger writing to w. format is "json" or "console";
// level is any level zerolog.ParseLevel accepts.
func New(w io.Writer, format, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	if format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}

	return zerolog.New(w).Level(lvl).With().
		Str("service", "poolmap").
		Timestamp().
		Logger(), nil
}
