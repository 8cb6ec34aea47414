// Package logger configures the global zerolog logger.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup sets the global level and output. Development gets the console
// writer; everything else logs JSON.
func Setup(level string, development bool) {
	Configure(os.Stderr, level, development)
}

func Configure(w io.Writer, level string, development bool) {
	zerolog.TimeFieldFormat = time.RFC3339
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if development {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}
