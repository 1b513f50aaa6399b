// Package logging wires zerolog with the defaults a batch run wants: console
// output, RFC3339 timestamps, named component loggers.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options configures the root logger.
type Options struct {
	Level  string // trace|debug|info|warn|error, default info
	Format string // console|json, default console
	Writer io.Writer
}

var (
	once sync.Once
	root zerolog.Logger
)

// Init builds the root logger; safe to call once.
func Init(opt Options) {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339

		var w io.Writer = os.Stdout
		if opt.Writer != nil {
			w = opt.Writer
		}
		if opt.Format != "json" {
			w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
		}
		root = zerolog.New(w).Level(parseLevel(opt.Level)).With().Timestamp().Logger()
	})
}

// Named returns a child logger tagged with a component field.
func Named(component string) zerolog.Logger {
	if component == "" {
		return root
	}
	return root.With().Str("component", component).Logger()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
