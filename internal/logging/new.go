package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rs/zerolog"
)

// Options selects the adapter and verbosity built by New.
type Options struct {
	Level  string // debug | info | warn | error
	Format string // text | json | console | zerolog
	Output io.Writer
}

// New builds a Logger for the given options. text/json produce an slog
// logger; console/zerolog produce a zerolog logger (console is human
// readable, zerolog emits JSON lines).
func New(o Options) (Logger, error) {
	if o.Output == nil {
		o.Output = io.Discard
	}

	switch strings.ToLower(o.Format) {
	case "", "text", "json":
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(defaultLevel(o.Level))); err != nil {
			return nil, fmt.Errorf("log level %q: %w", o.Level, err)
		}
		opts := &slog.HandlerOptions{Level: lvl}
		var h slog.Handler = slog.NewTextHandler(o.Output, opts)
		if strings.EqualFold(o.Format, "json") {
			h = slog.NewJSONHandler(o.Output, opts)
		}
		return NewSlogLogger(slog.New(h)), nil

	case "console", "zerolog":
		lvl, err := zerolog.ParseLevel(defaultLevel(o.Level))
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", o.Level, err)
		}
		w := o.Output
		if strings.EqualFold(o.Format, "console") {
			w = zerolog.ConsoleWriter{Out: o.Output, NoColor: true}
		}
		return NewZerologLogger(zerolog.New(w).Level(lvl).With().Timestamp().Logger()), nil
	}

	return nil, fmt.Errorf("unknown log format %q", o.Format)
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func defaultLevel(s string) string {
	if s == "" {
		return "info"
	}
	return strings.ToLower(s)
}
