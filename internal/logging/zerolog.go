package logging

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// ZerologLogger adapts zerolog to Logger. Key–value pairs are attached as
// event fields; a trailing key without value is logged under "!BADKEY",
// mirroring slog.
type ZerologLogger struct {
	l zerolog.Logger
}

func NewZerologLogger(l zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{l: l}
}

func (z *ZerologLogger) Debug(ctx context.Context, msg string, args ...any) {
	z.emit(z.l.Debug(), msg, args)
}

func (z *ZerologLogger) Info(ctx context.Context, msg string, args ...any) {
	z.emit(z.l.Info(), msg, args)
}

func (z *ZerologLogger) Warn(ctx context.Context, msg string, args ...any) {
	z.emit(z.l.Warn(), msg, args)
}

func (z *ZerologLogger) Error(ctx context.Context, msg string, args ...any) {
	z.emit(z.l.Error(), msg, args)
}

func (z *ZerologLogger) With(args ...any) Logger {
	return &ZerologLogger{l: z.l.With().Fields(pairs(args)).Logger()}
}

func (z *ZerologLogger) emit(e *zerolog.Event, msg string, args []any) {
	if e == nil {
		return
	}
	e.Fields(pairs(args)).Msg(msg)
}

func pairs(args []any) map[string]any {
	m := make(map[string]any, len(args)/2+1)
	for i := 0; i < len(args); i += 2 {
		if i+1 == len(args) {
			m["!BADKEY"] = args[i]
			break
		}
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		if err, ok := args[i+1].(error); ok {
			m[key] = err.Error()
			continue
		}
		m[key] = args[i+1]
	}
	return m
}
