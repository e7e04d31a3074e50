package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options controls how NewZerologLogger builds its output.
type Options struct {
	// Level is one of trace, debug, info, warn, error. Defaults to info.
	Level string
	// Pretty switches to the human-readable console writer.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

type ZerologLogger struct {
	l zerolog.Logger
}

// NewZerologLogger builds a logger from opts.
func NewZerologLogger(opts Options) *ZerologLogger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	l := zerolog.New(out).Level(ParseLevel(opts.Level)).With().Timestamp().Logger()
	return &ZerologLogger{l: l}
}

// Nop returns a logger that discards everything.
func Nop() *ZerologLogger {
	return &ZerologLogger{l: zerolog.Nop()}
}

// ParseLevel converts a level name to a zerolog.Level, falling back to info.
func ParseLevel(s string) zerolog.Level {
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

func (z *ZerologLogger) Debug(ctx context.Context, msg string, args ...any) {
	z.write(z.l.Debug(), ctx, msg, args)
}

func (z *ZerologLogger) Info(ctx context.Context, msg string, args ...any) {
	z.write(z.l.Info(), ctx, msg, args)
}

func (z *ZerologLogger) Warn(ctx context.Context, msg string, args ...any) {
	z.write(z.l.Warn(), ctx, msg, args)
}

func (z *ZerologLogger) Error(ctx context.Context, msg string, args ...any) {
	z.write(z.l.Error(), ctx, msg, args)
}

func (z *ZerologLogger) With(args ...any) Logger {
	return &ZerologLogger{l: z.l.With().Fields(pairs(args)).Logger()}
}

func (z *ZerologLogger) write(e *zerolog.Event, ctx context.Context, msg string, args []any) {
	if e == nil {
		return
	}
	e.Ctx(ctx).Fields(pairs(args)).Msg(msg)
}

// pairs turns key-value args into a field map; a dangling key gets the
// value "!MISSING".
func pairs(args []any) map[string]any {
	fields := make(map[string]any, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		key := fmt.Sprint(args[i])
		if i+1 >= len(args) {
			fields[key] = "!MISSING"
			break
		}
		fields[key] = args[i+1]
	}
	return fields
}
