package redoxlog

import (
	"context"
	"log/slog"
	"time"

	"github.com/planet-s/redox-log/internal"
)

// Logger implements slog.Handler, so slog.New(logger) yields a front end for
// scoped use and Install wires the process default. The handler surface is
// intentionally thin: admission checks collapse to Admits and every record
// collapses to this package's line-oriented Record.

// Enabled implements slog.Handler by delegating to Admits.
func (l *Logger) Enabled(_ context.Context, level slog.Level) bool {
	return l.Admits(SeverityFromLevel(level))
}

// Handle implements slog.Handler. The slog record's time, level, message,
// and call site carry over; attributes and groups are not rendered. Handle
// always reports success, keeping per-write failures inside the outputs.
func (l *Logger) Handle(_ context.Context, rec slog.Record) error {
	t := rec.Time
	if t.IsZero() {
		t = time.Now()
	}
	target, line := internal.Origin(rec.PC)

	l.Dispatch(Record{
		Time:     t,
		Severity: SeverityFromLevel(rec.Level),
		Target:   target,
		Line:     line,
		Message:  rec.Message,
	})
	return nil
}

// WithAttrs implements slog.Handler. Structured attributes have no place in
// the line format, so the handler is returned unchanged.
func (l *Logger) WithAttrs(_ []slog.Attr) slog.Handler { return l }

// WithGroup implements slog.Handler. Groups only qualify attributes, which
// are not rendered, so the handler is returned unchanged.
func (l *Logger) WithGroup(_ string) slog.Handler { return l }
