package redoxlog

import (
	"fmt"
	"log/slog"
	"strings"
)

// Severity classifies log records and destination filters.
//
// Ordering is by verbosity: a lower ordinal is more severe, so Error < Warn
// < Info < Debug < Trace. A destination admits a record when the record's
// severity ordinal is less than or equal to the destination's filter ordinal.
// Off is valid only as a filter value and admits nothing.
type Severity int8

const (
	// Off disables a destination entirely. Records never carry it.
	Off Severity = iota
	// Error marks failures that need attention.
	Error
	// Warn marks suspicious but survivable conditions.
	Warn
	// Info marks normal operational messages. The default filter.
	Info
	// Debug marks developer-facing detail.
	Debug
	// Trace marks the most verbose, per-step detail.
	Trace
)

// severityCount is the number of defined severities, including Off.
const severityCount = int(Trace) + 1

var severityNames = [severityCount]string{"Off", "Error", "Warn", "Info", "Debug", "Trace"}

// String returns the capitalized severity name used in formatted records.
func (s Severity) String() string {
	if s.IsValid() {
		return severityNames[s]
	}
	return fmt.Sprintf("Severity(%d)", int8(s))
}

// IsValid reports whether s is one of the defined severities.
func (s Severity) IsValid() bool {
	return s >= Off && s <= Trace
}

// ParseSeverity converts a case-insensitive severity name to its value.
// It accepts the canonical names plus the aliases "err" and "warning".
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "off":
		return Off, nil
	case "error", "err":
		return Error, nil
	case "warn", "warning":
		return Warn, nil
	case "info":
		return Info, nil
	case "debug":
		return Debug, nil
	case "trace":
		return Trace, nil
	default:
		return Off, fmt.Errorf("%w: %q", ErrInvalidSeverity, name)
	}
}

// LevelTrace is the slog level corresponding to Trace. The slog package
// defines no level below Debug, so the bridge claims the next slot down.
const LevelTrace = slog.LevelDebug - 4

// Level returns the slog level corresponding to s. Off maps to a level
// above every named level so that a threshold of Off admits nothing.
func (s Severity) Level() slog.Level {
	switch s {
	case Error:
		return slog.LevelError
	case Warn:
		return slog.LevelWarn
	case Info:
		return slog.LevelInfo
	case Debug:
		return slog.LevelDebug
	case Trace:
		return LevelTrace
	default:
		return levelOff
	}
}

// SeverityFromLevel buckets a slog level into a Severity. Levels at or above
// a named level take that name; anything below Debug is Trace.
func SeverityFromLevel(l slog.Level) Severity {
	switch {
	case l >= slog.LevelError:
		return Error
	case l >= slog.LevelWarn:
		return Warn
	case l >= slog.LevelInfo:
		return Info
	case l >= slog.LevelDebug:
		return Debug
	default:
		return Trace
	}
}
