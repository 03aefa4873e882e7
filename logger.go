package redoxlog

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Logger fans records out to an ordered set of outputs and answers
// admission queries from two bounds derived from the output filters:
//
//   - ceiling: the most verbose filter in use. A severity is admitted when
//     at least one output would accept it, which reduces to a single
//     comparison against the ceiling.
//   - floor: the least verbose filter in use, the level every output
//     accepts.
//
// Both bounds are recomputed from the full output set after every mutation,
// never incrementally, so they cannot drift from the filters.
//
// Construction is single-phase: add outputs, optionally clamp them, then
// Install at most once. Mutation during construction is serialized by an
// internal mutex; after Install the output set and bounds are immutable and
// read without synchronization. Per-output locks do all dispatch-time
// synchronization.
type Logger struct {
	mu      sync.Mutex
	outputs []*Output

	overrideMin Severity
	overrideMax Severity
	hasMin      bool
	hasMax      bool

	// admission bounds, stored as Severity ordinals
	floor   atomic.Int32
	ceiling atomic.Int32

	installed atomic.Bool
	closed    atomic.Bool

	stats [severityCount]lineStats
}

type lineStats struct {
	lines atomic.Int64
	bytes atomic.Int64
}

// New creates a Logger with no outputs. Until an output is added it admits
// nothing.
func New() *Logger {
	return &Logger{}
}

// AddOutput appends out to the fan-out set, clamping its filter by any
// overrides in force, and recomputes the admission bounds. Outputs are
// dispatched to in insertion order. Nil outputs are ignored, and adding to
// an installed logger has no effect.
func (l *Logger) AddOutput(out *Output) *Logger {
	if l == nil || out == nil || l.installed.Load() {
		return l
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	out.filter = l.clamp(out.filter)
	l.outputs = append(l.outputs, out)
	l.recompute()
	return l
}

// OverrideMax caps every filter, present and future: after the call no
// output's stored filter is more verbose than s. Invalid values are
// ignored, as are calls on an installed logger.
func (l *Logger) OverrideMax(s Severity) *Logger {
	if l == nil || !s.IsValid() || l.installed.Load() {
		return l
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.overrideMax = s
	l.hasMax = true
	l.reclamp()
	return l
}

// OverrideMin raises every filter, present and future: after the call no
// output's stored filter is less verbose than s. Invalid values are
// ignored, as are calls on an installed logger.
func (l *Logger) OverrideMin(s Severity) *Logger {
	if l == nil || !s.IsValid() || l.installed.Load() {
		return l
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.overrideMin = s
	l.hasMin = true
	l.reclamp()
	return l
}

// clamp applies the override bounds to a filter: cap first, then floor.
func (l *Logger) clamp(s Severity) Severity {
	if l.hasMax && s > l.overrideMax {
		s = l.overrideMax
	}
	if l.hasMin && s < l.overrideMin {
		s = l.overrideMin
	}
	return s
}

// reclamp rewrites every stored filter through the override bounds and
// recomputes. Clamping is destructive: the pre-override filters are gone.
func (l *Logger) reclamp() {
	for _, out := range l.outputs {
		out.filter = l.clamp(out.filter)
	}
	l.recompute()
}

// recompute folds the admission bounds from the full output set. An empty
// set folds to Off for both.
func (l *Logger) recompute() {
	floor, ceiling := Off, Off
	for i, out := range l.outputs {
		if i == 0 || out.filter < floor {
			floor = out.filter
		}
		if out.filter > ceiling {
			ceiling = out.filter
		}
	}
	l.floor.Store(int32(floor))
	l.ceiling.Store(int32(ceiling))
}

// Admits reports whether at least one output would accept a record of
// severity s. It is a single atomic comparison against the ceiling; the
// output set is never scanned. An empty logger admits nothing, and Off is
// never admitted.
func (l *Logger) Admits(s Severity) bool {
	return s > Off && s <= Severity(l.ceiling.Load())
}

// AdmissionRange returns the derived bounds: floor is the least verbose
// filter in use, ceiling the most verbose. Both are Off when the logger has
// no outputs.
func (l *Logger) AdmissionRange() (floor, ceiling Severity) {
	return Severity(l.floor.Load()), Severity(l.ceiling.Load())
}

// Outputs returns the number of outputs in the fan-out set.
func (l *Logger) Outputs() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.outputs)
}

// Dispatch hands rec to every output in insertion order. Each output
// applies its own filter and writes under its own lock; a failing or
// panicking endpoint affects neither the other outputs nor future records.
// Dispatch never returns an error: logging cannot be allowed to crash the
// application.
//
// The record is formatted at most twice, once plain and once styled,
// regardless of how many outputs share a rendering.
func (l *Logger) Dispatch(rec Record) {
	if rec.Severity == Off || !rec.Severity.IsValid() {
		return
	}

	var plainBuf, styledBuf *[]byte
	var plain, styled []byte
	defer func() {
		if plainBuf != nil {
			putRecordBuf(plainBuf, plain)
		}
		if styledBuf != nil {
			putRecordBuf(styledBuf, styled)
		}
	}()

	for _, out := range l.outputs {
		admitted := rec.Severity <= out.filter
		var line []byte
		if admitted {
			if out.ansi {
				if styledBuf == nil {
					styledBuf = getRecordBuf()
					styled = AppendRecord((*styledBuf)[:0], rec, true)
				}
				line = styled
			} else {
				if plainBuf == nil {
					plainBuf = getRecordBuf()
					plain = AppendRecord((*plainBuf)[:0], rec, false)
				}
				line = plain
			}
		}

		if n, ok := out.deliver(line, admitted); ok {
			l.stats[rec.Severity].lines.Add(1)
			l.stats[rec.Severity].bytes.Add(int64(n))
		}
	}
}

// FlushAll flushes every output, discarding failures.
func (l *Logger) FlushAll() {
	for _, out := range l.outputs {
		out.flush()
	}
}

// installGuard is process-global: at most one Logger ever becomes the
// default sink, no matter how many are built.
var installGuard atomic.Bool

// Install makes the logger the process-wide sink behind log/slog, at most
// once per process. On success the logger becomes immutable, slog.SetDefault
// routes the facade to it, and the legacy log-package bridge threshold is
// set to the admission ceiling, or to a level admitting nothing when no
// output was ever added.
//
// A second Install, on this or any other Logger, fails with ErrInstalled.
// Installation is permanent: the logger is never un-installed or reclaimed.
func (l *Logger) Install() error {
	if !installGuard.CompareAndSwap(false, true) {
		return ErrInstalled
	}

	l.installed.Store(true)
	_, ceiling := l.AdmissionRange()
	slog.SetLogLoggerLevel(ceiling.Level())
	slog.SetDefault(slog.New(l))
	return nil
}

// Installed reports whether this logger is the installed process sink.
func (l *Logger) Installed() bool {
	return l.installed.Load()
}

// Close flushes every output and closes the closable endpoints, leaving the
// process streams open. Closing is for loggers with a bounded life, such as
// in tests and tools; the installed logger lives for the rest of the process
// and refuses to close with ErrInstalled. Close is idempotent.
func (l *Logger) Close() error {
	if l.installed.Load() {
		return ErrInstalled
	}
	if !l.closed.CompareAndSwap(false, true) {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var errs []error
	for _, out := range l.outputs {
		if err := out.close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Stats is a snapshot of dispatch activity: lines and bytes successfully
// written, indexed by record severity and summed across outputs.
type Stats struct {
	Lines [severityCount]int64
	Bytes [severityCount]int64
}

// TotalLines returns the number of lines written at any severity.
func (s Stats) TotalLines() int64 {
	var total int64
	for _, n := range s.Lines {
		total += n
	}
	return total
}

// TotalBytes returns the number of bytes written at any severity.
func (s Stats) TotalBytes() int64 {
	var total int64
	for _, n := range s.Bytes {
		total += n
	}
	return total
}

// Stats returns a snapshot of the logger's write counters.
func (l *Logger) Stats() Stats {
	var s Stats
	for i := range l.stats {
		s.Lines[i] = l.stats[i].lines.Load()
		s.Bytes[i] = l.stats[i].bytes.Load()
	}
	return s
}
