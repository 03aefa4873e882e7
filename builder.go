package redoxlog

import (
	"io"
	"os"
	"sync"
)

// Output is a single logging destination: an exclusively locked byte stream
// paired with a severity filter, an ANSI styling flag, and a flush policy.
//
// The mutex guards the endpoint. The three knobs are set at Build time and
// only the Logger that owns the output adjusts the filter afterwards, during
// construction (override clamps), so dispatch reads them without the lock.
type Output struct {
	mu       sync.Mutex
	endpoint io.Writer

	filter       Severity
	ansi         bool
	flushOnWrite bool
}

// Filter returns the output's severity filter. After override clamps this is
// the effective value; the pre-clamp filter is not retained.
func (o *Output) Filter() Severity { return o.filter }

// deliver writes a formatted line to the endpoint when admitted, then
// applies the flush policy whether or not the line was written, all under
// the endpoint lock. Failures never escape: write and flush errors are
// discarded, and a panicking endpoint is contained, leaving the output
// usable for later records.
func (o *Output) deliver(line []byte, admitted bool) (n int, wrote bool) {
	defer func() { _ = recover() }()

	o.mu.Lock()
	defer o.mu.Unlock()

	if admitted {
		if _, err := o.endpoint.Write(line); err == nil {
			n, wrote = len(line), true
		}
	}
	if o.flushOnWrite {
		_ = flushWriter(o.endpoint)
	}
	return n, wrote
}

// flush pushes buffered endpoint data out, discarding failures.
func (o *Output) flush() {
	defer func() { _ = recover() }()

	o.mu.Lock()
	defer o.mu.Unlock()
	_ = flushWriter(o.endpoint)
}

// close flushes and closes the endpoint. The process streams are left open.
func (o *Output) close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	_ = flushWriter(o.endpoint)
	return closeWriter(o.endpoint)
}

// OutputBuilder stages the construction of an Output. Knobs that were never
// set keep their defaults: filter Info, flush after every write, no ANSI
// styling.
type OutputBuilder struct {
	endpoint     io.Writer
	filter       Severity
	ansi         bool
	flushOnWrite bool
	tty          bool
}

// NewOutput starts building an output over an arbitrary endpoint.
func NewOutput(w io.Writer) *OutputBuilder {
	return &OutputBuilder{
		endpoint:     w,
		filter:       DefaultFilter,
		flushOnWrite: DefaultFlushOnWrite,
		tty:          isTerminal(w),
	}
}

// Stdout starts building an output over the process standard output, wrapped
// for Windows console compatibility.
func Stdout() *OutputBuilder {
	b := NewOutput(stdoutWriter())
	b.tty = isTerminal(os.Stdout)
	return b
}

// Stderr starts building an output over the process standard error, wrapped
// for Windows console compatibility.
func Stderr() *OutputBuilder {
	b := NewOutput(stderrWriter())
	b.tty = isTerminal(os.Stderr)
	return b
}

// File starts building an output appending to the file at path, creating it
// and any missing parent directories. A leading ~ is expanded.
func File(path string) (*OutputBuilder, error) {
	f, err := openLogFile(path)
	if err != nil {
		return nil, err
	}
	return NewOutput(f), nil
}

// WithFilter sets the severity filter. Invalid values are ignored.
func (b *OutputBuilder) WithFilter(s Severity) *OutputBuilder {
	if b == nil || !s.IsValid() {
		return b
	}
	b.filter = s
	return b
}

// WithANSI switches ANSI styling of formatted records on or off.
func (b *OutputBuilder) WithANSI(enabled bool) *OutputBuilder {
	if b == nil {
		return b
	}
	b.ansi = enabled
	return b
}

// AutoANSI enables ANSI styling only when the endpoint is an interactive
// terminal.
func (b *OutputBuilder) AutoANSI() *OutputBuilder {
	if b == nil {
		return b
	}
	b.ansi = b.tty
	return b
}

// WithFlushOnWrite sets whether the endpoint is flushed after every
// dispatch that reaches this output.
func (b *OutputBuilder) WithFlushOnWrite(enabled bool) *OutputBuilder {
	if b == nil {
		return b
	}
	b.flushOnWrite = enabled
	return b
}

// Build produces the configured Output.
func (b *OutputBuilder) Build() (*Output, error) {
	if b == nil || b.endpoint == nil {
		return nil, ErrNilEndpoint
	}
	return &Output{
		endpoint:     b.endpoint,
		filter:       b.filter,
		ansi:         b.ansi,
		flushOnWrite: b.flushOnWrite,
	}, nil
}
