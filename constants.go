package redoxlog

import "log/slog"

const (
	// DefaultFilter is the severity filter applied to outputs that never
	// had one set. Info keeps routine debug chatter out of endpoints by
	// default.
	DefaultFilter = Info

	// DefaultFlushOnWrite is the flush policy applied to outputs that never
	// had one set. Flushing after every record favors crash visibility over
	// throughput, which is the right trade for a system logger.
	DefaultFlushOnWrite = true
)

const (
	// TimeFormat is the fixed timestamp layout of formatted records:
	// ISO-8601 with millisecond precision and a numeric UTC offset.
	// UTC renders as +00:00, never as Z.
	TimeFormat = "2006-01-02T15:04:05.000-07:00"
)

// File system permission constants.
const (
	// DirPermissions is the permission mode for creating log directories (rwx------).
	DirPermissions = 0700

	// FilePermissions is the permission mode for creating log files (rw-------).
	FilePermissions = 0600
)

const (
	// defaultBufferSize is the initial capacity for record buffers.
	// 256 bytes covers a typical formatted line without reallocation.
	defaultBufferSize = 256

	// maxBufferSize is the maximum buffer capacity returned to the pool.
	// Larger buffers are dropped to prevent memory bloat from occasional
	// oversized messages.
	maxBufferSize = 4 * 1024
)

// levelOff is the slog threshold that admits nothing. It sits far above
// every named level, including custom ones applications are likely to use.
const levelOff = slog.Level(1 << 10)
