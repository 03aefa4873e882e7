package redoxlog

import (
	"strconv"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Record is a single log event, fully resolved before formatting. It is the
// unit a Logger fans out to its outputs.
type Record struct {
	Time     time.Time
	Severity Severity
	Target   string // originating component, usually a package import path
	Line     int    // source line, 0 when unknown
	Message  string
}

// Styling is decided per output by its ansi flag, never by terminal
// detection, so every style is force-enabled regardless of the process-wide
// color state.
func newStyle(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

var (
	styleTime   = newStyle(color.Italic, color.FgHiBlack)
	styleTarget = newStyle(color.FgWhite)
	styleLine   = newStyle(color.FgHiBlack)

	styleError = newStyle(color.FgHiRed, color.Bold)
	styleWarn  = newStyle(color.FgHiYellow, color.Bold)
	styleInfo  = newStyle(color.FgHiBlue, color.Bold)
	styleDebug = newStyle(color.FgWhite, color.Bold)
	styleTrace = newStyle(color.FgHiBlack, color.Bold)

	styleMessageLoud  = newStyle(color.FgHiWhite, color.Bold)
	styleMessageQuiet = newStyle(color.FgWhite)
)

func severityStyle(s Severity) *color.Color {
	switch s {
	case Error:
		return styleError
	case Warn:
		return styleWarn
	case Info:
		return styleInfo
	case Trace:
		return styleTrace
	default:
		return styleDebug
	}
}

// Messages at Info and above stand out; Debug and Trace stay muted.
func messageStyle(s Severity) *color.Color {
	switch s {
	case Error, Warn, Info:
		return styleMessageLoud
	default:
		return styleMessageQuiet
	}
}

// recordBufPool pools record buffers to reduce allocations during
// high-frequency logging.
var recordBufPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, defaultBufferSize)
		return &b
	},
}

func getRecordBuf() *[]byte {
	return recordBufPool.Get().(*[]byte)
}

// putRecordBuf returns a buffer to the pool, keeping the grown backing
// array unless it exceeded the pool cap.
func putRecordBuf(bp *[]byte, used []byte) {
	if cap(used) <= maxBufferSize {
		*bp = used[:0]
	}
	recordBufPool.Put(bp)
}

// FormatRecord renders a record as a single line:
//
//	<time> [<target>:<line> <Severity>] <message>\n
//
// The timestamp uses TimeFormat; the line number is omitted when zero.
// With ansi set, each region is wrapped in its own SGR escape sequence,
// and stripping those sequences yields exactly the plain form.
//
// FormatRecord is pure: it takes no locks, performs no I/O, and reads no
// mutable global state.
func FormatRecord(rec Record, ansi bool) string {
	bp := getRecordBuf()
	buf := AppendRecord((*bp)[:0], rec, ansi)
	s := string(buf)
	putRecordBuf(bp, buf)
	return s
}

// AppendRecord appends the formatted record to dst and returns the extended
// slice. It is the allocation-friendly form of FormatRecord.
func AppendRecord(dst []byte, rec Record, ansi bool) []byte {
	timestamp := rec.Time.Format(TimeFormat)

	if !ansi {
		dst = append(dst, timestamp...)
		dst = append(dst, ' ', '[')
		dst = append(dst, rec.Target...)
		if rec.Line > 0 {
			dst = append(dst, ':')
			dst = strconv.AppendInt(dst, int64(rec.Line), 10)
		}
		dst = append(dst, ' ')
		dst = append(dst, rec.Severity.String()...)
		dst = append(dst, ']', ' ')
		dst = append(dst, rec.Message...)
		return append(dst, '\n')
	}

	dst = append(dst, styleTime.Sprint(timestamp)...)
	dst = append(dst, ' ', '[')
	dst = append(dst, styleTarget.Sprint(rec.Target)...)
	if rec.Line > 0 {
		dst = append(dst, styleLine.Sprint(":"+strconv.Itoa(rec.Line))...)
	}
	dst = append(dst, ' ')
	dst = append(dst, severityStyle(rec.Severity).Sprint(rec.Severity.String())...)
	dst = append(dst, ']', ' ')
	dst = append(dst, messageStyle(rec.Severity).Sprint(rec.Message)...)
	return append(dst, '\n')
}
