package redoxlog

import (
	"io"
	"testing"
	"time"
)

// ============================================================================
// FORMATTING BENCHMARKS
// ============================================================================

func benchRecord() Record {
	return Record{
		Time:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Severity: Info,
		Target:   "app::net",
		Line:     42,
		Message:  "connection accepted from peer",
	}
}

func BenchmarkFormatRecord(b *testing.B) {
	rec := benchRecord()

	b.Run("Plain", func(b *testing.B) {
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = FormatRecord(rec, false)
		}
	})

	b.Run("Styled", func(b *testing.B) {
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = FormatRecord(rec, true)
		}
	})
}

func BenchmarkAppendRecord(b *testing.B) {
	rec := benchRecord()
	buf := make([]byte, 0, defaultBufferSize)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		buf = AppendRecord(buf[:0], rec, false)
	}
}

// ============================================================================
// DISPATCH BENCHMARKS
// ============================================================================

func discardOutput(b *testing.B, filter Severity) *Output {
	b.Helper()
	out, err := NewOutput(io.Discard).WithFilter(filter).Build()
	if err != nil {
		b.Fatalf("Build() returned error: %v", err)
	}
	return out
}

func BenchmarkDispatch(b *testing.B) {
	logger := New().AddOutput(discardOutput(b, Trace))
	rec := benchRecord()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		logger.Dispatch(rec)
	}
}

func BenchmarkDispatchFanOut(b *testing.B) {
	styled, err := NewOutput(io.Discard).WithFilter(Trace).WithANSI(true).Build()
	if err != nil {
		b.Fatalf("Build() returned error: %v", err)
	}
	logger := New().
		AddOutput(discardOutput(b, Trace)).
		AddOutput(discardOutput(b, Debug)).
		AddOutput(styled)
	rec := benchRecord()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		logger.Dispatch(rec)
	}
}

func BenchmarkDispatchFiltered(b *testing.B) {
	logger := New().AddOutput(discardOutput(b, Error))
	rec := benchRecord()
	rec.Severity = Debug

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		logger.Dispatch(rec)
	}
}

func BenchmarkConcurrentDispatch(b *testing.B) {
	logger := New().AddOutput(discardOutput(b, Trace))
	rec := benchRecord()

	b.ResetTimer()
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			logger.Dispatch(rec)
		}
	})
}

// ============================================================================
// ADMISSION BENCHMARKS
// ============================================================================

func BenchmarkAdmits(b *testing.B) {
	logger := New().
		AddOutput(discardOutput(b, Error)).
		AddOutput(discardOutput(b, Info)).
		AddOutput(discardOutput(b, Trace))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = logger.Admits(Debug)
	}
}
