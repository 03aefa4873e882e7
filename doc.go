// Package redoxlog is a process-local logging sink that fans records out to
// multiple destinations.
//
// Each output pairs an exclusively locked byte stream with its own severity
// filter, ANSI styling flag, and flush policy. A Logger aggregates outputs,
// answers admission queries in O(1) from bounds derived from the filters,
// and can be installed exactly once as the process-wide sink behind
// log/slog.
//
// # Features
//
//   - Fan-out: one record, many endpoints, each with its own filter
//   - Per-output ANSI styling with byte-exact parity to the plain form
//   - O(1) admission checks against a derived ceiling, never a scan
//   - Global severity clamps that rewrite output filters in place
//   - One-shot installation as the slog default handler
//   - Flush policies per output, plus FlushAll
//   - YAML configuration mirroring the builder surface
//   - Write failures and endpoint panics are contained: logging can
//     never crash the application
//
// # Quick Start
//
//	package main
//
//	import (
//	    "log/slog"
//
//	    redoxlog "github.com/planet-s/redox-log"
//	)
//
//	func main() {
//	    stderr, _ := redoxlog.Stderr().AutoANSI().Build()
//	    file, _ := redoxlog.File("~/logs/app.log")
//	    all, _ := file.WithFilter(redoxlog.Trace).Build()
//
//	    if err := redoxlog.New().
//	        AddOutput(stderr).
//	        AddOutput(all).
//	        Install(); err != nil {
//	        panic(err)
//	    }
//
//	    slog.Info("listening", "addr", ":8080")
//	}
//
// # Severities
//
// Six values ordered by verbosity, the most severe first: Off, Error, Warn,
// Info, Debug, Trace. An output admits a record when the record's severity
// does not exceed the output's filter; Off as a filter silences the output.
//
// # Installation
//
// Install wires the logger as the slog default and is permanent: it
// succeeds at most once per process, and the installed logger cannot be
// closed or reconfigured. Loggers that are never installed can be used
// scoped through slog.New and closed when done.
//
// # Configuration
//
//	cfg, err := redoxlog.LoadConfig("~/.config/app/logging.yaml")
//	if err != nil {
//	    ...
//	}
//	logger, err := cfg.Build()
//
// # Performance
//
// Formatting is pure and pooled: a dispatch renders the record at most
// twice (plain and styled) no matter how many outputs it reaches, and
// admission rejections cost one atomic load.
package redoxlog
