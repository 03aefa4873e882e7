package redoxlog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseConfig(t *testing.T) {
	t.Run("full document", func(t *testing.T) {
		const doc = `
min_level: warn
max_level: debug
outputs:
  - stream: stderr
    level: info
    ansi: auto
  - path: /var/log/app.log
    level: trace
    flush: false
  - stream: stdout
    ansi: true
  - stream: stdout
    ansi: "false"
`
		cfg, err := ParseConfig(strings.NewReader(doc))
		if err != nil {
			t.Fatalf("ParseConfig() returned error: %v", err)
		}

		if cfg.MinLevel != "warn" || cfg.MaxLevel != "debug" {
			t.Errorf("levels = (%q, %q), want (warn, debug)", cfg.MinLevel, cfg.MaxLevel)
		}
		if len(cfg.Outputs) != 4 {
			t.Fatalf("len(Outputs) = %d, want 4", len(cfg.Outputs))
		}

		first := cfg.Outputs[0]
		if first.Stream != "stderr" || first.Level != "info" || first.ANSI != ANSIAuto {
			t.Errorf("outputs[0] = %+v, want stderr/info/auto", first)
		}
		if first.Flush != nil {
			t.Errorf("outputs[0].Flush = %v, want nil (unset)", *first.Flush)
		}

		second := cfg.Outputs[1]
		if second.Path != "/var/log/app.log" || second.Level != "trace" {
			t.Errorf("outputs[1] = %+v, want path/trace", second)
		}
		if second.Flush == nil || *second.Flush {
			t.Error("outputs[1].Flush: want explicit false")
		}

		// YAML booleans and their string spellings both work for ansi.
		if cfg.Outputs[2].ANSI != ANSIOn {
			t.Errorf("outputs[2].ANSI = %q, want %q", cfg.Outputs[2].ANSI, ANSIOn)
		}
		if cfg.Outputs[3].ANSI != ANSIOff {
			t.Errorf("outputs[3].ANSI = %q, want %q", cfg.Outputs[3].ANSI, ANSIOff)
		}
	})

	t.Run("unknown keys are rejected", func(t *testing.T) {
		const doc = `
outputs:
  - stream: stderr
    colour: always
`
		_, err := ParseConfig(strings.NewReader(doc))
		if !errors.Is(err, ErrConfig) {
			t.Errorf("ParseConfig() error = %v, want ErrConfig", err)
		}
	})

	t.Run("malformed document", func(t *testing.T) {
		_, err := ParseConfig(strings.NewReader("outputs: ["))
		if !errors.Is(err, ErrConfig) {
			t.Errorf("ParseConfig() error = %v, want ErrConfig", err)
		}
	})

	t.Run("empty document", func(t *testing.T) {
		for _, doc := range []string{"", "# just a comment\n"} {
			cfg, err := ParseConfig(strings.NewReader(doc))
			if err != nil {
				t.Fatalf("ParseConfig(%q) returned error: %v", doc, err)
			}
			if len(cfg.Outputs) != 0 || cfg.MinLevel != "" || cfg.MaxLevel != "" {
				t.Errorf("ParseConfig(%q) = %+v, want empty config", doc, cfg)
			}
		}
	})
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{Outputs: []OutputConfig{{Stream: "stderr", Level: "debug"}}}
	}
	if err := valid().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"both stream and path", func(c *Config) { c.Outputs[0].Path = "/tmp/x.log" }},
		{"neither stream nor path", func(c *Config) { c.Outputs[0].Stream = "" }},
		{"unknown stream", func(c *Config) { c.Outputs[0].Stream = "syslog" }},
		{"bad output level", func(c *Config) { c.Outputs[0].Level = "loud" }},
		{"bad min level", func(c *Config) { c.MinLevel = "quietish" }},
		{"bad max level", func(c *Config) { c.MaxLevel = "everything" }},
		{"bad ansi mode", func(c *Config) { c.Outputs[0].ANSI = "sometimes" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}

	t.Run("nil config", func(t *testing.T) {
		var cfg *Config
		if err := cfg.Validate(); !errors.Is(err, ErrConfig) {
			t.Errorf("Validate() error = %v, want ErrConfig", err)
		}
	})
}

func TestConfigBuild(t *testing.T) {
	t.Run("matches the equivalent builder chain", func(t *testing.T) {
		dir := t.TempDir()
		pathA := filepath.Join(dir, "a.log")
		pathB := filepath.Join(dir, "b.log")

		flushOff := false
		cfg := &Config{
			MinLevel: "warn",
			Outputs: []OutputConfig{
				{Path: pathA, Level: "error"},
				{Path: pathB, Level: "trace", Flush: &flushOff},
			},
		}

		logger, err := cfg.Build()
		if err != nil {
			t.Fatalf("Build() returned error: %v", err)
		}

		if got := logger.Outputs(); got != 2 {
			t.Fatalf("Outputs() = %d, want 2", got)
		}
		// min_level raises the error filter, the trace filter stands.
		if got := logger.outputs[0].Filter(); got != Warn {
			t.Errorf("outputs[0] filter = %v, want Warn", got)
		}
		if got := logger.outputs[1].Filter(); got != Trace {
			t.Errorf("outputs[1] filter = %v, want Trace", got)
		}
		if logger.outputs[1].flushOnWrite {
			t.Error("outputs[1] has flush enabled despite flush: false")
		}

		floor, ceiling := logger.AdmissionRange()
		if floor != Warn || ceiling != Trace {
			t.Errorf("AdmissionRange() = (%v, %v), want (Warn, Trace)", floor, ceiling)
		}

		logger.Dispatch(record(Error, "configured"))
		if err := logger.Close(); err != nil {
			t.Fatalf("Close() returned error: %v", err)
		}

		for _, path := range []string{pathA, pathB} {
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading %s: %v", path, err)
			}
			if !strings.Contains(string(data), "configured") {
				t.Errorf("%s = %q, want the dispatched record", path, data)
			}
		}
	})

	t.Run("applies ansi modes", func(t *testing.T) {
		cfg := &Config{
			Outputs: []OutputConfig{
				{Stream: "stdout", ANSI: ANSIOn},
				{Stream: "stdout", ANSI: ANSIOff},
				{Stream: "stdout"},
			},
		}

		logger, err := cfg.Build()
		if err != nil {
			t.Fatalf("Build() returned error: %v", err)
		}

		if !logger.outputs[0].ansi {
			t.Error("outputs[0]: ansi true not applied")
		}
		if logger.outputs[1].ansi || logger.outputs[2].ansi {
			t.Error("ansi enabled where it should default off")
		}
	})

	t.Run("rejects invalid configuration", func(t *testing.T) {
		cfg := &Config{Outputs: []OutputConfig{{Stream: "syslog"}}}
		if _, err := cfg.Build(); !errors.Is(err, ErrConfig) {
			t.Errorf("Build() error = %v, want ErrConfig", err)
		}
	})

	t.Run("reports the failing output", func(t *testing.T) {
		dir := t.TempDir()
		blocker := filepath.Join(dir, "not-a-dir")
		if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}

		cfg := &Config{
			Outputs: []OutputConfig{
				{Path: filepath.Join(dir, "fine.log")},
				{Path: filepath.Join(blocker, "sub", "app.log")},
			},
		}

		_, err := cfg.Build()
		if err == nil {
			t.Fatal("Build() = nil, want error for the unopenable path")
		}
		if !strings.Contains(err.Error(), "output 1") {
			t.Errorf("Build() error = %v, want it to name output 1", err)
		}
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("reads a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "log.yaml")
		const doc = "max_level: info\noutputs:\n  - stream: stderr\n"
		if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() returned error: %v", err)
		}
		if cfg.MaxLevel != "info" || len(cfg.Outputs) != 1 {
			t.Errorf("LoadConfig() = %+v, want max_level info and one output", cfg)
		}
	})

	t.Run("empty path", func(t *testing.T) {
		if _, err := LoadConfig(""); !errors.Is(err, ErrEmptyPath) {
			t.Errorf("LoadConfig(\"\") error = %v, want ErrEmptyPath", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
			t.Error("LoadConfig() = nil, want error")
		}
	})
}
