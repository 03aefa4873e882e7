package redoxlog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// Config is the YAML description of a logger. It mirrors the builder
// surface: one entry per output plus the optional override clamps.
//
//	min_level: warn
//	max_level: debug
//	outputs:
//	  - stream: stderr
//	    level: info
//	    ansi: auto
//	  - path: ~/logs/app.log
//	    level: trace
//	    flush: false
type Config struct {
	// MinLevel and MaxLevel, when set, are applied as OverrideMin and
	// OverrideMax on the built logger.
	MinLevel string `yaml:"min_level,omitempty"`
	MaxLevel string `yaml:"max_level,omitempty"`

	Outputs []OutputConfig `yaml:"outputs"`
}

// OutputConfig describes a single output. Exactly one of Stream and Path
// must be set. Omitted knobs keep the builder defaults: level info, no
// ANSI styling, flush after every write.
type OutputConfig struct {
	Stream string   `yaml:"stream,omitempty"` // "stdout" or "stderr"
	Path   string   `yaml:"path,omitempty"`   // log file path, ~ is expanded
	Level  string   `yaml:"level,omitempty"`
	ANSI   ANSIMode `yaml:"ansi,omitempty"`
	Flush  *bool    `yaml:"flush,omitempty"`
}

// ANSIMode selects ANSI styling for a configured output: on, off, or
// decided by terminal detection at build time.
type ANSIMode string

const (
	ANSIOff  ANSIMode = "false"
	ANSIOn   ANSIMode = "true"
	ANSIAuto ANSIMode = "auto"
)

// UnmarshalYAML accepts plain YAML booleans as well as the strings "true",
// "false" and "auto".
func (m *ANSIMode) UnmarshalYAML(value *yaml.Node) error {
	var b bool
	if err := value.Decode(&b); err == nil {
		if b {
			*m = ANSIOn
		} else {
			*m = ANSIOff
		}
		return nil
	}

	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	*m = ANSIMode(strings.ToLower(strings.TrimSpace(s)))
	return nil
}

// ParseConfig decodes a YAML configuration. Unknown keys are rejected. An
// empty document yields an empty configuration.
func ParseConfig(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c Config
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return &c, nil
}

// LoadConfig reads and decodes the YAML configuration file at path. A
// leading ~ is expanded.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand path %s: %w", path, err)
	}

	f, err := os.Open(expanded)
	if err != nil {
		return nil, fmt.Errorf("failed to open config %s: %w", expanded, err)
	}
	defer f.Close()

	return ParseConfig(f)
}

// Validate checks the configuration's structure: stream/path exclusivity,
// stream names, severity names, and ANSI modes. It does not touch the
// filesystem.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil config", ErrConfig)
	}

	if c.MinLevel != "" {
		if _, err := ParseSeverity(c.MinLevel); err != nil {
			return fmt.Errorf("min_level: %w", err)
		}
	}
	if c.MaxLevel != "" {
		if _, err := ParseSeverity(c.MaxLevel); err != nil {
			return fmt.Errorf("max_level: %w", err)
		}
	}

	for i, oc := range c.Outputs {
		switch {
		case oc.Stream != "" && oc.Path != "":
			return fmt.Errorf("%w: output %d sets both stream and path", ErrConfig, i)
		case oc.Stream == "" && oc.Path == "":
			return fmt.Errorf("%w: output %d sets neither stream nor path", ErrConfig, i)
		}

		if oc.Stream != "" && oc.Stream != "stdout" && oc.Stream != "stderr" {
			return fmt.Errorf("%w: output %d: unknown stream %q", ErrConfig, i, oc.Stream)
		}

		if oc.Level != "" {
			if _, err := ParseSeverity(oc.Level); err != nil {
				return fmt.Errorf("output %d: %w", i, err)
			}
		}

		switch oc.ANSI {
		case "", ANSIOn, ANSIOff, ANSIAuto:
		default:
			return fmt.Errorf("%w: output %d: ansi must be true, false or auto, got %q", ErrConfig, i, oc.ANSI)
		}
	}

	return nil
}

// Build validates the configuration and constructs the logger it describes.
// Files are opened at this point; on failure any already opened endpoint is
// closed again.
func (c *Config) Build() (*Logger, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	logger := New()
	if c.MaxLevel != "" {
		s, _ := ParseSeverity(c.MaxLevel)
		logger.OverrideMax(s)
	}
	if c.MinLevel != "" {
		s, _ := ParseSeverity(c.MinLevel)
		logger.OverrideMin(s)
	}

	for i, oc := range c.Outputs {
		b, err := oc.builder()
		if err != nil {
			_ = logger.Close()
			return nil, fmt.Errorf("output %d: %w", i, err)
		}

		out, err := b.Build()
		if err != nil {
			_ = logger.Close()
			return nil, fmt.Errorf("output %d: %w", i, err)
		}
		logger.AddOutput(out)
	}

	return logger, nil
}

// builder translates one output entry into a staged OutputBuilder.
// Validation has already vetted the names, so parse failures here only
// mirror earlier checks.
func (oc OutputConfig) builder() (*OutputBuilder, error) {
	var b *OutputBuilder
	switch {
	case oc.Stream == "stdout":
		b = Stdout()
	case oc.Stream == "stderr":
		b = Stderr()
	default:
		fb, err := File(oc.Path)
		if err != nil {
			return nil, err
		}
		b = fb
	}

	if oc.Level != "" {
		s, err := ParseSeverity(oc.Level)
		if err != nil {
			return nil, err
		}
		b.WithFilter(s)
	}

	switch oc.ANSI {
	case ANSIOn:
		b.WithANSI(true)
	case ANSIAuto:
		b.AutoANSI()
	}

	if oc.Flush != nil {
		b.WithFlushOnWrite(*oc.Flush)
	}

	return b, nil
}
