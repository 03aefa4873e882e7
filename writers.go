package redoxlog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/mitchellh/go-homedir"
)

// openLogFile opens path for appending, creating it and any missing parent
// directories. A leading ~ is expanded to the user's home directory.
func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand path %s: %w", path, err)
	}

	if dir := filepath.Dir(expanded); dir != "." {
		if err := os.MkdirAll(dir, DirPermissions); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.OpenFile(expanded, os.O_APPEND|os.O_CREATE|os.O_WRONLY, FilePermissions)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", expanded, err)
	}
	return file, nil
}

// stdoutWriter and stderrWriter wrap the process streams so that SGR escape
// sequences render on Windows consoles too. On other platforms they return
// the stream unchanged.
func stdoutWriter() io.Writer { return colorable.NewColorableStdout() }
func stderrWriter() io.Writer { return colorable.NewColorableStderr() }

type fdWriter interface {
	Fd() uintptr
}

// isTerminal reports whether w is backed by an interactive terminal.
func isTerminal(w io.Writer) bool {
	fw, ok := w.(fdWriter)
	if !ok {
		return false
	}
	fd := fw.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type flusher interface {
	Flush() error
}

type syncer interface {
	Sync() error
}

// flushWriter pushes buffered data to the underlying medium. Writers without
// a flush notion are left alone.
func flushWriter(w io.Writer) error {
	switch v := w.(type) {
	case flusher:
		return v.Flush()
	case syncer:
		return v.Sync()
	}
	return nil
}

// closeWriter closes w if it is closable. The process streams are never
// closed.
func closeWriter(w io.Writer) error {
	if w == os.Stdout || w == os.Stderr {
		return nil
	}
	if c, ok := w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
