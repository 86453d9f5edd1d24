// Package logging builds the hclog logger Sanctuary writes to its log file.
// The terminal belongs to the TUI, so nothing is logged to stdout or stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	hclog "github.com/hashicorp/go-hclog"
)

// Options controls logger construction.
type Options struct {
	Path  string
	Level string
	JSON  bool
}

// New opens (or creates) the log file in append mode and returns a logger
// writing to it. The returned closer releases the file.
func New(opts Options) (hclog.Logger, io.Closer, error) {
	path := strings.TrimSpace(opts.Path)
	if path == "" {
		return nil, nil, fmt.Errorf("log path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return NewWriter(file, opts.Level, opts.JSON), file, nil
}

// NewWriter returns a logger writing to w.
func NewWriter(w io.Writer, level string, json bool) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:       "sanctuary",
		Level:      ParseLevel(level),
		Output:     w,
		JSONFormat: json,
	})
}

// ParseLevel maps a config level string to an hclog level, defaulting to info.
func ParseLevel(level string) hclog.Level {
	parsed := hclog.LevelFromString(strings.TrimSpace(level))
	if parsed == hclog.NoLevel {
		return hclog.Info
	}
	return parsed
}

// Discard returns a logger that drops everything.
func Discard() hclog.Logger {
	return hclog.NewNullLogger()
}
