// Package logging builds the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	// EnvLevel overrides the default level when no flag is given.
	EnvLevel = "LAUNCHBAR_LOG_LEVEL"

	DefaultMaxSizeMB = 10
	DefaultMaxFiles  = 3
)

// Format selects the record encoding.
type Format string

const (
	FormatAuto Format = "auto" // text on a terminal, JSON otherwise
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Options configures New. Zero values pick the defaults.
type Options struct {
	Level     string
	Format    Format
	File      string // also write to this size-rotated file
	MaxSizeMB int
	MaxFiles  int
	Stderr    io.Writer
}

// ParseLevel converts a level name. Unknown names are an error so a typo in a
// flag is not silently ignored.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (expected: debug, info, warn, error)", s)
	}
}

// New builds a logger. The returned closer releases the log file, if any, and
// is never nil.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	levelName := opts.Level
	if levelName == "" {
		levelName = os.Getenv(EnvLevel)
	}
	level, err := ParseLevel(levelName)
	if err != nil {
		return nil, nopCloser{}, err
	}

	out := opts.Stderr
	if out == nil {
		out = os.Stderr
	}
	format := opts.Format
	if format == "" || format == FormatAuto {
		format = FormatJSON
		if isTerminal(out) {
			format = FormatText
		}
	}

	var closer io.Closer = nopCloser{}
	w := out
	if opts.File != "" {
		rf, err := OpenRotatingFile(opts.File, opts.MaxSizeMB, opts.MaxFiles)
		if err != nil {
			return nil, nopCloser{}, err
		}
		w = io.MultiWriter(out, rf)
		closer = rf
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	switch format {
	case FormatText:
		h = slog.NewTextHandler(w, handlerOpts)
	case FormatJSON:
		h = slog.NewJSONHandler(w, handlerOpts)
	default:
		closer.Close()
		return nil, nopCloser{}, fmt.Errorf("unknown log format %q (expected: auto, text, json)", format)
	}
	return slog.New(h), closer, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
