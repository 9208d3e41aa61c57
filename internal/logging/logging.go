// Package logging builds the diagnostic logger shared by commands.
package logging

import (
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/amonks/taskgraph/internal/validation"
)

var (
	// ErrUnknownLevel is returned by ParseLevel.
	ErrUnknownLevel = errors.New("unknown log level")

	// ErrUnknownFormat is returned by ParseFormatter.
	ErrUnknownFormat = errors.New("unknown log format")
)

var (
	levelNames  = []string{"debug", "info", "warn", "error"}
	formatNames = []string{"text", "json", "logfmt"}
)

// DefaultLevel keeps normal command output free of diagnostics.
const DefaultLevel = log.WarnLevel

// Options configures New.
type Options struct {
	// Level is one of debug, info, warn, error. Empty selects DefaultLevel.
	Level string

	// Format is one of text, json, logfmt. Empty selects text.
	Format string

	// Prefix is printed before every message.
	Prefix string
}

// New returns a logger writing to w.
func New(w io.Writer, opts Options) (*log.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	formatter, err := ParseFormatter(opts.Format)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: false,
		Prefix:          opts.Prefix,
	}), nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// ParseLevel parses a level name.
func ParseLevel(level string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "":
		return DefaultLevel, nil
	case "debug":
		return log.DebugLevel, nil
	case "info":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return 0, validation.FormatInvalidValueError(ErrUnknownLevel, level, levelNames)
	}
}

// ParseFormatter parses a formatter name.
func ParseFormatter(format string) (log.Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	default:
		return 0, validation.FormatInvalidValueError(ErrUnknownFormat, format, formatNames)
	}
}
