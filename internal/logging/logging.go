// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Options selects the level, format and destination of log output.
// File output rotates once MaxSizeMB is reached.
type Options struct {
	Level      string // debug|info|warn|error
	Format     string // text|json
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// New builds a logger writing to stderr, or to a rotating file when
// opts.File is set.
func New(opts Options) *slog.Logger {
	var w io.Writer = os.Stderr
	if strings.TrimSpace(opts.File) != "" {
		w = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   opts.Compress,
		}
	}
	return NewWithWriter(w, opts)
}

// NewWithWriter builds a logger writing to w.
func NewWithWriter(w io.Writer, opts Options) *slog.Logger {
	ho := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}
	var h slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		h = slog.NewJSONHandler(w, ho)
	} else {
		h = slog.NewTextHandler(w, ho)
	}
	return slog.New(h)
}

// Setup installs the logger built from opts as the slog default and routes
// the standard log package through it.
func Setup(opts Options) *slog.Logger {
	l := New(opts)
	slog.SetDefault(l)
	log.SetFlags(0)
	return l
}

// ParseLevel maps a level name to a slog.Level. Unknown names mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
