// Package logging builds the structured loggers used across bwlife.
//
// Every component takes a *slog.Logger and treats nil as "discard". The
// command-line tools build one logger here from the configured level and
// format and pass it down.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{Level: logging.LevelDebug})
//	logger.Info("sweep started", "workers", 8)
//
// # Levels
//
//   - Debug: per-trial and per-search detail
//   - Info: sweep progress and checkpoints
//   - Warn: abandoned trials and searches
//   - Error: failures that end a command
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// =============================================================================
// Log Levels
// =============================================================================

// Level represents log severity levels.
type Level int

const (
	// LevelDebug is for per-operation detail.
	LevelDebug Level = iota
	// LevelInfo is for normal progress messages.
	LevelInfo
	// LevelWarn is for abandoned work that does not stop the run.
	LevelWarn
	// LevelError is for failures.
	LevelError
)

// String returns "DEBUG", "INFO", "WARN", "ERROR", or "UNKNOWN".
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) toSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel accepts the level names case-insensitively.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("logging: unknown level %q", s)
}

// =============================================================================
// Configuration
// =============================================================================

// Config configures New. The zero value logs Info and above to stderr as
// text.
type Config struct {
	// Level sets the minimum level.
	Level Level

	// JSON switches to one JSON object per line.
	JSON bool

	// Writer receives output. Default: os.Stderr.
	Writer io.Writer

	// Service, when set, is attached to every entry.
	Service string
}

// =============================================================================
// Constructors
// =============================================================================

// New builds a logger from cfg.
func New(cfg Config) *slog.Logger {
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level.toSlogLevel()}
	var h slog.Handler
	if cfg.JSON {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	logger := slog.New(h)
	if cfg.Service != "" {
		logger = logger.With("service", cfg.Service)
	}
	return logger
}

// Default logs Info and above to stderr.
func Default() *slog.Logger {
	return New(Config{})
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// OrDiscard returns l, or a discarding logger if l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Discard()
	}
	return l
}
