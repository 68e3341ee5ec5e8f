// Package logger builds the process-wide slog logger.
package logger

import (
	"io"
	"log/slog"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/google/uuid"
)

type Config struct {
	Level  string
	Format string
}

// Logger pairs a slog.Logger with the level variable behind it so the level
// can change at runtime.
type Logger struct {
	*slog.Logger
	level *slog.LevelVar
	charm *charmlog.Logger
}

// New writes text, json or pretty (charmbracelet/log) output to w.
func New(cfg Config, w io.Writer) *Logger {
	level := &slog.LevelVar{}
	level.Set(ParseLevel(cfg.Level))

	l := &Logger{level: level}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	case "pretty":
		l.charm = charmlog.NewWithOptions(w, charmlog.Options{
			ReportTimestamp: true,
			Level:           charmLevel(level.Level()),
		})
		handler = l.charm
	default:
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	}

	l.Logger = slog.New(handler)
	return l
}

// SetLevel changes the minimum level of every logger derived from l.
func (l *Logger) SetLevel(raw string) {
	level := ParseLevel(raw)
	l.level.Set(level)
	if l.charm != nil {
		l.charm.SetLevel(charmLevel(level))
	}
}

func (l *Logger) Level() slog.Level {
	return l.level.Level()
}

// Request returns a logger tagged with a fresh time-ordered request id.
func (l *Logger) Request() (*slog.Logger, string) {
	requestID := uuid.Must(uuid.NewV7()).String()
	return l.With("requestId", requestID), requestID
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func charmLevel(level slog.Level) charmlog.Level {
	switch {
	case level <= slog.LevelDebug:
		return charmlog.DebugLevel
	case level <= slog.LevelInfo:
		return charmlog.InfoLevel
	case level <= slog.LevelWarn:
		return charmlog.WarnLevel
	default:
		return charmlog.ErrorLevel
	}
}
