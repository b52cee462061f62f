package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type implLogger struct {
	zl zerolog.Logger
}

// New creates a Logger writing to stdout.
// format "console" gives human-readable output, anything else is JSON.
func New(level, format string) Logger {
	var out io.Writer = os.Stdout
	if strings.ToLower(format) == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return NewWithWriter(level, out)
}

// NewWithWriter creates a JSON Logger writing to w
func NewWithWriter(level string, w io.Writer) Logger {
	return &implLogger{
		zl: zerolog.New(w).Level(parseLevel(level)).With().Timestamp().Logger(),
	}
}

func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.InfoLevel // default to info
	}
	return lvl
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.zl.Debug().Msgf(msg, args...)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.zl.Info().Msgf(msg, args...)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.zl.Warn().Msgf(msg, args...)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.zl.Error().Msgf(msg, args...)
}

func (l *implLogger) With(key string, value interface{}) Logger {
	return &implLogger{zl: l.zl.With().Interface(key, value).Logger()}
}

// Preview returns at most n characters of s, for logging large payloads
func Preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
