// Package logging provides structured logging for the CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog with the CLI's output conventions.
type Logger struct {
	zlog   zerolog.Logger
	format string
	output io.Writer
}

// New creates a logger writing to w. Format is "console" or "json"; level is a zerolog
// level name and falls back to info when it cannot be parsed.
func New(w io.Writer, format, level string) *Logger {
	l := &Logger{format: format}
	l.build(w)

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	l.zlog = l.zlog.Level(lvl)
	return l
}

// NewDefault creates an info level console logger on stderr.
func NewDefault() *Logger {
	return New(os.Stderr, "console", "info")
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zlog: zerolog.Nop(), format: "json", output: io.Discard}
}

func (l *Logger) build(w io.Writer) {
	l.output = w
	if l.format == "json" {
		l.zlog = zerolog.New(w).With().Timestamp().Logger()
		return
	}
	l.zlog = zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
	}).With().Timestamp().Logger()
}

// Info returns an info level event.
func (l *Logger) Info() *zerolog.Event {
	return l.zlog.Info()
}

// Error returns an error level event.
func (l *Logger) Error() *zerolog.Event {
	return l.zlog.Error()
}

// Debug returns a debug level event.
func (l *Logger) Debug() *zerolog.Event {
	return l.zlog.Debug()
}

// Warn returns a warn level event.
func (l *Logger) Warn() *zerolog.Event {
	return l.zlog.Warn()
}

// With returns a child logger carrying one extra string field.
func (l *Logger) With(key, value string) *Logger {
	return &Logger{
		zlog:   l.zlog.With().Str(key, value).Logger(),
		format: l.format,
		output: l.output,
	}
}

// SetOutput redirects the logger, keeping its level and format.
// Used to route log lines above active progress bars.
func (l *Logger) SetOutput(w io.Writer) {
	lvl := l.zlog.GetLevel()
	l.build(w)
	l.zlog = l.zlog.Level(lvl)
}

// Output returns the current output writer.
func (l *Logger) Output() io.Writer {
	return l.output
}

// Debugf logs a debug message with printf-style formatting.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.zlog.Debug().Msgf(format, args...)
}

// Infof logs an info message with printf-style formatting.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.zlog.Info().Msgf(format, args...)
}

// Warnf logs a warning message with printf-style formatting.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.zlog.Warn().Msgf(format, args...)
}

// Errorf logs an error message with printf-style formatting.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.zlog.Error().Msgf(format, args...)
}

// RetryLogger adapts the logger to retryablehttp.LeveledLogger.
// Retry chatter is demoted one level so only warnings and errors reach info output.
func (l *Logger) RetryLogger() *RetryLogger {
	return &RetryLogger{l: l}
}

// RetryLogger implements the retryablehttp.LeveledLogger interface
type RetryLogger struct {
	l *Logger
}

func (r *RetryLogger) Error(msg string, keysAndValues ...interface{}) {
	r.l.zlog.Error().Fields(kvFields(keysAndValues)).Msg(msg)
}

func (r *RetryLogger) Info(msg string, keysAndValues ...interface{}) {
	r.l.zlog.Debug().Fields(kvFields(keysAndValues)).Msg(msg)
}

func (r *RetryLogger) Debug(msg string, keysAndValues ...interface{}) {
	r.l.zlog.Trace().Fields(kvFields(keysAndValues)).Msg(msg)
}

func (r *RetryLogger) Warn(msg string, keysAndValues ...interface{}) {
	r.l.zlog.Warn().Fields(kvFields(keysAndValues)).Msg(msg)
}

func kvFields(kv []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields[fmt.Sprint(kv[i])] = fmt.Sprint(kv[i+1])
	}
	return fields
}
