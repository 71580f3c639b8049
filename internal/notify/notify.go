// Package notify delivers short user-facing messages.
package notify

import (
	"sync"

	"fileshare/internal/logging"
)

// Level classifies a notification
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Notification is one message shown to the user
type Notification struct {
	Level   Level
	Message string
}

// Sink receives notifications
type Sink interface {
	Notify(n Notification)
}

// Info is shorthand for an info notification
func Info(s Sink, msg string) { s.Notify(Notification{Level: LevelInfo, Message: msg}) }

// Success is shorthand for a success notification
func Success(s Sink, msg string) { s.Notify(Notification{Level: LevelSuccess, Message: msg}) }

// Error is shorthand for an error notification
func Error(s Sink, msg string) { s.Notify(Notification{Level: LevelError, Message: msg}) }

// LogSink writes notifications to the structured log
type LogSink struct {
	logger *logging.Logger
}

// NewLogSink creates a sink backed by logger
func NewLogSink(logger *logging.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Notify logs n at a level matching its severity
func (s *LogSink) Notify(n Notification) {
	switch n.Level {
	case LevelError:
		s.logger.Error().Str("notification", n.Level.String()).Msg(n.Message)
	default:
		s.logger.Info().Str("notification", n.Level.String()).Msg(n.Message)
	}
}

// MultiSink fans a notification out to several sinks in order
type MultiSink []Sink

// Notify delivers n to every sink
func (m MultiSink) Notify(n Notification) {
	for _, s := range m {
		if s != nil {
			s.Notify(n)
		}
	}
}

// Recorder keeps every notification it receives
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

// Notify records n
func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

// All returns a copy of the recorded notifications
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}

// Messages returns the recorded messages in order
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	msgs := make([]string, len(r.items))
	for i, n := range r.items {
		msgs[i] = n.Message
	}
	return msgs
}
