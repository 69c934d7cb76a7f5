// Package alert is the opaque "show the user a message" sink. The
// session kit only ever pushes human-readable text into it; rendering,
// translation, and dismissal belong to the embedding application.
package alert

import (
	"sync"

	"github.com/rs/zerolog"
)

// Sink receives user-visible messages. Only genuine action failures go
// through it; silent state repairs never do.
type Sink interface {
	Warn(message string)
	Error(message string)
}

// NoOpSink discards every message.
type NoOpSink struct{}

func (NoOpSink) Warn(string)  {}
func (NoOpSink) Error(string) {}

// LogSink writes messages to a zerolog logger. Useful for headless
// wirings and the demo server.
type LogSink struct {
	Logger zerolog.Logger
}

func (s LogSink) Warn(message string)  { s.Logger.Warn().Msg(message) }
func (s LogSink) Error(message string) { s.Logger.Error().Msg(message) }

// CollectSink records messages for assertions in tests.
type CollectSink struct {
	lock     sync.Mutex
	warnings []string
	errors   []string
}

func (s *CollectSink) Warn(message string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.warnings = append(s.warnings, message)
}

func (s *CollectSink) Error(message string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.errors = append(s.errors, message)
}

func (s *CollectSink) Warnings() []string {
	s.lock.Lock()
	defer s.lock.Unlock()
	return append([]string(nil), s.warnings...)
}

func (s *CollectSink) Errors() []string {
	s.lock.Lock()
	defer s.lock.Unlock()
	return append([]string(nil), s.errors...)
}
