package testutil

import (
	"fmt"

	golog "github.com/fclairamb/go-log"
)

type Event struct {
	Level   string
	Event   string
	Keyvals []interface{}
}

// Logger records every event it receives.
type Logger struct {
	Events []Event
}

func (l *Logger) record(level, event string, keyvals ...interface{}) {
	l.Events = append(l.Events, Event{level, event, keyvals})
}

func (l *Logger) Trace(event string, keyvals ...interface{}) { l.record("TRACE", event, keyvals...) }
func (l *Logger) Debug(event string, keyvals ...interface{}) { l.record("DEBUG", event, keyvals...) }
func (l *Logger) Info(event string, keyvals ...interface{})  { l.record("INFO", event, keyvals...) }
func (l *Logger) Warn(event string, keyvals ...interface{})  { l.record("WARN", event, keyvals...) }
func (l *Logger) Error(event string, keyvals ...interface{}) { l.record("ERROR", event, keyvals...) }

func (l *Logger) With(keyvals ...interface{}) golog.Logger {
	return l
}

// Warnings returns the warnings as "event keyvals" strings.
func (l *Logger) Warnings() []string {
	out := []string{}
	for _, e := range l.Events {
		if e.Level == "WARN" {
			out = append(out, fmt.Sprintf("%v %v", e.Event, e.Keyvals))
		}
	}

	return out
}
