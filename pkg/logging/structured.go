package logging

import (
	golog "github.com/fclairamb/go-log"
)

// StructuredLogger receives diagnostics as an event name followed by
// key-value pairs, usually a single map.
type StructuredLogger interface {
	golog.Logger

	Trace(event string, keyvals ...interface{})
}
