package logging

import (
	"encoding/json"
	"log"
	"os"

	golog "github.com/fclairamb/go-log"
)

type JSONLogger struct {
	verbose bool
	logger  *log.Logger
}

func NewJSONLogger(verbose bool) *JSONLogger {
	return &JSONLogger{
		verbose: verbose,
		logger:  log.New(os.Stderr, "", log.LstdFlags),
	}
}

func (l JSONLogger) log(level, event string, keyvals ...interface{}) {
	k, _ := json.Marshal(stringifyErrors(keyvals)) // Errors are ignored for compatibility with traditional logging APIs

	l.logger.Println(level, event, string(k))
}

// stringifyErrors replaces error values, which marshal to `{}`, with their messages
func stringifyErrors(keyvals []interface{}) []interface{} {
	out := make([]interface{}, len(keyvals))
	for i, kv := range keyvals {
		switch v := kv.(type) {
		case error:
			out[i] = v.Error()
		case map[string]interface{}:
			m := make(map[string]interface{}, len(v))
			for key, value := range v {
				if err, ok := value.(error); ok {
					m[key] = err.Error()

					continue
				}

				m[key] = value
			}

			out[i] = m
		default:
			out[i] = v
		}
	}

	return out
}

func (l JSONLogger) Trace(event string, keyvals ...interface{}) {
	if l.verbose {
		l.log("TRACE", event, keyvals...)
	}
}

func (l JSONLogger) Debug(event string, keyvals ...interface{}) {
	if l.verbose {
		l.log("DEBUG", event, keyvals...)
	}
}

func (l JSONLogger) Info(event string, keyvals ...interface{}) {
	l.log("INFO", event, keyvals...)
}

func (l JSONLogger) Warn(event string, keyvals ...interface{}) {
	l.log("WARN", event, keyvals...)
}

func (l JSONLogger) Error(event string, keyvals ...interface{}) {
	l.log("ERROR", event, keyvals...)
}

func (l JSONLogger) With(keyvals ...interface{}) golog.Logger {
	return l
}
