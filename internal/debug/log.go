// Package debug provides a runtime-toggled trace logger for the credentials
// layer.
//
// Tracing covers credential construction and security-connector creation and
// is disabled unless the TLSCREDS_TRACE environment variable is set to a
// non-empty value. The logger never records PEM payloads, only their presence.
package debug

import (
	"fmt"
	"log"
	"os"
	"sync"
)

// Logger is the trace logging interface used by the credentials layer.
//
// Example usage:
//
//	logger := debug.GetLogger()
//	logger.Tracef("channel TLS credentials created (roots=%t pair=%t)", hasRoots, hasPair)
type Logger interface {
	// Tracef logs a formatted trace message.
	Tracef(format string, args ...any)
	// Trace logs trace arguments.
	Trace(args ...any)
}

// nopLogger does nothing (used when tracing is disabled).
type nopLogger struct{}

func (nopLogger) Tracef(string, ...any) {}
func (nopLogger) Trace(...any)          {}

// stdLogger logs to the standard logger with a [TRACE] prefix.
type stdLogger struct{}

func (stdLogger) Tracef(format string, args ...any) {
	log.Printf("[TRACE] "+format, args...)
}

func (stdLogger) Trace(args ...any) {
	log.Printf("[TRACE] %v", fmt.Sprint(args...))
}

var (
	// l is the private global trace logger (use GetLogger() to access)
	l    Logger = nopLogger{}
	once sync.Once
)

// GetLogger returns the configured trace logger.
// Always use this function to access the logger instead of storing a reference.
// The first call decides whether tracing is active, based on TLSCREDS_TRACE.
func GetLogger() Logger {
	once.Do(func() {
		if os.Getenv("TLSCREDS_TRACE") != "" {
			l = stdLogger{}
			l.Trace("credential API tracing enabled")
		}
	})
	return l
}
