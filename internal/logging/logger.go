// Package logging provides leveled, structured console logging for tutormesh.
//
// Get a named logger for your component and log with printf-style messages
// or structured fields:
//
//	logger := logging.GetLogger("api")
//	logger.Info("listening on port %d", 8080)
//	logger.InfoWithFields("request processed",
//	    logging.Field("request_id", id),
//	    logging.Field("agent", name),
//	)
//
// WithField and WithFields return new Logger instances with persistent
// fields, so a request-scoped logger can be passed down a call chain.
// Logger instances are immutable and safe for concurrent use.
//
// The minimum level is set once at startup via Initialize. Per-package
// overrides are supported ("agent=debug", "api=warn"); packages without an
// override use the default level.
package logging

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents the logging severity.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	FATAL
)

// LogField is a single structured logging key/value pair.
type LogField struct {
	Key   string
	Value interface{}
}

// Field creates a structured logging field.
func Field(key string, value interface{}) LogField {
	return LogField{Key: key, Value: value}
}

// Logger writes leveled log lines for a named component.
type Logger struct {
	level  Level
	name   string
	fields map[string]interface{}
}

var (
	globalLevel   = INFO
	packageLevels = map[string]Level{}
	levelMu       sync.RWMutex
	// exitFunc is called by Fatal, overridable in tests.
	exitFunc = os.Exit
)

// Initialize sets the default log level and optional per-package overrides.
// Package overrides map package names to level strings, e.g. {"agent": "debug"}.
func Initialize(levelStr string, perPackage ...map[string]string) error {
	level, err := ParseLevel(levelStr)
	if err != nil {
		return err
	}

	levelMu.Lock()
	defer levelMu.Unlock()
	globalLevel = level
	packageLevels = map[string]Level{}

	if len(perPackage) > 0 {
		for pkg, lvl := range perPackage[0] {
			parsed, err := ParseLevel(lvl)
			if err != nil {
				return fmt.Errorf("invalid log level for package %q: %w", pkg, err)
			}
			packageLevels[pkg] = parsed
		}
	}
	return nil
}

// ParseLevel converts a level string to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DEBUG, nil
	case "info":
		return INFO, nil
	case "warn":
		return WARN, nil
	case "error":
		return ERROR, nil
	case "fatal":
		return FATAL, nil
	default:
		return INFO, fmt.Errorf("invalid log level: %s (must be debug, info, warn, error, or fatal)", s)
	}
}

// GetLogger returns a logger with the specified component name.
// Without a prior Initialize call the default level is INFO.
func GetLogger(name string) *Logger {
	levelMu.RLock()
	level := globalLevel
	if pkgLevel, ok := packageLevels[name]; ok {
		level = pkgLevel
	}
	levelMu.RUnlock()
	return &Logger{
		level:  level,
		name:   name,
		fields: map[string]interface{}{},
	}
}

// WithField returns a new logger with an additional persistent field.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return l.WithFields(Field(key, value))
}

// WithFields returns a new logger with additional persistent fields.
func (l *Logger) WithFields(fields ...LogField) *Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for _, f := range fields {
		merged[f.Key] = f.Value
	}
	return &Logger{level: l.level, name: l.name, fields: merged}
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...interface{}) { l.logf(DEBUG, msg, args...) }

// Info logs an info message.
func (l *Logger) Info(msg string, args ...interface{}) { l.logf(INFO, msg, args...) }

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...interface{}) { l.logf(WARN, msg, args...) }

// Error logs an error message.
func (l *Logger) Error(msg string, args ...interface{}) { l.logf(ERROR, msg, args...) }

// Fatal logs a fatal message and exits with code 1.
func (l *Logger) Fatal(msg string, args ...interface{}) {
	l.logf(FATAL, msg, args...)
	exitFunc(1)
}

// ErrorWithErr logs an error message with the error appended.
func (l *Logger) ErrorWithErr(msg string, err error) {
	l.logf(ERROR, "%s - %v", msg, err)
}

// DebugWithFields logs a debug message with structured fields.
func (l *Logger) DebugWithFields(msg string, fields ...LogField) { l.logFields(DEBUG, msg, fields) }

// InfoWithFields logs an info message with structured fields.
func (l *Logger) InfoWithFields(msg string, fields ...LogField) { l.logFields(INFO, msg, fields) }

// WarnWithFields logs a warning message with structured fields.
func (l *Logger) WarnWithFields(msg string, fields ...LogField) { l.logFields(WARN, msg, fields) }

// ErrorWithFields logs an error message with structured fields.
func (l *Logger) ErrorWithFields(msg string, fields ...LogField) { l.logFields(ERROR, msg, fields) }

func (l *Logger) logf(level Level, msg string, args ...interface{}) {
	if level < l.level {
		return
	}
	l.write(level, fmt.Sprintf(msg, args...), l.fields)
}

func (l *Logger) logFields(level Level, msg string, fields []LogField) {
	if level < l.level {
		return
	}
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for _, f := range fields {
		merged[f.Key] = f.Value
	}
	l.write(level, msg, merged)
}

var levelNames = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
	FATAL: "FATAL",
}

// write formats and emits a log line. DEBUG/INFO/WARN go to stdout,
// ERROR/FATAL to stderr.
func (l *Logger) write(level Level, msg string, fields map[string]interface{}) {
	line := fmt.Sprintf("[%s] [%s] %s: %s", timestamp(), levelNames[level], l.name, msg)
	if len(fields) > 0 {
		line += " |"
		for k, v := range fields {
			line += fmt.Sprintf(" %s=%v", k, v)
		}
	}
	if level >= ERROR {
		fmt.Fprintf(os.Stderr, "%s\n", line)
	} else {
		log.Println(line)
	}
}

// timestamp returns an RFC3339 timestamp, overridable via LOG_TIMESTAMP for
// deterministic test output.
func timestamp() string {
	if override := os.Getenv("LOG_TIMESTAMP"); override != "" {
		return override
	}
	return time.Now().Format(time.RFC3339)
}
