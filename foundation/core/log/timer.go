// File: timer.go
// Title: Operation Timer
// Description: Measures how long an operation takes and logs its outcome.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-12
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with checkpoints
// - 2026-10-12 v0.2.0: Reduced to Stop/StopWithError, failures log through LogError

package log

import (
	"time"

	mdwerror "github.com/msto63/mdw-dateutil/foundation/core/error"
)

// Timer measures the duration of a single operation
type Timer struct {
	logger    *Logger
	operation string
	startTime time.Time
	fields    Fields
	level     Level
	stopped   bool
}

// NewTimer creates a new timer for the given operation
func NewTimer(logger *Logger, operation string) *Timer {
	return &Timer{
		logger:    logger,
		operation: operation,
		startTime: time.Now(),
		fields:    make(Fields),
		level:     LevelDebug,
	}
}

// WithLevel sets the log level for the completion message
func (t *Timer) WithLevel(level Level) *Timer {
	t.level = level
	return t
}

// WithField adds a field to be logged when the timer completes
func (t *Timer) WithField(key string, value interface{}) *Timer {
	t.fields[key] = value
	return t
}

// Elapsed returns the elapsed time since the timer was started
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.startTime)
}

// Stop stops the timer and logs the elapsed time.
// A second call is a no-op and returns 0.
func (t *Timer) Stop() time.Duration {
	if t.stopped {
		return 0
	}
	t.stopped = true
	elapsed := t.Elapsed()

	if t.logger != nil {
		entryFields := t.fields.Merge(Fields{"operation": t.operation, "success": true})
		t.logger.logDuration(t.level, t.operation+" completed", nil, elapsed, entryFields)
	}
	return elapsed
}

// StopWithError stops the timer and logs err with the elapsed time.
// The level follows the error severity the same way LogError does.
func (t *Timer) StopWithError(err error) time.Duration {
	if t.stopped {
		return 0
	}
	t.stopped = true
	elapsed := t.Elapsed()

	if t.logger != nil {
		entryFields := t.fields.Merge(Fields{
			"operation":  t.operation,
			"success":    false,
			"error_code": mdwerror.GetCode(err).String(),
		})
		level := LevelError
		switch mdwerror.GetSeverity(err) {
		case mdwerror.SeverityLow:
			level = LevelInfo
		case mdwerror.SeverityMedium:
			level = LevelWarn
		}
		t.logger.logDuration(level, t.operation+" failed", err, elapsed, entryFields)
	}
	return elapsed
}

// IsRunning returns true if the timer is still running
func (t *Timer) IsRunning() bool {
	return !t.stopped
}

func (l *Logger) logDuration(level Level, message string, err error, d time.Duration, fields Fields) {
	l.mutex.RLock()
	if !level.ShouldLog(l.level) {
		l.mutex.RUnlock()
		return
	}
	entry := NewEntry(level, message)
	entry.Logger = l.name
	entry.RequestID = l.requestID
	entry.Error = err
	entry.Duration = d
	entry.Fields = l.contextFields.Merge(fields)
	formatter := l.formatter
	output := l.output
	writeMu := l.writeMu
	l.mutex.RUnlock()

	formatted, formatErr := formatter.Format(entry)
	if formatErr != nil {
		return
	}
	writeMu.Lock()
	_, _ = output.Write(formatted)
	writeMu.Unlock()
}
