// Package log provides structured logging for the dateutil service and CLI.
//
// Package: log
// Title: Structured Logging Framework
// Description: Structured logger with levels, JSON/text/console formats,
//              immutable context derivation and operation timers. Integrates
//              with the foundation error package so coded errors are logged
//              at a level matching their severity.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-12
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2026-10-12 v0.2.0: Dropped async buffering and logfmt, timers report operation outcomes
//
// Usage:
//   import mdwlog "github.com/msto63/mdw-dateutil/foundation/core/log"
//
//   logger := mdwlog.New().
//     WithLevel(mdwlog.LevelInfo).
//     WithFormat(mdwlog.FormatJSON).
//     WithField("service", "dateutil").
//     WithRequestID("req-123")
//
//   logger.Info("operation served", mdwlog.Field("operation", "addMonths"))
//
//   timer := logger.StartTimer("endOfMonth")
//   // ... compute
//   timer.Stop()
package log
