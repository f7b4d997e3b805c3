// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels used to rank errors for logging and alerting.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-12
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation
// - 2026-10-12 v0.2.0: Severity mapping follows the reduced code set

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates a minor error such as invalid user input
	SeverityLow Severity = iota

	// SeverityMedium indicates an error that affects functionality but has workarounds
	SeverityMedium

	// SeverityHigh indicates a serious error such as a failed service start
	SeverityHigh

	// SeverityCritical indicates an error that makes the system unusable
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert returns true if this severity level should trigger alerts
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeServiceUnavailable:
		return SeverityCritical
	case CodeServiceInitialization, CodeInternal:
		return SeverityHigh
	case CodeInvalidInput, CodeNotFound, CodeInvalidConfig, CodeMissingConfig:
		return SeverityLow
	default:
		return SeverityMedium
	}
}
