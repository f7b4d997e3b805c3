// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used across dateutil for consistent
//              classification in logs, CLI output and gRPC status mapping.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-12
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-12 v0.2.0: Trimmed to generic, configuration and service codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeTimeout      Code = "TIMEOUT"

	// Configuration and environment
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeMissingConfig Code = "MISSING_CONFIG"
	CodeInvalidConfig Code = "INVALID_CONFIG"

	// Service and network
	CodeServiceUnavailable    Code = "SERVICE_UNAVAILABLE"
	CodeServiceInitialization Code = "SERVICE_INITIALIZATION"
	CodeNetworkError          Code = "NETWORK_ERROR"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput, CodeTimeout,
		CodeConfigError, CodeMissingConfig, CodeInvalidConfig,
		CodeServiceUnavailable, CodeServiceInitialization, CodeNetworkError:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return "configuration"
	case CodeServiceUnavailable, CodeServiceInitialization, CodeNetworkError:
		return "service"
	case CodeInvalidInput:
		return "validation"
	default:
		return "generic"
	}
}
