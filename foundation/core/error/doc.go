// Package error provides structured error values for the dateutil module.
//
// Package: error
// Title: Structured Errors
// Description: Implements an error type carrying a code, a severity, the failing
//              operation and free-form details, while staying compatible with the
//              standard errors package (Unwrap, errors.Is, errors.As).
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-12
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2026-10-12 v0.2.0: Reduced to the codes used by dateutil, dropped localization keys
//
// Usage:
//
//	err := error.Wrap(datex.ErrInvalidInput, "AddYears").
//		WithCode(error.CodeInvalidInput).
//		WithOperation("datex.AddYears").
//		WithDetail("input", "202103aa")
//
//	if error.HasCode(err, error.CodeInvalidInput) {
//		// reject the request
//	}
package error
