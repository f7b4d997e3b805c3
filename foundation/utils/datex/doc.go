// Package datex implements calendar arithmetic and UTC/JST conversion over
// canonical textual dates for the mDW dateutil service.
//
// Package: datex
// Title: Canonical Date Utilities
// Description: Pure functions over the canonical date representations
//              YYYYMMDD, YYYYMMDD HHmmss and YYYYMMDD HHmmss.SSS, and over Unix
//              epoch values. Inputs are validated strictly, arithmetic clamps to
//              the end of month, and timezone conversion uses the fixed UTC+9
//              offset of Japan Standard Time.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-12
//
// Change History:
// - 2025-01-25 v0.1.0: Initial time utilities (parsing, formatting, business days)
// - 2026-10-12 v0.2.0: Reworked around canonical date strings and the invalid-input sentinel
//
// # Failure Contract
//
// Every function returns an error instead of a partial result when an input is
// not in the expected canonical form or does not denote a real calendar value.
// The error always matches ErrInvalidInput:
//
//	d, err := datex.AddMonths("20210131", 1)    // "20210228", nil
//	_, err = datex.EndOfMonth("202013")
//	errors.Is(err, datex.ErrInvalidInput)       // true
//
// The returned errors are *mdwerror.Error values carrying CodeInvalidInput, the
// operation name and the offending input, so callers can log them with full
// context and still test against the sentinel.
//
// # Strict and Lenient Parsing
//
// All operations except Format parse strictly: the input must match the exact
// layout (digit positions, single space separator) and denote a valid date.
// Format accepts free-form input through ParseLenient, which understands the
// ISO-like forms 2021-03-04, 2021/3/4, 20210304 and 2021-03-04 10:20:30.400,
// RFC 3339 and RFC 1123 timestamps, and textual dates like "March 4, 2021".
// Full-width digits are accepted as well.
//
// # Month-End Clamping
//
// AddYears and AddMonths keep the day of month when possible and otherwise
// clamp to the last day of the target month:
//
//	AddYears("20200229", 1)   // "20210228"
//	AddMonths("20210331", 1)  // "20210430"
//
// CalcAge follows the same rule, so a person born on 29 February completes a
// year on 28 February of a common year.
//
// # Time Zones
//
// UTC and JST are the only zones. JST is a fixed offset of +09:00 without
// daylight saving. The package holds no mutable state and every function is
// safe for concurrent use. A Converter can be configured to read UTC and JST
// inputs leniently for callers that still send loosely formatted timestamps.
//
// Representable years are 0000 through 9999; results outside that range are
// reported as invalid input.
package datex
