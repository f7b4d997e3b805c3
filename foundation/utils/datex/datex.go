// File: datex.go
// Title: Canonical Layouts and Strict Parsing
// Description: Canonical layouts, the invalid-input sentinel and the strict
//              parsers shared by all datex operations.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-12
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with common business layouts
// - 2026-10-12 v0.2.0: Canonical layouts and strict regex based parsing

package datex

import (
	"errors"
	"regexp"
	"strconv"
	"time"

	mdwerror "github.com/msto63/mdw-dateutil/foundation/core/error"
)

// Canonical layouts in Go reference-time notation
const (
	LayoutDate          = "20060102"
	LayoutYearMonth     = "200601"
	LayoutDateTime      = "20060102 150405"
	LayoutDateTimeMilli = "20060102 150405.000"
)

// Representable year range of the canonical formats
const (
	MinYear = 0
	MaxYear = 9999
)

// ErrInvalidInput is matched by every error returned for malformed input,
// out-of-range calendar values and results outside the representable range.
var ErrInvalidInput = errors.New("datex: invalid input")

var (
	dateRe      = regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})$`)
	yearMonthRe = regexp.MustCompile(`^(\d{4})(\d{2})$`)
	dateTimeRe  = regexp.MustCompile(`^(\d{4})(\d{2})(\d{2}) (\d{2})(\d{2})(\d{2})(?:\.(\d{3}))?$`)
)

// invalidInput builds the error returned for input that fails validation
func invalidInput(op string, input interface{}) error {
	return mdwerror.Wrap(ErrInvalidInput, op).
		WithCode(mdwerror.CodeInvalidInput).
		WithOperation("datex." + op).
		WithDetail("input", input)
}

// daysIn returns the number of days in month m of year y
func daysIn(y int, m time.Month) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func inYearRange(y int) bool {
	return y >= MinYear && y <= MaxYear
}

// atoi converts a regex digit group; groups are pre-validated as ASCII digits
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// validDate reports whether y-m-d is a real calendar date
func validDate(y, m, d int) bool {
	if !inYearRange(y) || m < 1 || m > 12 || d < 1 {
		return false
	}
	return d <= daysIn(y, time.Month(m))
}

func validClock(h, mi, s int) bool {
	return h >= 0 && h <= 23 && mi >= 0 && mi <= 59 && s >= 0 && s <= 59
}

// parseDate strictly parses a YYYYMMDD date into midnight UTC
func parseDate(s string) (time.Time, bool) {
	m := dateRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	y, mo, d := atoi(m[1]), atoi(m[2]), atoi(m[3])
	if !validDate(y, mo, d) {
		return time.Time{}, false
	}
	return time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC), true
}

// parseYearMonth strictly parses a YYYYMM value into the first of the month
func parseYearMonth(s string) (time.Time, bool) {
	m := yearMonthRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	y, mo := atoi(m[1]), atoi(m[2])
	if !validDate(y, mo, 1) {
		return time.Time{}, false
	}
	return time.Date(y, time.Month(mo), 1, 0, 0, 0, 0, time.UTC), true
}

// parseDateTime strictly parses YYYYMMDD HHmmss, and YYYYMMDD HHmmss.SSS when
// withMillis is set, as a wall clock in loc
func parseDateTime(s string, withMillis bool, loc *time.Location) (time.Time, bool) {
	m := dateTimeRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	if m[7] != "" && !withMillis {
		return time.Time{}, false
	}
	y, mo, d := atoi(m[1]), atoi(m[2]), atoi(m[3])
	h, mi, sec := atoi(m[4]), atoi(m[5]), atoi(m[6])
	if !validDate(y, mo, d) || !validClock(h, mi, sec) {
		return time.Time{}, false
	}
	ms := 0
	if m[7] != "" {
		ms = atoi(m[7])
	}
	return time.Date(y, time.Month(mo), d, h, mi, sec, ms*int(time.Millisecond), loc), true
}

// formatDate renders t as YYYYMMDD, failing when the year is not representable
func formatDate(t time.Time) (string, bool) {
	if !inYearRange(t.Year()) {
		return "", false
	}
	return t.Format(LayoutDate), true
}

// formatDateTime renders t as YYYYMMDD HHmmss or YYYYMMDD HHmmss.SSS
func formatDateTime(t time.Time, withMillis bool) (string, bool) {
	if !inYearRange(t.Year()) {
		return "", false
	}
	if withMillis {
		return t.Format(LayoutDateTimeMilli), true
	}
	return t.Format(LayoutDateTime), true
}

// IsDate reports whether s is a valid canonical YYYYMMDD date
func IsDate(s string) bool {
	_, ok := parseDate(s)
	return ok
}

// IsDateTime reports whether s is a valid canonical YYYYMMDD HHmmss[.SSS] value
func IsDateTime(s string) bool {
	_, ok := parseDateTime(s, true, time.UTC)
	return ok
}
