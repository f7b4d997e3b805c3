// File: compare.go
// Title: Date Comparison
// Description: Day-granular comparison and signed day differences of canonical dates.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-12
// Modified: 2026-10-12
//
// Change History:
// - 2026-10-12 v0.2.0: Initial implementation

package datex

const secondsPerDay = 24 * 60 * 60

// Compare compares two YYYYMMDD dates. It returns -1 when baseDate is before
// compDate, 0 when both denote the same day and 1 when baseDate is later.
func Compare(baseDate, compDate string) (int, error) {
	base, ok := parseDate(baseDate)
	if !ok {
		return 0, invalidInput("Compare", baseDate)
	}
	comp, ok := parseDate(compDate)
	if !ok {
		return 0, invalidInput("Compare", compDate)
	}
	switch {
	case base.Before(comp):
		return -1, nil
	case base.After(comp):
		return 1, nil
	default:
		return 0, nil
	}
}

// DiffDays returns the number of calendar days from fromDate to toDate,
// positive when toDate is later.
func DiffDays(fromDate, toDate string) (int, error) {
	from, ok := parseDate(fromDate)
	if !ok {
		return 0, invalidInput("DiffDays", fromDate)
	}
	to, ok := parseDate(toDate)
	if !ok {
		return 0, invalidInput("DiffDays", toDate)
	}
	// both are UTC midnights; Sub would overflow time.Duration past ~292 years
	return int((to.Unix() - from.Unix()) / secondsPerDay), nil
}
