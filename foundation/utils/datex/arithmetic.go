// File: arithmetic.go
// Title: Calendar Arithmetic
// Description: Year, month and day arithmetic on canonical dates with month-end
//              clamping, month ends and age calculation.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-12
//
// Change History:
// - 2025-01-25 v0.1.0: Age and start/end of period helpers on time.Time
// - 2026-10-12 v0.2.0: Canonical date arithmetic with clamping and range checks

package datex

import (
	"time"
)

// Largest operands that can still land inside the representable range.
// Anything beyond them is rejected before arithmetic to avoid overflow.
const (
	maxMonthSpan = (MaxYear - MinYear + 1) * 12
	maxDaySpan   = (MaxYear - MinYear + 1) * 366
)

// addMonthsClamped adds n months to t, clamping the day to the end of the target month
func addMonthsClamped(t time.Time, n int) (time.Time, bool) {
	if n > maxMonthSpan || n < -maxMonthSpan {
		return time.Time{}, false
	}
	total := t.Year()*12 + int(t.Month()) - 1 + n
	if total < MinYear*12 || total >= (MaxYear+1)*12 {
		return time.Time{}, false
	}
	y, m := total/12, time.Month(total%12+1)
	d := t.Day()
	if last := daysIn(y, m); d > last {
		d = last
	}
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location()), true
}

// AddYears adds n years to a YYYYMMDD date. When the resulting month is
// shorter (29 February in a common year) the day is clamped to its last day.
func AddYears(baseDate string, n int) (string, error) {
	base, ok := parseDate(baseDate)
	if !ok || n > maxMonthSpan/12 || n < -maxMonthSpan/12 {
		return "", invalidInput("AddYears", baseDate)
	}
	res, ok := addMonthsClamped(base, n*12)
	if !ok {
		return "", invalidInput("AddYears", baseDate)
	}
	out, _ := formatDate(res)
	return out, nil
}

// AddMonths adds n months to a YYYYMMDD date, clamping to the end of the target month
func AddMonths(baseDate string, n int) (string, error) {
	base, ok := parseDate(baseDate)
	if !ok {
		return "", invalidInput("AddMonths", baseDate)
	}
	res, ok := addMonthsClamped(base, n)
	if !ok {
		return "", invalidInput("AddMonths", baseDate)
	}
	out, _ := formatDate(res)
	return out, nil
}

// AddDays adds n calendar days to a YYYYMMDD date
func AddDays(baseDate string, n int) (string, error) {
	base, ok := parseDate(baseDate)
	if !ok || n > maxDaySpan || n < -maxDaySpan {
		return "", invalidInput("AddDays", baseDate)
	}
	out, ok := formatDate(base.AddDate(0, 0, n))
	if !ok {
		return "", invalidInput("AddDays", baseDate)
	}
	return out, nil
}

// EndOfMonth returns the last day of the month of a YYYYMMDD date or a YYYYMM
// year-month as YYYYMMDD
func EndOfMonth(baseDate string) (string, error) {
	var (
		base time.Time
		ok   bool
	)
	switch len(baseDate) {
	case len(LayoutDate):
		base, ok = parseDate(baseDate)
	case len(LayoutYearMonth):
		base, ok = parseYearMonth(baseDate)
	}
	if !ok {
		return "", invalidInput("EndOfMonth", baseDate)
	}
	last := time.Date(base.Year(), base.Month(), daysIn(base.Year(), base.Month()), 0, 0, 0, 0, time.UTC)
	return last.Format(LayoutDate), nil
}

// CalcAge returns the number of full years from birthday to baseDate.
// A year is complete on the clamped anniversary, so 20200229 turns 1 on 20210228.
// When baseDate is before birthday the result is negative.
func CalcAge(baseDate, birthday string) (int, error) {
	base, ok := parseDate(baseDate)
	if !ok {
		return 0, invalidInput("CalcAge", baseDate)
	}
	birth, ok := parseDate(birthday)
	if !ok {
		return 0, invalidInput("CalcAge", birthday)
	}
	if base.Before(birth) {
		return -fullYears(base, birth), nil
	}
	return fullYears(birth, base), nil
}

// fullYears counts completed years from start to end, start <= end
func fullYears(start, end time.Time) int {
	years := end.Year() - start.Year()
	// both dates are in range so the anniversary always exists
	anniversary, _ := addMonthsClamped(start, years*12)
	if anniversary.After(end) {
		years--
	}
	return years
}
