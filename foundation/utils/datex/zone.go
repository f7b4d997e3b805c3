// File: zone.go
// Title: UTC and JST Conversion
// Description: Fixed-offset Japan Standard Time, UTC/JST conversion and the
//              Converter that selects strict or lenient reading of UTC inputs.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-12
//
// Change History:
// - 2025-01-25 v0.1.0: Cached IANA location lookup and timezone conversion
// - 2026-10-12 v0.2.0: Fixed UTC+9 zone, Converter with strict and lenient modes

package datex

import (
	"fmt"
	"strings"
	"time"
)

// JSTOffset is the fixed offset of Japan Standard Time from UTC
const JSTOffset = 9 * time.Hour

// JST is Japan Standard Time. It has no daylight saving, so a fixed zone is
// exact and needs no tz database.
var JST = time.FixedZone("JST", int(JSTOffset/time.Second))

// UTCParsing selects how a Converter reads UTC and JST date-time inputs
type UTCParsing int

const (
	// UTCStrict accepts only YYYYMMDD HHmmss (and .SSS where milliseconds apply)
	UTCStrict UTCParsing = iota

	// UTCLenient additionally accepts anything ParseLenient understands.
	// Zone-less values are read in the source zone of the conversion.
	UTCLenient
)

// String returns the configuration name of the mode
func (p UTCParsing) String() string {
	switch p {
	case UTCStrict:
		return "strict"
	case UTCLenient:
		return "lenient"
	default:
		return fmt.Sprintf("UTCParsing(%d)", int(p))
	}
}

// ParseUTCParsing parses "strict" or "lenient"; the empty string means strict
func ParseUTCParsing(s string) (UTCParsing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return UTCStrict, nil
	case "lenient", "legacy":
		return UTCLenient, nil
	default:
		return UTCStrict, fmt.Errorf("unknown utc parsing mode %q (want strict or lenient)", s)
	}
}

// Converter performs epoch and timezone conversions of date-time strings.
// The zero value is a strict converter. A Converter is immutable and safe
// for concurrent use.
type Converter struct {
	mode UTCParsing
}

// NewConverter returns a Converter using the given parsing mode
func NewConverter(mode UTCParsing) *Converter {
	return &Converter{mode: mode}
}

// Mode returns the UTC parsing mode of the converter
func (c *Converter) Mode() UTCParsing {
	return c.mode
}

var defaultConverter = NewConverter(UTCStrict)

// parseInstant reads s as a date-time in loc according to the converter mode
func (c *Converter) parseInstant(s string, withMillis bool, loc *time.Location) (time.Time, bool) {
	if t, ok := parseDateTime(s, withMillis, loc); ok {
		return t, true
	}
	if c.mode != UTCLenient {
		return time.Time{}, false
	}
	t, err := parseLenient(s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// UTCToEpochSec converts a UTC date-time to epoch seconds. In lenient mode
// sub-second input is truncated toward the earlier second.
func (c *Converter) UTCToEpochSec(s string) (int64, error) {
	t, ok := c.parseInstant(s, false, time.UTC)
	if !ok {
		return 0, invalidInput("UTCToEpochSec", s)
	}
	return t.Unix(), nil
}

// UTCToEpochMilliSec converts a UTC date-time with optional milliseconds to
// epoch milliseconds
func (c *Converter) UTCToEpochMilliSec(s string) (int64, error) {
	t, ok := c.parseInstant(s, true, time.UTC)
	if !ok {
		return 0, invalidInput("UTCToEpochMilliSec", s)
	}
	return t.UnixMilli(), nil
}

// UTCToJST converts a YYYYMMDD HHmmss UTC date-time to YYYYMMDD HHmmss in JST
func (c *Converter) UTCToJST(s string) (string, error) {
	return c.convert("UTCToJST", s, time.UTC, JST)
}

// JSTToUTC converts a YYYYMMDD HHmmss JST date-time to YYYYMMDD HHmmss in UTC
func (c *Converter) JSTToUTC(s string) (string, error) {
	return c.convert("JSTToUTC", s, JST, time.UTC)
}

func (c *Converter) convert(op, s string, from, to *time.Location) (string, error) {
	t, ok := c.parseInstant(s, false, from)
	if !ok {
		return "", invalidInput(op, s)
	}
	out, ok := formatDateTime(t.In(to), false)
	if !ok {
		return "", invalidInput(op, s)
	}
	return out, nil
}

// UTCToJST converts a YYYYMMDD HHmmss UTC date-time to JST
func UTCToJST(s string) (string, error) {
	return defaultConverter.UTCToJST(s)
}

// JSTToUTC converts a YYYYMMDD HHmmss JST date-time to UTC
func JSTToUTC(s string) (string, error) {
	return defaultConverter.JSTToUTC(s)
}
