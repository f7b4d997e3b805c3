// File: format.go
// Title: Lenient Parsing and Pattern Formatting
// Description: Lenient parsing of free-form date input and token based
//              formatting used by the format operation.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-12
//
// Change History:
// - 2025-01-25 v0.1.0: Multi-layout Parse and named layout Format
// - 2026-10-12 v0.2.0: ISO-like lenient parser, full-width input, token patterns

package datex

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/width"
)

// DefaultPattern is used by Format when the pattern is empty
const DefaultPattern = "YYYY-MM-DDTHH:mm:ssZ"

// isoLikeRe matches year, optional month, day and time parts with optional
// separators: 2021, 202103, 20210304, 2021-3-4, 2021/03/04 10:20:30.400
var isoLikeRe = regexp.MustCompile(`^(\d{4})[-/]?(\d{1,2})?[-/]?(\d{0,2})[Tt\s]*(\d{1,2})?:?(\d{1,2})?:?(\d{1,2})?[.:]?(\d+)?$`)

// lenientLayouts are tried after the ISO-like form. Layouts with a zone keep
// the parsed offset; the rest are read in the caller's location.
var lenientLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	time.RFC850,
	time.ANSIC,
	time.UnixDate,
	"January 2, 2006 15:04:05",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"2006/01/02 15:04:05",
	"01/02/2006 15:04:05",
	"01/02/2006",
	"2.1.2006",
}

// ParseLenient parses free-form date input. Values without a zone are taken as
// UTC wall clock; values with an offset keep it. Out-of-range components such
// as month 13 are rejected rather than rolled over.
func ParseLenient(s string) (time.Time, error) {
	t, err := parseLenient(s, time.UTC)
	if err != nil {
		return time.Time{}, invalidInput("ParseLenient", s)
	}
	return t, nil
}

func parseLenient(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(width.Narrow.String(s))
	if s == "" {
		return time.Time{}, ErrInvalidInput
	}

	if m := isoLikeRe.FindStringSubmatch(s); m != nil {
		if t, ok := isoLikeTime(m, loc); ok {
			return t, nil
		}
		return time.Time{}, ErrInvalidInput
	}

	for _, layout := range lenientLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil && inYearRange(t.Year()) {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidInput
}

// isoLikeTime validates the groups matched by isoLikeRe
func isoLikeTime(m []string, loc *time.Location) (time.Time, bool) {
	group := func(i, def int) int {
		if m[i] == "" {
			return def
		}
		return atoi(m[i])
	}
	y, mo, d := group(1, 0), group(2, 1), group(3, 1)
	h, mi, sec := group(4, 0), group(5, 0), group(6, 0)
	if !validDate(y, mo, d) || !validClock(h, mi, sec) {
		return time.Time{}, false
	}
	ms := 0
	if frac := m[7]; frac != "" {
		// only milliseconds are significant
		if len(frac) > 3 {
			frac = frac[:3]
		}
		for len(frac) < 3 {
			frac += "0"
		}
		ms = atoi(frac)
	}
	return time.Date(y, time.Month(mo), d, h, mi, sec, ms*int(time.Millisecond), loc), true
}

// Format parses input leniently and renders it with a token pattern.
//
// Supported tokens:
//
//	YYYY YY        year, two-digit year
//	M MM MMM MMMM  month 1-12, 01-12, Jan, January
//	D DD           day of month
//	d dd ddd dddd  weekday 0-6, Su, Sun, Sunday
//	H HH h hh      hour 0-23, hour 1-12
//	m mm s ss SSS  minute, second, millisecond
//	A a            AM/PM, am/pm
//	Z ZZ           offset +09:00, +0900
//	X x            Unix seconds, Unix milliseconds
//
// Text inside square brackets is copied without interpretation, as is any
// character that does not start a token. An empty pattern means DefaultPattern.
func Format(input, pattern string) (string, error) {
	t, err := parseLenient(input, time.UTC)
	if err != nil {
		return "", invalidInput("Format", input)
	}
	if pattern == "" {
		pattern = DefaultPattern
	}
	return FormatTime(t, pattern), nil
}

// formatTokens is ordered so that longer tokens win over their prefixes
var formatTokens = []string{
	"YYYY", "YY",
	"MMMM", "MMM", "MM", "M",
	"DD", "D",
	"dddd", "ddd", "dd", "d",
	"HH", "H", "hh", "h",
	"mm", "m",
	"ss", "s",
	"SSS",
	"A", "a",
	"ZZ", "Z",
	"X", "x",
}

// FormatTime renders t with a token pattern as described for Format
func FormatTime(t time.Time, pattern string) string {
	var b strings.Builder
	b.Grow(len(pattern) + 8)

	for i := 0; i < len(pattern); {
		if pattern[i] == '[' {
			if end := strings.IndexByte(pattern[i+1:], ']'); end >= 0 {
				b.WriteString(pattern[i+1 : i+1+end])
				i += end + 2
				continue
			}
		}

		matched := ""
		for _, tok := range formatTokens {
			if strings.HasPrefix(pattern[i:], tok) {
				matched = tok
				break
			}
		}
		if matched == "" {
			b.WriteByte(pattern[i])
			i++
			continue
		}
		b.WriteString(renderToken(t, matched))
		i += len(matched)
	}
	return b.String()
}

func renderToken(t time.Time, tok string) string {
	switch tok {
	case "YYYY":
		return pad(t.Year(), 4)
	case "YY":
		return pad(t.Year()%100, 2)
	case "MMMM":
		return t.Month().String()
	case "MMM":
		return t.Month().String()[:3]
	case "MM":
		return pad(int(t.Month()), 2)
	case "M":
		return strconv.Itoa(int(t.Month()))
	case "DD":
		return pad(t.Day(), 2)
	case "D":
		return strconv.Itoa(t.Day())
	case "dddd":
		return t.Weekday().String()
	case "ddd":
		return t.Weekday().String()[:3]
	case "dd":
		return t.Weekday().String()[:2]
	case "d":
		return strconv.Itoa(int(t.Weekday()))
	case "HH":
		return pad(t.Hour(), 2)
	case "H":
		return strconv.Itoa(t.Hour())
	case "hh":
		return pad(hour12(t.Hour()), 2)
	case "h":
		return strconv.Itoa(hour12(t.Hour()))
	case "mm":
		return pad(t.Minute(), 2)
	case "m":
		return strconv.Itoa(t.Minute())
	case "ss":
		return pad(t.Second(), 2)
	case "s":
		return strconv.Itoa(t.Second())
	case "SSS":
		return pad(t.Nanosecond()/int(time.Millisecond), 3)
	case "A":
		if t.Hour() < 12 {
			return "AM"
		}
		return "PM"
	case "a":
		if t.Hour() < 12 {
			return "am"
		}
		return "pm"
	case "Z":
		return t.Format("-07:00")
	case "ZZ":
		return t.Format("-0700")
	case "X":
		return strconv.FormatInt(t.Unix(), 10)
	case "x":
		return strconv.FormatInt(t.UnixMilli(), 10)
	}
	return tok
}

func hour12(h int) int {
	if h%12 == 0 {
		return 12
	}
	return h % 12
}

func pad(n, size int) string {
	s := strconv.Itoa(n)
	for len(s) < size {
		s = "0" + s
	}
	return s
}
