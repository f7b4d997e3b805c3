// File: format_test.go
// Title: Lenient Parsing and Formatting Tests
// Description: Tests for ParseLenient input forms and token pattern rendering.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-12
// Modified: 2026-10-12
//
// Change History:
// - 2026-10-12 v0.2.0: Initial implementation

package datex

import (
	"testing"
	"time"
)

func TestParseLenient(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		wantErr  bool
		expected string // RFC 3339 instant
	}{
		{"compact date", "20210304", false, "2021-03-04T00:00:00Z"},
		{"year month", "202103", false, "2021-03-01T00:00:00Z"},
		{"year only", "2021", false, "2021-01-01T00:00:00Z"},
		{"iso date", "2021-03-04", false, "2021-03-04T00:00:00Z"},
		{"single digit parts", "2021/3/4", false, "2021-03-04T00:00:00Z"},
		{"date time millis", "2021-03-04 10:20:30.400", false, "2021-03-04T10:20:30.4Z"},
		{"T separator", "2021-03-04T10:20", false, "2021-03-04T10:20:00Z"},
		{"long fraction", "2021-03-04 10:20:30.123456", false, "2021-03-04T10:20:30.123Z"},
		{"canonical date time", "20210304 102030", false, "2021-03-04T10:20:30Z"},
		{"rfc3339 utc", "2021-03-04T10:20:30Z", false, "2021-03-04T10:20:30Z"},
		{"rfc3339 offset", "2021-03-04T10:20:30+09:00", false, "2021-03-04T01:20:30Z"},
		{"rfc1123z", "Thu, 04 Mar 2021 10:00:00 +0900", false, "2021-03-04T01:00:00Z"},
		{"textual", "March 4, 2021", false, "2021-03-04T00:00:00Z"},
		{"short textual", "Mar 4, 2021", false, "2021-03-04T00:00:00Z"},
		{"us short date", "12/25/2023", false, "2023-12-25T00:00:00Z"},
		{"european date", "25.12.2023", false, "2023-12-25T00:00:00Z"},
		{"full width", "２０２１－０３－０４", false, "2021-03-04T00:00:00Z"},
		{"surrounding blanks", "  2021-03-04\t", false, "2021-03-04T00:00:00Z"},
		{"month 13", "2021-13-01", true, ""},
		{"april 31", "2021-04-31", true, ""},
		{"hour 24", "2021-03-04 24:00:00", true, ""},
		{"letters", "aa", true, ""},
		{"empty", "", true, ""},
		{"blank", "   ", true, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseLenient(tc.input)
			if tc.wantErr {
				assertInvalid(t, err, "ParseLenient")
				return
			}
			if err != nil {
				t.Fatalf("ParseLenient(%q) unexpected error: %v", tc.input, err)
			}
			want, _ := time.Parse(time.RFC3339Nano, tc.expected)
			if !got.Equal(want) {
				t.Errorf("ParseLenient(%q) = %v, want %v", tc.input, got, want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		pattern string
		want    string
		wantErr bool
	}{
		{"compact to year month", "20210304", "YYYYMM", "202103", false},
		{"iso to year month", "2021-03-04", "YYYYMM", "202103", false},
		{"date time to compact", "2021-03-04 00:00:00.000", "YYYYMMDD", "20210304", false},
		{"unparseable", "aa", "YYYYMMDD", "", true},
		{"short tokens", "2021-03-04 13:05:09.007", "YYYY/M/D H:m:s SSS", "2021/3/4 13:5:9 007", false},
		{"two digit year", "2009-03-04", "YY-MM-DD", "09-03-04", false},
		{"month names", "2021-03-04", "MMM MMMM", "Mar March", false},
		{"weekday tokens", "2021-03-04", "d dd ddd dddd", "4 Th Thu Thursday", false},
		{"twelve hour pm", "2021-03-04 13:05", "hh:mm A", "01:05 PM", false},
		{"twelve hour midnight", "2021-03-04 00:05", "h:mm a", "12:05 am", false},
		{"twelve hour noon", "2021-03-04 12:00", "h A", "12 PM", false},
		{"escaped text", "2021-03-04", "[Today is] dddd", "Today is Thursday", false},
		{"escaped tokens", "2021-03-04", "[YYYY]-YYYY", "YYYY-2021", false},
		{"unterminated bracket", "2021-03-04", "[YYYY", "[2021", false},
		{"kept offset", "2021-03-04T10:00:00+09:00", "HH Z ZZ", "10 +09:00 +0900", false},
		{"utc offset", "2021-03-04", "Z", "+00:00", false},
		{"unix seconds", "1970-01-01T00:00:01Z", "X", "1", false},
		{"unix millis", "1970-01-01 00:00:01.500", "x", "1500", false},
		{"default pattern", "2021-03-04", "", "2021-03-04T00:00:00+00:00", false},
		{"literal characters", "2021-03-04", "YYYY年MM月DD日", "2021年03月04日", false},
		{"full width input", "２０２１－０３－０４", "YYYYMMDD", "20210304", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Format(tc.input, tc.pattern)
			if tc.wantErr {
				assertInvalid(t, err, "Format")
				return
			}
			if err != nil {
				t.Fatalf("Format(%q, %q) unexpected error: %v", tc.input, tc.pattern, err)
			}
			if got != tc.want {
				t.Errorf("Format(%q, %q) = %q, want %q", tc.input, tc.pattern, got, tc.want)
			}
		})
	}
}

func TestFormatTimeEarlyYears(t *testing.T) {
	ts := time.Date(33, time.July, 5, 0, 0, 0, 0, time.UTC)
	if got := FormatTime(ts, "YYYY-MM-DD YY"); got != "0033-07-05 33" {
		t.Errorf("FormatTime() = %q", got)
	}
}
