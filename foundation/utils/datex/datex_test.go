// File: datex_test.go
// Title: Canonical Date Utility Tests
// Description: Table-driven tests for strict parsing, calendar arithmetic,
//              comparison and the invalid-input contract.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-12
//
// Change History:
// - 2025-01-25 v0.1.0: Initial test implementation with comprehensive coverage
// - 2026-10-12 v0.2.0: Canonical date operations and sentinel checks

package datex

import (
	"errors"
	"math"
	"testing"

	mdwerror "github.com/msto63/mdw-dateutil/foundation/core/error"
)

// assertInvalid fails unless err matches ErrInvalidInput and carries the operation
func assertInvalid(t *testing.T, err error, op string) {
	t.Helper()
	if err == nil {
		t.Fatalf("%s: expected invalid input error, got nil", op)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("%s: error %v does not match ErrInvalidInput", op, err)
	}
	var mdwErr *mdwerror.Error
	if !errors.As(err, &mdwErr) {
		t.Fatalf("%s: error %T is not *mdwerror.Error", op, err)
	}
	if mdwErr.Code() != mdwerror.CodeInvalidInput {
		t.Errorf("%s: code = %v, want %v", op, mdwErr.Code(), mdwerror.CodeInvalidInput)
	}
	if mdwErr.Operation() != "datex."+op {
		t.Errorf("%s: operation = %q", op, mdwErr.Operation())
	}
}

// ===============================
// Strict Parsing Tests
// ===============================

func TestIsDate(t *testing.T) {
	testCases := []struct {
		input string
		want  bool
	}{
		{"20210101", true},
		{"20200229", true},
		{"00000101", true},
		{"99991231", true},
		{"20210229", false},
		{"19000229", false},
		{"20000229", true},
		{"20211301", false},
		{"20210431", false},
		{"20210100", false},
		{"2021010", false},
		{"202101011", false},
		{"2021-01-01", false},
		{" 20210101", false},
		{"202103aa", false},
		{"２０２１０１０１", false},
		{"", false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			if got := IsDate(tc.input); got != tc.want {
				t.Errorf("IsDate(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestIsDateTime(t *testing.T) {
	testCases := []struct {
		input string
		want  bool
	}{
		{"19700101 000000", true},
		{"19700101 235959", true},
		{"19700101 000000.001", true},
		{"19700101 240000", false},
		{"19700101 236000", false},
		{"19700101 235960", false},
		{"19700101000000", false},
		{"19700101  000000", false},
		{"19700101 000000.1", false},
		{"19700101T000000", false},
		{"19700230 000000", false},
		{"abc", false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			if got := IsDateTime(tc.input); got != tc.want {
				t.Errorf("IsDateTime(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

// ===============================
// Arithmetic Tests
// ===============================

func TestAddYears(t *testing.T) {
	testCases := []struct {
		name    string
		base    string
		n       int
		want    string
		wantErr bool
	}{
		{"plus two", "20210301", 2, "20230301", false},
		{"leap day clamps", "20200229", 1, "20210228", false},
		{"leap day to leap year", "20200229", 4, "20240229", false},
		{"minus two", "20210301", -2, "20190301", false},
		{"zero", "20210301", 0, "20210301", false},
		{"malformed base", "202103aa", -2, "", true},
		{"beyond 9999", "99990101", 1, "", true},
		{"before 0000", "00000101", -1, "", true},
		{"huge operand", "20210101", math.MaxInt, "", true},
		{"huge negative operand", "20210101", math.MinInt, "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := AddYears(tc.base, tc.n)
			if tc.wantErr {
				assertInvalid(t, err, "AddYears")
				return
			}
			if err != nil {
				t.Fatalf("AddYears(%q, %d) unexpected error: %v", tc.base, tc.n, err)
			}
			if got != tc.want {
				t.Errorf("AddYears(%q, %d) = %q, want %q", tc.base, tc.n, got, tc.want)
			}
		})
	}
}

func TestAddMonths(t *testing.T) {
	testCases := []struct {
		name    string
		base    string
		n       int
		want    string
		wantErr bool
	}{
		{"january end to february", "20210131", 1, "20210228", false},
		{"march end to april", "20210331", 1, "20210430", false},
		{"leap day plus two", "20200229", 2, "20200429", false},
		{"minus two", "20210301", -2, "20210101", false},
		{"across year", "20211130", 3, "20220228", false},
		{"to leap february", "20230131", 13, "20240229", false},
		{"backwards across years", "20210531", -15, "20200229", false},
		{"malformed base", "aa", 2, "", true},
		{"month 13", "20211301", 1, "", true},
		{"below year zero", "00000115", -1, "", true},
		{"above 9999", "99991215", 1, "", true},
		{"huge operand", "20210101", math.MaxInt, "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := AddMonths(tc.base, tc.n)
			if tc.wantErr {
				assertInvalid(t, err, "AddMonths")
				return
			}
			if err != nil {
				t.Fatalf("AddMonths(%q, %d) unexpected error: %v", tc.base, tc.n, err)
			}
			if got != tc.want {
				t.Errorf("AddMonths(%q, %d) = %q, want %q", tc.base, tc.n, got, tc.want)
			}
		})
	}
}

func TestAddDays(t *testing.T) {
	testCases := []struct {
		name    string
		base    string
		n       int
		want    string
		wantErr bool
	}{
		{"month rollover", "20210131", 1, "20210201", false},
		{"leap february", "20200228", 1, "20200229", false},
		{"common february", "20210228", 1, "20210301", false},
		{"year rollover backwards", "20210101", -1, "20201231", false},
		{"a leap year", "20200101", 366, "20210101", false},
		{"malformed base", "aa210131", 1, "", true},
		{"past 9999", "99991231", 1, "", true},
		{"before 0000", "00000101", -1, "", true},
		{"huge operand", "20210101", math.MaxInt, "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := AddDays(tc.base, tc.n)
			if tc.wantErr {
				assertInvalid(t, err, "AddDays")
				return
			}
			if err != nil {
				t.Fatalf("AddDays(%q, %d) unexpected error: %v", tc.base, tc.n, err)
			}
			if got != tc.want {
				t.Errorf("AddDays(%q, %d) = %q, want %q", tc.base, tc.n, got, tc.want)
			}
		})
	}
}

func TestEndOfMonth(t *testing.T) {
	testCases := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"20210301", "20210331", false},
		{"20200201", "20200229", false},
		{"202002", "20200229", false},
		{"202102", "20210228", false},
		{"190002", "19000228", false},
		{"200002", "20000229", false},
		{"20210430", "20210430", false},
		{"999912", "99991231", false},
		{"202013", "", true},
		{"202000", "", true},
		{"20210230", "", true},
		{"2021031", "", true},
		{"2021", "", true},
		{"abcdef", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := EndOfMonth(tc.input)
			if tc.wantErr {
				assertInvalid(t, err, "EndOfMonth")
				return
			}
			if err != nil {
				t.Fatalf("EndOfMonth(%q) unexpected error: %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("EndOfMonth(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestCalcAge(t *testing.T) {
	testCases := []struct {
		name     string
		base     string
		birthday string
		want     int
		wantErr  bool
	}{
		{"same day", "20210101", "20210101", 0, false},
		{"day before first birthday", "20211231", "20210101", 0, false},
		{"first birthday", "20220101", "20210101", 1, false},
		{"birthday not yet reached", "20210514", "19800515", 40, false},
		{"birthday reached", "20210515", "19800515", 41, false},
		{"leap birthday on clamped anniversary", "20210228", "20200229", 1, false},
		{"leap birthday before clamped anniversary", "20210227", "20200229", 0, false},
		{"leap birthday in leap year", "20240228", "20200229", 3, false},
		{"leap birthday on leap day", "20240229", "20200229", 4, false},
		{"base before birthday", "20200101", "20210101", -1, false},
		{"base just before birthday", "19991231", "20000101", 0, false},
		{"malformed base", "aaa", "20210101", 0, true},
		{"malformed birthday", "20210101", "2021bbb", 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CalcAge(tc.base, tc.birthday)
			if tc.wantErr {
				assertInvalid(t, err, "CalcAge")
				return
			}
			if err != nil {
				t.Fatalf("CalcAge(%q, %q) unexpected error: %v", tc.base, tc.birthday, err)
			}
			if got != tc.want {
				t.Errorf("CalcAge(%q, %q) = %d, want %d", tc.base, tc.birthday, got, tc.want)
			}
		})
	}
}

// ===============================
// Comparison Tests
// ===============================

func TestCompare(t *testing.T) {
	testCases := []struct {
		name    string
		base    string
		comp    string
		want    int
		wantErr bool
	}{
		{"same day", "20210508", "20210508", 0, false},
		{"base earlier", "20210508", "20210509", -1, false},
		{"base later", "20210508", "20210507", 1, false},
		{"years apart", "00010101", "99991231", -1, false},
		{"malformed base", "202111aa", "20210507", 0, true},
		{"malformed comp", "20211111", "202105aa", 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Compare(tc.base, tc.comp)
			if tc.wantErr {
				assertInvalid(t, err, "Compare")
				return
			}
			if err != nil {
				t.Fatalf("Compare(%q, %q) unexpected error: %v", tc.base, tc.comp, err)
			}
			if got != tc.want {
				t.Errorf("Compare(%q, %q) = %d, want %d", tc.base, tc.comp, got, tc.want)
			}
		})
	}
}

func TestDiffDays(t *testing.T) {
	testCases := []struct {
		name    string
		from    string
		to      string
		want    int
		wantErr bool
	}{
		{"same day", "20200508", "20200508", 0, false},
		{"one day later", "20210508", "20210509", 1, false},
		{"one day earlier", "20210508", "20210507", -1, false},
		{"leap year", "20200101", "20210101", 366, false},
		{"full range", "00000101", "99991231", 3652424, false},
		{"malformed from", "202105aa", "20210507", 0, true},
		{"malformed to", "20210518", "202105aa", 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DiffDays(tc.from, tc.to)
			if tc.wantErr {
				assertInvalid(t, err, "DiffDays")
				return
			}
			if err != nil {
				t.Fatalf("DiffDays(%q, %q) unexpected error: %v", tc.from, tc.to, err)
			}
			if got != tc.want {
				t.Errorf("DiffDays(%q, %q) = %d, want %d", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

// ===============================
// Operand Tests
// ===============================

func TestParseOperand(t *testing.T) {
	testCases := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"2", 2, false},
		{"-2", -2, false},
		{" 12 ", 12, false},
		{"+3", 3, false},
		{"a", 0, true},
		{"1.5", 0, true},
		{"", 0, true},
		{"99999999999999999999", 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseOperand(tc.input)
			if tc.wantErr {
				assertInvalid(t, err, "ParseOperand")
				return
			}
			if err != nil || got != tc.want {
				t.Errorf("ParseOperand(%q) = %d, %v; want %d", tc.input, got, err, tc.want)
			}
		})
	}
}

func TestParseEpoch(t *testing.T) {
	if got, err := ParseEpoch("-1"); err != nil || got != -1 {
		t.Errorf("ParseEpoch(-1) = %d, %v", got, err)
	}
	if got, err := ParseEpoch("1620000000000"); err != nil || got != 1620000000000 {
		t.Errorf("ParseEpoch(1620000000000) = %d, %v", got, err)
	}
	_, err := ParseEpoch("a")
	assertInvalid(t, err, "ParseEpoch")
}
