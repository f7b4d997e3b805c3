// File: operand.go
// Title: Numeric Operand Parsing
// Description: Parses textual arithmetic operands and epoch values so that
//              non-numeric input yields the invalid-input sentinel.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-12
// Modified: 2026-10-12
//
// Change History:
// - 2026-10-12 v0.2.0: Initial implementation

package datex

import (
	"strconv"
	"strings"
)

// ParseOperand parses a base-10 integer operand such as the n of AddDays.
// Surrounding whitespace is ignored.
func ParseOperand(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, invalidInput("ParseOperand", s)
	}
	return n, nil
}

// ParseEpoch parses a base-10 epoch value in seconds or milliseconds
func ParseEpoch(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, invalidInput("ParseEpoch", s)
	}
	return n, nil
}
