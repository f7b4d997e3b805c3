// File: error_test.go
// Title: Error Module Tests
// Description: Tests for error creation, wrapping, codes, severity and JSON output.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-12
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with comprehensive test coverage
// - 2026-10-12 v0.2.0: Sentinel wrapping and reduced code set

package error

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

var errSentinel = errors.New("sentinel")

func TestNew(t *testing.T) {
	msg := "test error message"
	err := New(msg)

	if err == nil {
		t.Fatal("New() returned nil")
	}
	if err.Error() != msg {
		t.Errorf("Error() = %q, want %q", err.Error(), msg)
	}
	if err.Code() != CodeUnknown {
		t.Errorf("Code() = %v, want %v", err.Code(), CodeUnknown)
	}
	if err.Severity() != SeverityMedium {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityMedium)
	}
	if err.Timestamp().IsZero() {
		t.Error("Timestamp() should not be zero")
	}
	if len(err.StackTrace()) == 0 {
		t.Error("StackTrace() should not be empty")
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
		wantNil bool
		wantMsg string
	}{
		{
			name:    "wrap nil error",
			err:     nil,
			message: "wrapper message",
			wantNil: true,
		},
		{
			name:    "wrap standard error",
			err:     errors.New("original error"),
			message: "wrapper message",
			wantMsg: "wrapper message: original error",
		},
		{
			name:    "wrap structured error",
			err:     New("original").WithCode(CodeInvalidInput),
			message: "wrapper message",
			wantMsg: "wrapper message: original",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.err, tt.message)
			if tt.wantNil {
				if got != nil {
					t.Errorf("Wrap() = %v, want nil", got)
				}
				return
			}
			if got.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got.Error(), tt.wantMsg)
			}
		})
	}
}

func TestWrapPreservesSentinel(t *testing.T) {
	err := Wrap(errSentinel, "AddYears").WithCode(CodeInvalidInput)

	if !errors.Is(err, errSentinel) {
		t.Error("errors.Is() should find the wrapped sentinel")
	}

	outer := Wrap(err, "service.Invoke")
	if !errors.Is(outer, errSentinel) {
		t.Error("errors.Is() should find the sentinel through two layers")
	}
	if outer.Code() != CodeInvalidInput {
		t.Errorf("Code() = %v, want inherited %v", outer.Code(), CodeInvalidInput)
	}
	if outer.RootCause() != errSentinel {
		t.Errorf("RootCause() = %v, want sentinel", outer.RootCause())
	}
}

func TestWithCodeSetsSeverity(t *testing.T) {
	tests := []struct {
		code Code
		want Severity
	}{
		{CodeInvalidInput, SeverityLow},
		{CodeNotFound, SeverityLow},
		{CodeServiceInitialization, SeverityHigh},
		{CodeServiceUnavailable, SeverityCritical},
		{CodeTimeout, SeverityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			err := New("x").WithCode(tt.code)
			if err.Severity() != tt.want {
				t.Errorf("Severity() = %v, want %v", err.Severity(), tt.want)
			}
		})
	}

	explicit := New("x").WithSeverity(SeverityCritical).WithCode(CodeInvalidInput)
	if explicit.Severity() != SeverityCritical {
		t.Errorf("explicit severity overwritten: %v", explicit.Severity())
	}
}

func TestHasCodeAndGetCode(t *testing.T) {
	err := New("bad date").WithCode(CodeInvalidInput)
	wrapped := Wrap(err, "outer")

	if !HasCode(err, CodeInvalidInput) {
		t.Error("HasCode() = false, want true")
	}
	if !HasCode(wrapped, CodeInvalidInput) {
		t.Error("HasCode() on wrapped = false, want true")
	}
	if HasCode(errors.New("plain"), CodeInvalidInput) {
		t.Error("HasCode() on plain error = true, want false")
	}
	if got := GetCode(errors.New("plain")); got != CodeUnknown {
		t.Errorf("GetCode() = %v, want %v", got, CodeUnknown)
	}
	if got := GetSeverity(errors.New("plain")); got != SeverityMedium {
		t.Errorf("GetSeverity() = %v, want %v", got, SeverityMedium)
	}
}

func TestDetails(t *testing.T) {
	err := New("x").
		WithDetail("input", "202013").
		WithDetails(map[string]interface{}{"layout": "YYYYMM"})

	details := err.Details()
	if details["input"] != "202013" || details["layout"] != "YYYYMM" {
		t.Errorf("Details() = %v", details)
	}

	details["input"] = "changed"
	if err.Details()["input"] != "202013" {
		t.Error("Details() must return a copy")
	}
}

func TestString(t *testing.T) {
	err := Wrap(errSentinel, "endOfMonth").
		WithCode(CodeInvalidInput).
		WithOperation("datex.EndOfMonth").
		WithRequestID("req-1").
		WithDetail("input", "202013")

	s := err.String()
	for _, want := range []string{
		"Error: endOfMonth",
		"Code: INVALID_INPUT",
		"Severity: low",
		"Operation: datex.EndOfMonth",
		"RequestID: req-1",
		"Details: {input=202013}",
		"Cause: sentinel",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q in:\n%s", want, s)
		}
	}
}

func TestMarshalJSON(t *testing.T) {
	err := Wrap(errSentinel, "compare").
		WithCode(CodeInvalidInput).
		WithOperation("datex.Compare").
		WithDetail("input", "202111aa")

	data, jerr := json.Marshal(err)
	if jerr != nil {
		t.Fatalf("json.Marshal() error = %v", jerr)
	}

	var decoded map[string]interface{}
	if jerr := json.Unmarshal(data, &decoded); jerr != nil {
		t.Fatalf("json.Unmarshal() error = %v", jerr)
	}

	if decoded["code"] != "INVALID_INPUT" {
		t.Errorf("code = %v", decoded["code"])
	}
	if decoded["operation"] != "datex.Compare" {
		t.Errorf("operation = %v", decoded["operation"])
	}
	if decoded["cause"] != "sentinel" {
		t.Errorf("cause = %v", decoded["cause"])
	}
	details, ok := decoded["details"].(map[string]interface{})
	if !ok || details["input"] != "202111aa" {
		t.Errorf("details = %v", decoded["details"])
	}
}

func TestCodeCategory(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{CodeInvalidInput, "validation"},
		{CodeInvalidConfig, "configuration"},
		{CodeServiceInitialization, "service"},
		{CodeNotFound, "generic"},
	}
	for _, tt := range tests {
		if got := tt.code.Category(); got != tt.want {
			t.Errorf("%s.Category() = %q, want %q", tt.code, got, tt.want)
		}
		if !tt.code.IsValid() {
			t.Errorf("%s.IsValid() = false", tt.code)
		}
	}
	if Code("NOPE").IsValid() {
		t.Error(`Code("NOPE").IsValid() = true`)
	}
}
