package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidArgument, "invalid year: %d", 2021)

	if err.Code != ErrCodeInvalidArgument {
		t.Errorf("expected code %s, got %s", ErrCodeInvalidArgument, err.Code)
	}
	if err.Message != "invalid year: 2021" {
		t.Errorf("unexpected message: %s", err.Message)
	}
	if !strings.Contains(err.Error(), "INVALID_ARGUMENT") {
		t.Errorf("error string should contain code: %s", err.Error())
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(ErrCodeRequestFailed, cause, "fetching %s", "https://example.com/data.json")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("error string should contain cause: %s", err.Error())
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching code", New(ErrCodeUnknownField, "no such column"), ErrCodeUnknownField, true},
		{"different code", New(ErrCodeDecodeFailed, "bad json"), ErrCodeUnknownField, false},
		{"plain error", fmt.Errorf("plain"), ErrCodeInternal, false},
		{"wrapped in fmt", fmt.Errorf("outer: %w", New(ErrCodeRequestFailed, "status 500")), ErrCodeRequestFailed, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeDecodeFailed, "x")); got != ErrCodeDecodeFailed {
		t.Errorf("GetCode() = %s, want %s", got, ErrCodeDecodeFailed)
	}
	if got := GetCode(fmt.Errorf("plain")); got != "" {
		t.Errorf("GetCode() on plain error = %s, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidArgument, "year must be between 2017 and 2020")
	if got := UserMessage(err); got != "year must be between 2017 and 2020" {
		t.Errorf("UserMessage() = %q", got)
	}
	plain := fmt.Errorf("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage() on plain error = %q", got)
	}
}
