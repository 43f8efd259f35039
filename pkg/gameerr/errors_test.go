package gameerr

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsMatchesByCode(t *testing.T) {
	err := Newf(CodeInvalidPosition, "position %d out of range", 99)
	if !errors.Is(err, ErrInvalidPosition) {
		t.Fatalf("errors.Is(%v, ErrInvalidPosition) = false, want true", err)
	}
	if errors.Is(err, ErrIllegalDevelopment) {
		t.Fatalf("errors.Is(%v, ErrIllegalDevelopment) = true, want false", err)
	}

	wrapped := fmt.Errorf("lookup: %w", err)
	if got := CodeOf(wrapped); got != CodeInvalidPosition {
		t.Fatalf("CodeOf() = %q, want %q", got, CodeInvalidPosition)
	}
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(CodeInvalidState, "broken", cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable")
	}
	if err.Error() != "broken: boom" {
		t.Fatalf("Error() = %q", err.Error())
	}
}

func TestIsValidation(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{ErrInvalidTrade, true},
		{ErrInsufficientFunds, true},
		{ErrNegativeBalance, false},
		{ErrInvalidState, false},
		{errors.New("plain"), false},
	}
	for _, tt := range tests {
		if got := IsValidation(tt.err); got != tt.want {
			t.Fatalf("IsValidation(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestMustPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	Must(ErrNegativeBalance)
}
