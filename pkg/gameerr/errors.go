// Package gameerr provides the coded error type shared by the game engine.
package gameerr

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

const (
	CodeInvalidPosition    Code = "INVALID_POSITION"
	CodeIllegalDevelopment Code = "ILLEGAL_DEVELOPMENT"
	CodeNegativeBalance    Code = "NEGATIVE_BALANCE"
	CodeInvalidState       Code = "INVALID_STATE"
	CodeInvalidTrade       Code = "INVALID_TRADE"
	CodeInvalidChoice      Code = "INVALID_CHOICE"
	CodeNothingToTrade     Code = "NOTHING_TO_TRADE"
	CodeInsufficientFunds  Code = "INSUFFICIENT_FUNDS"
	CodeNotOwner           Code = "NOT_OWNER"
	CodeInvalidPlayers     Code = "INVALID_PLAYERS"
	CodeCardUnavailable    Code = "CARD_UNAVAILABLE"
)

// Error is the engine error type.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target carries the same code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates an error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an error with a code and a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Sentinels for errors.Is comparisons.
var (
	ErrInvalidPosition    = New(CodeInvalidPosition, "invalid position")
	ErrIllegalDevelopment = New(CodeIllegalDevelopment, "illegal development")
	ErrNegativeBalance    = New(CodeNegativeBalance, "negative balance")
	ErrInvalidState       = New(CodeInvalidState, "invalid state")
	ErrInvalidTrade       = New(CodeInvalidTrade, "invalid trade")
	ErrInvalidChoice      = New(CodeInvalidChoice, "invalid choice")
	ErrNothingToTrade     = New(CodeNothingToTrade, "nothing to trade")
	ErrInsufficientFunds  = New(CodeInsufficientFunds, "insufficient funds")
	ErrNotOwner           = New(CodeNotOwner, "not owner")
	ErrInvalidPlayers     = New(CodeInvalidPlayers, "invalid players")
	ErrCardUnavailable    = New(CodeCardUnavailable, "card unavailable")
)

// CodeOf returns the code of err, or "" when err is not an *Error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsValidation reports whether err is a recoverable, user-input shaped error
// that the adapter should report and re-prompt.
func IsValidation(err error) bool {
	switch CodeOf(err) {
	case CodeInvalidPosition, CodeIllegalDevelopment, CodeInvalidTrade,
		CodeInvalidChoice, CodeNothingToTrade, CodeInsufficientFunds,
		CodeNotOwner, CodeInvalidPlayers, CodeCardUnavailable:
		return true
	}
	return false
}

// Must panics with err when it is non-nil. It marks calls whose failure can
// only be an invariant violation.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}
