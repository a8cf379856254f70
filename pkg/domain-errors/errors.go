// Package domainerrors defines the typed error taxonomy returned by the ledger
// services. Every failure a caller can observe carries exactly one Code; the
// transport layer maps codes to status codes and never inspects messages.
//
// Stores return facts from pkg/platform/sentinel; services translate those facts
// into one of the codes below.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code identifies a class of failure. Codes are stable strings that appear in
// API responses, so renaming one is a breaking change.
type Code string

// Membership failures.
const (
	CodeInvalidRole       Code = "invalid_role"
	CodeInvalidStatus     Code = "invalid_status"
	CodeAlreadyRegistered Code = "already_registered"
	CodeNotRegistered     Code = "not_registered"
	CodeNotApproved       Code = "not_approved"
)

// Authorization and lookup failures shared by every component.
const (
	CodeUnauthorized Code = "unauthorized"
	CodeNotFound     Code = "not_found"
)

// Ledger failures.
const (
	CodeInvalidName         Code = "invalid_name"
	CodeInvalidAmount       Code = "invalid_amount"
	CodeInsufficientBalance Code = "insufficient_balance"
	CodeRoleCannotMint      Code = "role_cannot_mint"
	CodeParentNotFound      Code = "parent_not_found"
	CodeParentKindMismatch  Code = "parent_kind_mismatch"
	CodeUnexpectedParent    Code = "unexpected_parent"
)

// Transfer workflow failures.
const (
	CodeSelfTransfer    Code = "self_transfer"
	CodeInvalidRoleFlow Code = "invalid_role_flow"
	CodeNotPending      Code = "not_pending"
)

// Transport and infrastructure codes.
const (
	CodeBadRequest         Code = "bad_request"
	CodeInvalidInput       Code = "invalid_input"
	CodeValidation         Code = "validation_error"
	CodeInvariantViolation Code = "invariant_violation"
	CodeTimeout            Code = "timeout"
	CodeInternal           Code = "internal_error"
)

// Error is a coded domain error. The optional wrapped error keeps the
// infrastructure cause available to logs without leaking it to callers.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a domain error with the same code, so that
// errors.Is(err, New(CodeNotFound, "...")) matches regardless of message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// New creates a domain error with the given code and message.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Newf is New with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Err: err}
}

// From extracts the outermost domain error from an error chain.
func From(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// CodeOf returns the code of the outermost domain error, or CodeInternal when
// err carries none.
func CodeOf(err error) Code {
	if de, ok := From(err); ok {
		return de.Code
	}
	return CodeInternal
}

// HasCode reports whether the outermost domain error in err carries code.
func HasCode(err error, code Code) bool {
	de, ok := From(err)
	return ok && de.Code == code
}

// Is is an alias of HasCode kept for call sites that read better as a predicate.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}
