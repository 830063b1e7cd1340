// Package domainerrors defines coded errors shared by services and transports.
//
// Stores return infrastructure sentinels (pkg/platform/sentinel); services
// translate those into coded domain errors so handlers can map them to HTTP
// statuses without string matching.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error for programmatic handling.
type Code string

const (
	// CodeValidation: caller-supplied data violates a required-field or
	// immutability rule. Recoverable by correcting input.
	CodeValidation Code = "validation"

	// CodeGatingViolation: attempt to add a child heir under a parent that is
	// not eligible to receive children. A specialization of CodeValidation;
	// HasCode(err, CodeValidation) also matches gating errors.
	CodeGatingViolation Code = "gating_violation"

	// CodeNotFound: referenced entity does not exist.
	CodeNotFound Code = "not_found"

	// CodeConflict: state transition or uniqueness conflict.
	CodeConflict Code = "conflict"

	// CodeInvalidInput: malformed identifier or parameter at a trust boundary.
	CodeInvalidInput Code = "invalid_input"

	// CodeBadRequest: unparseable or structurally invalid request.
	CodeBadRequest Code = "bad_request"

	// CodeCascadeFailure: a cascading delete stopped part-way, leaving the
	// subtree inconsistent. Surfaced loudly; see CascadeError for the ids.
	CodeCascadeFailure Code = "cascade_failure"

	// CodeInternal: unexpected infrastructure failure.
	CodeInternal Code = "internal"
)

// Error is a coded domain error with an optional wrapped cause.
type Error struct {
	code  Code
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.cause }

// Code returns the classification of this error.
func (e *Error) Code() Code { return e.code }

// New constructs a coded error.
func New(code Code, msg string) *Error {
	return &Error{code: code, msg: msg}
}

// Newf constructs a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{code: code, msg: fmt.Sprintf(format, args...)}
}

// Wrap annotates err with a code and message, preserving the cause chain.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{code: code, msg: msg, cause: err}
}

// Coded is satisfied by any error type carrying a Code. CascadeError
// implements it alongside *Error.
type Coded interface {
	error
	Code() Code
}

// HasCode reports whether any error in the chain carries the given code.
// CodeGatingViolation satisfies CodeValidation as well, so callers that only
// distinguish "bad input" from "missing" need not special-case gating.
func HasCode(err error, code Code) bool {
	for err != nil {
		var c Coded
		if !errors.As(err, &c) {
			return false
		}
		if c.Code() == code {
			return true
		}
		if code == CodeValidation && c.Code() == CodeGatingViolation {
			return true
		}
		err = errors.Unwrap(c)
	}
	return false
}

// Is is a readability alias for HasCode.
func Is(err error, code Code) bool { return HasCode(err, code) }

// CodeOf returns the outermost code in the chain, or CodeInternal when the
// error carries no code.
func CodeOf(err error) Code {
	var c Coded
	if errors.As(err, &c) {
		return c.Code()
	}
	return CodeInternal
}
