// Package domainerrors provides coded errors for the SICI engine. Callers
// branch on the code with HasCode instead of matching message strings.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error.
type Code string

const (
	// CodeInvalidInput marks input rejected at a trust boundary, such as an
	// unknown operating mode or an empty string handed to a strict parser.
	CodeInvalidInput Code = "invalid_input"

	// CodeUnsupportedVersion marks a SICI whose embedded version marker
	// names a standard version this engine does not implement.
	CodeUnsupportedVersion Code = "unsupported_version"

	// CodeInvalidIdentifier marks a SICI that tokenized but carries
	// recorded conformance problems.
	CodeInvalidIdentifier Code = "invalid_identifier"
)

// Error carries a Code alongside a human-readable message and an optional
// wrapped cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

// New builds an error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap exposes the cause for errors.Is / errors.As chains.
func (e *Error) Unwrap() error {
	return e.cause
}

// HasCode reports whether any error in the chain carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		if de.Code == code {
			return true
		}
		return HasCode(de.cause, code)
	}
	return false
}
