// Package errors provides the coded errors shared by every Highweigh layer.
//
// A failed load or render carries a [Code]. The CLI prints it next to the
// message, and the HTTP service turns the code's [Class] into a status, so
// both surfaces report one failure the same way.
//
// # Codes
//
//   - INVALID_*: the document or a request option is malformed
//   - NOT_FOUND / FILE_NOT_FOUND: the document does not exist
//   - NETWORK_ERROR / TIMEOUT: fetching the document failed
//   - INTERNAL_ERROR / UNSUPPORTED: everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidDocument, "months must be >= 1, got %d", n)
//	if errors.Is(err, errors.ErrCodeInvalidDocument) {
//	    // report as a load failure
//	}
//
//	err = errors.Wrap(errors.ErrCodeNetwork, origErr, "fetch %s", url)
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable failure kind.
type Code string

const (
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidDocument Code = "INVALID_DOCUMENT"
	ErrCodeInvalidDate     Code = "INVALID_DATE"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Class groups codes by who is at fault.
type Class int

const (
	ClassInternal Class = iota // a bug or an unsupported operation
	ClassInput                 // the caller sent something malformed
	ClassMissing               // the named document does not exist
	ClassUpstream              // the document's origin failed or timed out
)

// Class returns the group c belongs to. Unknown codes are internal.
func (c Code) Class() Class {
	switch c {
	case ErrCodeInvalidInput, ErrCodeInvalidDocument, ErrCodeInvalidDate, ErrCodeInvalidFormat:
		return ClassInput
	case ErrCodeNotFound, ErrCodeFileNotFound:
		return ClassMissing
	case ErrCodeNetwork, ErrCodeTimeout:
		return ClassUpstream
	}
	return ClassInternal
}

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	s := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap returns an Error with code and a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// As returns the first *Error in err's chain, or nil.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// Is reports whether the first *Error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	if e := As(err); e != nil {
		return e.Code
	}
	return ""
}

// UserMessage is err without the code prefix: the message, then the cause
// after a colon. Errors without a code are returned as is.
func UserMessage(err error) string {
	e := As(err)
	if e == nil {
		return err.Error()
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

// IsClientError reports whether err was caused by bad input.
func IsClientError(err error) bool {
	return GetCode(err).Class() == ClassInput
}
