package service

import (
	"errors"
	"fmt"
)

// Code is a stable, client-facing error code. The ordering UI switches on
// these to tell the member which resolution step failed; a blanket
// "something went wrong" is useless with a multi-tier matcher in the path.
type Code string

const (
	CodeMemberNotFound  Code = "MemberNotFound"
	CodePizzaNotFound   Code = "PizzaNotFound"
	CodeSlotUnavailable Code = "SlotUnavailable"
	CodeNightNotFound   Code = "NightNotFound"
	CodeOrderNotFound   Code = "OrderNotFound"
	CodeNotAuthorized   Code = "NotAuthorized"
	CodeStoreError      Code = "StoreError"
)

// Error carries a code alongside a human-readable message. Store errors wrap
// the underlying failure for the log while the client sees only the code.
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

func (e *Error) Unwrap() error { return e.Err }

func newError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func storeError(op string, err error) *Error {
	return &Error{Code: CodeStoreError, Message: op + " failed, please retry", Err: err}
}

// CodeOf extracts the service code from an error chain; unknown errors map
// to StoreError so the client always gets a retryable generic failure.
func CodeOf(err error) Code {
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return CodeStoreError
}

// MessageOf returns the client-facing message for an error chain.
func MessageOf(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Message
	}
	return "unexpected failure, please retry"
}
