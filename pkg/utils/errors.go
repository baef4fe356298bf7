package utils

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so handlers can tell "try again" apart
// from "fix your input" and "contact support".
type Kind string

const (
	KindAvailability Kind = "availability" // gateway host unreachable or still starting
	KindValidation   Kind = "validation"   // empty/invalid cart, missing identifiers
	KindConflict     Kind = "conflict"     // slot no longer available
	KindGateway      Kind = "gateway"      // redirect hand-off exhausted its retries
	KindConsistency  Kind = "consistency"  // post-payment verification failed
	KindNotFound     Kind = "not_found"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E builds a taxonomy error with a formatted message.
func E(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapE attaches an upstream error to a taxonomy error.
func WrapE(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the taxonomy kind of err, or "" for plain internal errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
