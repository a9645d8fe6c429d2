// Package apperr holds the single error type every workflow returns.
package apperr

import (
	"errors"
	"strings"
)

type Kind string

const (
	KindNotFound           Kind = "not_found"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindDuplicateEmail     Kind = "duplicate_email"
	KindDuplicatePhone     Kind = "duplicate_phone"
	KindDuplicateBooking   Kind = "duplicate_booking"
	KindConflict           Kind = "conflict"
	KindInvalid            Kind = "invalid"
	KindUnauthorized       Kind = "unauthorized"
	KindRequestFailed      Kind = "request_failed"
)

// Sentinels for errors.Is; they match any *Error of the same kind.
var (
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials}
	ErrDuplicateEmail     = &Error{Kind: KindDuplicateEmail}
	ErrDuplicatePhone     = &Error{Kind: KindDuplicatePhone}
	ErrDuplicateBooking   = &Error{Kind: KindDuplicateBooking}
	ErrConflict           = &Error{Kind: KindConflict}
	ErrInvalid            = &Error{Kind: KindInvalid}
	ErrUnauthorized       = &Error{Kind: KindUnauthorized}
	ErrRequestFailed      = &Error{Kind: KindRequestFailed}
)

// FieldError attaches a failure to a single form field.
type FieldError struct {
	Field   string `json:"field"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Err     error
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Fields builds an error from field-level failures. The error kind is the
// kind of the first field.
func Fields(fields ...FieldError) *Error {
	if len(fields) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, f.Message)
	}
	return &Error{Kind: fields[0].Kind, Message: strings.Join(msgs, "; "), Fields: fields}
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or
// KindRequestFailed for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindRequestFailed
}

// FieldsOf returns the field-level failures carried by err, if any.
func FieldsOf(err error) []FieldError {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}
	return nil
}
