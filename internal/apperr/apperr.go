// Package apperr defines the error kinds shared by services, repositories
// and HTTP handlers. Handlers translate a kind to a status code; the message
// is the client-facing text and the wrapped cause is only ever logged.
package apperr

import "errors"

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindUnauthorized
	KindNotFound
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation_error"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindPersistence:
		return "persistence_error"
	default:
		return "internal_error"
	}
}

// Error is a classified error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Persistence wraps a store failure. The cause is kept for logs.
func Persistence(message string, cause error) *Error {
	return &Error{Kind: KindPersistence, Message: message, Err: cause}
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
