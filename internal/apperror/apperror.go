// Package apperror defines the error taxonomy shared by repositories,
// services and the HTTP layer. Store-specific errors are translated into
// these variants once, at the storage adapter boundary.
package apperror

import (
	"errors"
	"fmt"
)

// Kind discriminates the error variants.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindConflict
	KindExternalService
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindExternalService:
		return "external_service"
	default:
		return "unknown"
	}
}

// Error carries a stable, caller-facing message plus the wrapped cause.
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

// Is makes errors.Is match any error of the same kind, so callers can test
// against the exported sentinels below without caring about the message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && (t.Message == "" || t.Message == e.Message)
}

// Sentinels for errors.Is checks.
var (
	ErrValidation      = &Error{Kind: KindValidation}
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrConflict        = &Error{Kind: KindConflict}
	ErrExternalService = &Error{Kind: KindExternalService}
)

// Validation returns a ValidationError with the given message.
func Validation(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

// Validationf returns a formatted ValidationError.
func Validationf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound returns a NotFoundError with the given message.
func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Conflict returns a ConflictError with the given message.
func Conflict(msg string) error {
	return &Error{Kind: KindConflict, Message: msg}
}

// ConflictWrap returns a ConflictError that preserves the underlying cause,
// typically a unique constraint violation reported by the store.
func ConflictWrap(msg string, cause error) error {
	return &Error{Kind: KindConflict, Message: msg, Err: cause}
}

// ExternalService returns an ExternalServiceError wrapping the cause.
func ExternalService(msg string, cause error) error {
	return &Error{Kind: KindExternalService, Message: msg, Err: cause}
}

// KindOf reports the kind of err, or ok=false when err is not part of the
// taxonomy.
func KindOf(err error) (Kind, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind, true
	}
	return 0, false
}

// Message returns the stable message of err, falling back to err.Error().
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return err.Error()
}
