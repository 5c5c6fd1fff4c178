// Package apperr defines the error taxonomy shared by the inventory, ledger
// and unload services.
package apperr

import (
	"errors"
	"fmt"
)

// Kind categorizes an error so that callers can react without string matching.
type Kind string

const (
	KindValidation                  Kind = "VALIDATION_ERROR"
	KindNotFound                    Kind = "NOT_FOUND"
	KindCapacityExceeded            Kind = "CAPACITY_EXCEEDED"
	KindInsufficientRemainingVolume Kind = "INSUFFICIENT_REMAINING_VOLUME"
	KindDeliveredVolumeRequired     Kind = "DELIVERED_VOLUME_REQUIRED"
	KindAlreadyProcessed            Kind = "ALREADY_PROCESSED"
	KindInconsistentState           Kind = "INCONSISTENT_STATE"
	KindTransactionTimeout          Kind = "TRANSACTION_TIMEOUT"
)

// Sentinels for errors.Is. Any *Error with the same Kind matches.
var (
	ErrValidation                  = &Error{Kind: KindValidation}
	ErrNotFound                    = &Error{Kind: KindNotFound}
	ErrCapacityExceeded            = &Error{Kind: KindCapacityExceeded}
	ErrInsufficientRemainingVolume = &Error{Kind: KindInsufficientRemainingVolume}
	ErrDeliveredVolumeRequired     = &Error{Kind: KindDeliveredVolumeRequired}
	ErrAlreadyProcessed            = &Error{Kind: KindAlreadyProcessed}
	ErrInconsistentState           = &Error{Kind: KindInconsistentState}
	ErrTransactionTimeout          = &Error{Kind: KindTransactionTimeout}
)

// Error is a domain error carrying a human readable message and, for
// validation failures, the offending fields.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string][]string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}

	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Kind == e.Kind
}

// New creates an error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an error of the given kind around a cause.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// Validation creates a validation error with per-field messages.
func Validation(message string, fields map[string][]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// NotFound is shorthand for a missing entity.
func NotFound(entity string, id fmt.Stringer) *Error {
	return New(KindNotFound, "%s %s not found", entity, id)
}

// KindOf returns the kind of the first *Error in the chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return ""
}

// Retryable reports whether the operation may be retried as a whole.
func Retryable(err error) bool {
	return KindOf(err) == KindTransactionTimeout
}
