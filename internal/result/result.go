// Package result holds the uniform envelope returned across the module
// boundary: HTTP responses and the CLI's JSON output.
package result

import (
	"errors"

	"github.com/MrJamesThe3rd/tankops/internal/apperr"
)

const genericFailure = "the operation could not be completed"

// Result is the envelope for every operation outcome.
type Result[T any] struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    *T                  `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
	Code    apperr.Kind         `json:"code,omitempty"`
}

// OK wraps a successful outcome.
func OK[T any](data T, message string) Result[T] {
	return Result[T]{Success: true, Message: message, Data: &data}
}

// Fail converts an error into a failed envelope. Errors outside the domain
// taxonomy are reported generically so infrastructure details do not leak.
func Fail[T any](err error) Result[T] {
	var e *apperr.Error
	if !errors.As(err, &e) {
		return Result[T]{Message: genericFailure}
	}

	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}

	return Result[T]{Message: msg, Errors: e.Fields, Code: e.Kind}
}

// From builds the envelope from a (value, error) pair.
func From[T any](data T, err error, message string) Result[T] {
	if err != nil {
		return Fail[T](err)
	}

	return OK(data, message)
}
