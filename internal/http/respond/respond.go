// Package respond writes result envelopes as HTTP responses.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/tankops/internal/apperr"
	"github.com/MrJamesThe3rd/tankops/internal/result"
)

const maxBodyBytes = 1 << 20

// Status maps an error to its HTTP status code.
func Status(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindCapacityExceeded, apperr.KindInsufficientRemainingVolume, apperr.KindAlreadyProcessed:
		return http.StatusConflict
	case apperr.KindDeliveredVolumeRequired:
		return http.StatusUnprocessableEntity
	case apperr.KindTransactionTimeout:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func JSON(w http.ResponseWriter, log *zap.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response", zap.Error(err))
	}
}

// OK writes a success envelope around data.
func OK[T any](w http.ResponseWriter, log *zap.Logger, status int, data T, message string) {
	JSON(w, log, status, result.OK(data, message))
}

// Error writes a failure envelope. Errors outside the domain taxonomy are
// logged here, since the envelope hides them from the client.
func Error(w http.ResponseWriter, log *zap.Logger, err error) {
	status := Status(err)
	if status >= http.StatusInternalServerError && apperr.KindOf(err) != apperr.KindTransactionTimeout {
		log.Error("request failed", zap.Error(err))
	}

	JSON(w, log, status, result.Fail[struct{}](err))
}

// Decode reads a JSON body into dst, rejecting unknown fields and bodies
// over 1 MiB.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		msg := err.Error()
		if errors.Is(err, io.EOF) {
			msg = "body must not be empty"
		}

		return apperr.Validation("invalid request body", map[string][]string{"body": {msg}})
	}

	if dec.More() {
		return apperr.Validation("invalid request body", map[string][]string{"body": {"must contain a single JSON object"}})
	}

	return nil
}

// InvalidParam is the error for a malformed path or query parameter.
func InvalidParam(name, value string) error {
	return apperr.Validation("invalid request", map[string][]string{name: {fmt.Sprintf("%q is not valid", value)}})
}
