// internal/app/system/webjson/webjson.go

// Package webjson holds the request/response helpers shared by the JSON API
// features: strict body decoding with a size cap, response encoding, and the
// mapping from the apperr taxonomy to HTTP statuses.
package webjson

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/voyagehq/voyagehub/internal/app/system/apperr"
	"go.uber.org/zap"
)

// errorBody is the uniform JSON error envelope.
type errorBody struct {
	Error string `json:"error"`
}

// Decode reads a JSON body into v, rejecting unknown fields, trailing data,
// and bodies larger than maxBytes. Failures come back as validation errors so
// handlers can pass them straight to WriteError.
func Decode(w http.ResponseWriter, r *http.Request, v any, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperr.Validation("body", "request body too large")
		}
		return apperr.Validation("body", "malformed JSON request body")
	}
	if dec.More() {
		return apperr.Validation("body", "request body must contain a single JSON object")
	}
	// Drain so keep-alive connections can be reused.
	_, _ = io.Copy(io.Discard, r.Body)
	return nil
}

// Write encodes v with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("webjson: encode response failed", zap.Error(err))
	}
}

// WriteError maps err through apperr.Status and writes the error envelope.
// Internal errors are logged and replaced with a generic message so storage
// details never reach the client.
func WriteError(w http.ResponseWriter, log *zap.Logger, err error) {
	status := apperr.Status(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		if log != nil {
			log.Error("request failed", zap.Error(err))
		}
		msg = "internal server error"
	}
	Write(w, status, errorBody{Error: msg})
}
