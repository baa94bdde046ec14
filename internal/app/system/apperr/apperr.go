// internal/app/system/apperr/apperr.go

// Package apperr defines the error taxonomy shared by stores, policies, and
// handlers. Every error here is local and recoverable: it describes why one
// operation failed, carries enough context to show the caller a message, and
// is never retried by the server (retrying "group is full" without new input
// is meaningless). Storage failures are the only category a caller may
// sensibly retry.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound covers missing and deactivated resources alike; a
	// soft-deleted group is indistinguishable from one that never existed.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the caller is authenticated but lacks membership or
	// ownership for the action.
	ErrForbidden = errors.New("forbidden")

	// ErrInviteRequired means a private group's invite code was missing or
	// did not match.
	ErrInviteRequired = errors.New("invitation required to join this group")

	ErrAlreadyMember      = errors.New("user is already a member of this group")
	ErrNotAMember         = errors.New("user is not a member of this group")
	ErrGroupFull          = errors.New("group has reached its member limit")
	ErrCreatorCannotLeave = errors.New("the group creator cannot leave; transfer ownership or delete the group instead")
	ErrAlreadyReviewed    = errors.New("you have already reviewed this destination")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validation builds a *ValidationError.
func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Status maps an error to the HTTP status a JSON handler should return.
// Unknown errors are treated as storage/internal failures.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrInviteRequired):
		return http.StatusForbidden
	case errors.Is(err, ErrAlreadyMember),
		errors.Is(err, ErrNotAMember),
		errors.Is(err, ErrGroupFull),
		errors.Is(err, ErrCreatorCannotLeave),
		errors.Is(err, ErrAlreadyReviewed):
		return http.StatusConflict
	case IsValidation(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
