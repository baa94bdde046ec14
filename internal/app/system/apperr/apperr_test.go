package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrForbidden, http.StatusForbidden},
		{ErrInviteRequired, http.StatusForbidden},
		{ErrAlreadyMember, http.StatusConflict},
		{ErrNotAMember, http.StatusConflict},
		{ErrGroupFull, http.StatusConflict},
		{ErrCreatorCannotLeave, http.StatusConflict},
		{Validation("content", "must be 1-1000 characters"), http.StatusUnprocessableEntity},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := Status(tt.err); got != tt.want {
			t.Errorf("Status(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestStatus_WrappedSentinel(t *testing.T) {
	err := fmt.Errorf("join group: %w", ErrGroupFull)
	if got := Status(err); got != http.StatusConflict {
		t.Errorf("Status(wrapped ErrGroupFull) = %d, want %d", got, http.StatusConflict)
	}
}

func TestValidationError_Message(t *testing.T) {
	err := Validation("name", "is required")
	if err.Error() != "name: is required" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !IsValidation(err) {
		t.Error("IsValidation() = false, want true")
	}
	if IsValidation(ErrNotFound) {
		t.Error("IsValidation(ErrNotFound) = true, want false")
	}
}
