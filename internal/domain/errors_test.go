package domain_test

import (
	"testing"

	"github.com/neomorfeo/rosteriq/internal/domain"
)

func TestDuplicateEntryError_Error(t *testing.T) {
	err := &domain.DuplicateEntryError{EventID: "e-1", UserID: "u-1"}
	want := `user "u-1" already has an active entry for event "e-1"`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestUnauthorizedError_Error(t *testing.T) {
	err := &domain.UnauthorizedError{CallerID: "u-1", TargetID: "u-2"}
	want := `caller "u-1" may not act on behalf of user "u-2"`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestTransitionError_Error(t *testing.T) {
	err := &domain.TransitionError{
		Action:  domain.ActionPromote,
		Current: domain.StatusConfirmed,
	}
	want := `action "promote" is not valid from state "confirmed"`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestConflictError_Error(t *testing.T) {
	err := &domain.ConflictError{Attempts: 5}
	want := "transaction conflict not resolved after 5 attempts"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
