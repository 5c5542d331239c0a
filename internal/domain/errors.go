package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for simple conditions without extra context.
var (
	ErrEventNotFound   = errors.New("event not found")
	ErrEntryNotFound   = errors.New("roster entry not found")
	ErrUnauthenticated = errors.New("caller identity could not be resolved")
)

// DuplicateEntryError is returned when a user who already holds an active
// entry (confirmed or waitlisted) tries to join the same event again.
type DuplicateEntryError struct {
	EventID string
	UserID  string
}

func (e *DuplicateEntryError) Error() string {
	return fmt.Sprintf("user %q already has an active entry for event %q", e.UserID, e.EventID)
}

// UnauthorizedError is returned when a caller tries to act on another
// user's signup.
type UnauthorizedError struct {
	CallerID string
	TargetID string
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("caller %q may not act on behalf of user %q", e.CallerID, e.TargetID)
}

// TransitionError is returned when a state transition is not allowed.
type TransitionError struct {
	Action  Action
	Current Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("action %q is not valid from state %q", e.Action, e.Current)
}

// ConflictError is returned when a transaction could not commit within its
// retry budget because of sustained contention on the same roster.
type ConflictError struct {
	Attempts int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("transaction conflict not resolved after %d attempts", e.Attempts)
}
