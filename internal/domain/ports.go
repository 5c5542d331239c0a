package domain

import "context"

// EventRepository defines the persistence contract for events.
type EventRepository interface {
	Create(ctx context.Context, event Event) error
	GetByID(ctx context.Context, id string) (Event, error)
	List(ctx context.Context, filter ListFilter) ([]Event, error)
}

// ListFilter holds optional criteria for listing events.
type ListFilter struct {
	Limit  int
	Offset int
}

// RosterStore defines the transactional contract for the admission and
// promotion engine. Admit and Withdraw each execute as a single atomic
// unit: the store serializes conflicting calls and retries transient
// contention internally, so callers see exactly one outcome.
type RosterStore interface {
	// Admit creates a new entry for the user, confirmed if a seat is open
	// and waitlisted otherwise.
	Admit(ctx context.Context, eventID, userID string, answers map[string]*bool) (RosterEntry, error)
	// Withdraw marks the user's active entry withdrawn. When a confirmed
	// entry leaves, the longest-waiting waitlisted entry (minimum position)
	// is promoted in the same transaction.
	Withdraw(ctx context.Context, eventID, userID string) (WithdrawResult, error)
	// ListByEvent returns every entry for the event in arrival order.
	ListByEvent(ctx context.Context, eventID string) ([]RosterEntry, error)
}

// WithdrawResult describes the outcome of a withdrawal.
type WithdrawResult struct {
	RemovedFrom Status
	// Promoted is the waitlisted entry that took the freed seat, or nil
	// when the withdrawal came from the waitlist or the waitlist was empty.
	Promoted *RosterEntry
}

// NotificationPublisher defines the contract for scheduling a promotion
// notification. Delivery is best-effort: a failed publish never reverses
// the promotion it announces.
type NotificationPublisher interface {
	Publish(ctx context.Context, promoted RosterEntry) error
}

// TransitionValidator checks whether an action is allowed from the current
// status and returns the resulting status.
type TransitionValidator interface {
	Apply(ctx context.Context, current Status, action Action) (Status, error)
}

// IdentityResolver turns a caller-supplied credential into a stable user
// identifier. Implementations differ in where identity comes from (bearer
// token verification, session headers from an auth proxy).
type IdentityResolver interface {
	Resolve(ctx context.Context, credential string) (string, error)
}
