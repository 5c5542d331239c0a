package domain

import "time"

// Status represents the lifecycle state of a roster entry.
type Status string

const (
	StatusConfirmed  Status = "confirmed"
	StatusWaitlisted Status = "waitlisted"
	StatusWithdrawn  Status = "withdrawn"
)

// Action represents an operation that moves an existing roster entry
// between states. Admission is not an Action: it creates the entry
// directly in its initial state.
type Action string

const (
	ActionWithdraw Action = "withdraw"
	ActionPromote  Action = "promote"
)

// Transition defines a valid state change: an action moves an entry from Src to Dst.
type Transition struct {
	Action Action
	Src    Status
	Dst    Status
}

// Transitions defines all valid state changes in the roster entry lifecycle.
// Withdrawn is terminal; a user who withdrew re-enters with a brand-new entry.
// This is domain knowledge consumed by the FSM adapter.
var Transitions = []Transition{
	{Action: ActionWithdraw, Src: StatusConfirmed, Dst: StatusWithdrawn},
	{Action: ActionWithdraw, Src: StatusWaitlisted, Dst: StatusWithdrawn},
	{Action: ActionPromote, Src: StatusWaitlisted, Dst: StatusConfirmed},
}

// Event is an organizer-created gathering with a fixed attendee capacity.
// Capacity is immutable once the event exists; the roster engine only
// ever reads it.
type Event struct {
	ID        string
	Name      string
	Capacity  int
	CreatorID string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewEvent creates an event with the given capacity, owned by its creator.
func NewEvent(id, name string, capacity int, creatorID string) Event {
	now := time.Now().UTC()
	return Event{
		ID:        id,
		Name:      name,
		Capacity:  capacity,
		CreatorID: creatorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// RosterEntry records one user's signup against one event. Position is a
// per-event strictly increasing sequence number that establishes FIFO
// arrival order; it is never reused, so relative order stays recoverable
// after withdrawals. Answers maps prompt IDs to the user's yes/no/blank
// responses collected at signup.
type RosterEntry struct {
	ID        string
	EventID   string
	UserID    string
	Status    Status
	Position  int64
	Answers   map[string]*bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewRosterEntry creates an entry in its initial admission state.
func NewRosterEntry(id, eventID, userID string, status Status, position int64, answers map[string]*bool) RosterEntry {
	now := time.Now().UTC()
	return RosterEntry{
		ID:        id,
		EventID:   eventID,
		UserID:    userID,
		Status:    status,
		Position:  position,
		Answers:   answers,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Active reports whether the entry still occupies a place on the roster,
// either holding a seat or waiting for one.
func (e RosterEntry) Active() bool {
	return e.Status == StatusConfirmed || e.Status == StatusWaitlisted
}
