package river

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/riverqueue/river"

	"github.com/neomorfeo/rosteriq/internal/domain"
)

// Compile-time check: Publisher implements domain.NotificationPublisher.
var _ domain.NotificationPublisher = (*Publisher)(nil)

// NotifyArgs carries the data needed to tell a promoted user they now hold
// a seat. River serializes this as JSON into its job queue table. It
// includes a snapshot of the promoted entry, so the worker never needs to
// query the database.
type NotifyArgs struct {
	UserID   string `json:"user_id"`
	EventID  string `json:"event_id"`
	EntryID  string `json:"entry_id"`
	Position int64  `json:"position"`
}

// Kind returns the unique job type identifier used by River's job routing.
func (NotifyArgs) Kind() string { return "roster.promotion_notify" }

// Client is the River client type parameterized for SQLite (*sql.Tx).
type Client = river.Client[*sql.Tx]

// Publisher implements domain.NotificationPublisher by enqueuing River jobs.
type Publisher struct {
	client *Client
}

// NewPublisher creates a publisher backed by the given River client.
func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// Publish enqueues a promotion notification as an async job in River.
// The notification contract is at-most-one attempt with a logged outcome,
// so the job never retries.
func (p *Publisher) Publish(ctx context.Context, promoted domain.RosterEntry) error {
	_, err := p.client.Insert(ctx, NotifyArgs{
		UserID:   promoted.UserID,
		EventID:  promoted.EventID,
		EntryID:  promoted.ID,
		Position: promoted.Position,
	}, &river.InsertOpts{MaxAttempts: 1})
	if err != nil {
		return fmt.Errorf("enqueuing notification job: %w", err)
	}
	return nil
}
