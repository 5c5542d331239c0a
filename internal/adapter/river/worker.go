package river

import (
	"context"
	"log/slog"

	"github.com/riverqueue/river"
)

// NotifyWorker processes promotion notification jobs from the River queue.
// For now it logs the delivery; future versions will hand the message to
// an email or push channel. A failed delivery is dropped, never retried:
// the promotion it announces has already committed.
type NotifyWorker struct {
	river.WorkerDefaults[NotifyArgs]
}

// Work processes a single notification job.
func (w *NotifyWorker) Work(ctx context.Context, job *river.Job[NotifyArgs]) error {
	slog.InfoContext(ctx, "notifying promoted user",
		"user_id", job.Args.UserID,
		"event_id", job.Args.EventID,
		"position", job.Args.Position,
		"job_id", job.ID,
	)
	return nil
}
