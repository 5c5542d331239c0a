package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/neomorfeo/rosteriq/internal/domain"
)

// txAttempts bounds how often a transaction is re-run on lock contention
// before the operation fails with a domain.ConflictError.
const txAttempts = 5

const txBackoff = 25 * time.Millisecond

// inTx runs fn inside a transaction and commits it. The whole function is
// re-executed from scratch on transient SQLITE_BUSY contention, so every
// read inside fn sees the post-commit state of whichever writer won the
// race. Domain errors returned by fn abort immediately without retry.
func inTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	backoff := retry.WithMaxRetries(txAttempts-1, retry.NewConstant(txBackoff))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			if isBusy(err) {
				return retry.RetryableError(err)
			}
			return fmt.Errorf("beginning transaction: %w", err)
		}

		if err := fn(tx); err != nil {
			_ = tx.Rollback()
			if isBusy(err) {
				return retry.RetryableError(err)
			}
			return err
		}

		if err := tx.Commit(); err != nil {
			if isBusy(err) {
				return retry.RetryableError(err)
			}
			return fmt.Errorf("committing transaction: %w", err)
		}

		return nil
	})

	if err != nil && isBusy(err) {
		return &domain.ConflictError{Attempts: txAttempts}
	}
	return err
}

// isBusy checks if a SQLite error is transient lock contention.
func isBusy(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

// isUniqueViolation checks if a SQLite error is a UNIQUE constraint violation.
func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
