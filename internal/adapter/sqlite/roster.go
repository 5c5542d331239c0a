package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/neomorfeo/rosteriq/internal/domain"
)

// RosterStore implements domain.RosterStore using SQLite. Every Admit and
// Withdraw runs as one transaction against the shared single-connection
// pool, so the confirmed count, the duplicate check, and the min-position
// waitlist read are all taken from the same snapshot the writes commit
// against.
type RosterStore struct {
	db        *sql.DB
	validator domain.TransitionValidator
}

// Compile-time check: RosterStore implements domain.RosterStore.
var _ domain.RosterStore = (*RosterStore)(nil)

// NewRosterStore wraps an already-migrated database connection. The
// validator guards every in-place status change.
func NewRosterStore(db *sql.DB, validator domain.TransitionValidator) *RosterStore {
	return &RosterStore{db: db, validator: validator}
}

func (s *RosterStore) Admit(ctx context.Context, eventID, userID string, answers map[string]*bool) (domain.RosterEntry, error) {
	var entry domain.RosterEntry

	err := inTx(ctx, s.db, func(tx *sql.Tx) error {
		var capacity int
		err := tx.QueryRowContext(ctx,
			`SELECT capacity FROM events WHERE id = ?`, eventID,
		).Scan(&capacity)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrEventNotFound
			}
			return fmt.Errorf("reading event capacity: %w", err)
		}

		var active int
		err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM roster_entries
			 WHERE event_id = ? AND user_id = ? AND status IN ('confirmed', 'waitlisted')`,
			eventID, userID,
		).Scan(&active)
		if err != nil {
			return fmt.Errorf("checking for active entry: %w", err)
		}
		if active > 0 {
			return &domain.DuplicateEntryError{EventID: eventID, UserID: userID}
		}

		confirmed, err := s.confirmedCount(ctx, tx, eventID)
		if err != nil {
			return err
		}

		// Positions only ever grow: withdrawn rows are kept, so MAX covers
		// every entry ever created for the event.
		var position int64
		err = tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(position), 0) + 1 FROM roster_entries WHERE event_id = ?`,
			eventID,
		).Scan(&position)
		if err != nil {
			return fmt.Errorf("allocating position: %w", err)
		}

		status := domain.StatusWaitlisted
		if confirmed < capacity {
			status = domain.StatusConfirmed
		}

		entry = domain.NewRosterEntry(uuid.NewString(), eventID, userID, status, position, answers)

		answersJSON, err := json.Marshal(entry.Answers)
		if err != nil {
			return fmt.Errorf("encoding answers: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO roster_entries (id, event_id, user_id, status, position, answers, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			entry.ID, entry.EventID, entry.UserID, string(entry.Status), entry.Position, string(answersJSON),
			entry.CreatedAt.Format(timeFormat),
			entry.UpdatedAt.Format(timeFormat),
		)
		if err != nil {
			if isUniqueViolation(err) {
				return &domain.DuplicateEntryError{EventID: eventID, UserID: userID}
			}
			return fmt.Errorf("inserting roster entry: %w", err)
		}

		return s.checkCapacity(ctx, tx, eventID, capacity)
	})
	if err != nil {
		return domain.RosterEntry{}, err
	}

	return entry, nil
}

func (s *RosterStore) Withdraw(ctx context.Context, eventID, userID string) (domain.WithdrawResult, error) {
	var result domain.WithdrawResult

	err := inTx(ctx, s.db, func(tx *sql.Tx) error {
		result = domain.WithdrawResult{}

		row := tx.QueryRowContext(ctx,
			`SELECT id, event_id, user_id, status, position, answers, created_at, updated_at
			 FROM roster_entries
			 WHERE event_id = ? AND user_id = ? AND status IN ('confirmed', 'waitlisted')`,
			eventID, userID,
		)
		entry, err := scanEntry(row)
		if err != nil {
			return err
		}

		withdrawn, err := s.validator.Apply(ctx, entry.Status, domain.ActionWithdraw)
		if err != nil {
			return err
		}
		if err := s.setStatus(ctx, tx, entry.ID, withdrawn); err != nil {
			return err
		}
		result.RemovedFrom = entry.Status

		// A waitlist departure frees no seat, so nobody moves up.
		if entry.Status != domain.StatusConfirmed {
			return nil
		}

		row = tx.QueryRowContext(ctx,
			`SELECT id, event_id, user_id, status, position, answers, created_at, updated_at
			 FROM roster_entries
			 WHERE event_id = ? AND status = 'waitlisted'
			 ORDER BY position ASC
			 LIMIT 1`,
			eventID,
		)
		next, err := scanEntry(row)
		if err != nil {
			if errors.Is(err, domain.ErrEntryNotFound) {
				return nil
			}
			return err
		}

		promoted, err := s.validator.Apply(ctx, next.Status, domain.ActionPromote)
		if err != nil {
			return err
		}
		if err := s.setStatus(ctx, tx, next.ID, promoted); err != nil {
			return err
		}

		next.Status = promoted
		result.Promoted = &next
		return nil
	})
	if err != nil {
		return domain.WithdrawResult{}, err
	}

	return result, nil
}

func (s *RosterStore) ListByEvent(ctx context.Context, eventID string) ([]domain.RosterEntry, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM events WHERE id = ?`, eventID,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("checking event: %w", err)
	}
	if exists == 0 {
		return nil, domain.ErrEventNotFound
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, event_id, user_id, status, position, answers, created_at, updated_at
		 FROM roster_entries
		 WHERE event_id = ?
		 ORDER BY position ASC`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing roster entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.RosterEntry
	for rows.Next() {
		entry, err := scanEntryFromRows(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (s *RosterStore) setStatus(ctx context.Context, tx *sql.Tx, entryID string, status domain.Status) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE roster_entries SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now().UTC().Format(timeFormat), entryID,
	)
	if err != nil {
		return fmt.Errorf("updating entry status: %w", err)
	}
	return nil
}

func (s *RosterStore) confirmedCount(ctx context.Context, tx *sql.Tx, eventID string) (int, error) {
	var confirmed int
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM roster_entries WHERE event_id = ? AND status = 'confirmed'`,
		eventID,
	).Scan(&confirmed)
	if err != nil {
		return 0, fmt.Errorf("counting confirmed entries: %w", err)
	}
	return confirmed, nil
}

// checkCapacity re-reads the confirmed count after the transaction's writes.
// A count above capacity means the engine itself is broken; the transaction
// is aborted rather than committing an oversubscribed roster.
func (s *RosterStore) checkCapacity(ctx context.Context, tx *sql.Tx, eventID string, capacity int) error {
	confirmed, err := s.confirmedCount(ctx, tx, eventID)
	if err != nil {
		return err
	}
	if confirmed > capacity {
		return fmt.Errorf("event %s has %d confirmed entries for capacity %d", eventID, confirmed, capacity)
	}
	return nil
}

// scanEntry scans a single row from QueryRow into a domain.RosterEntry.
func scanEntry(row *sql.Row) (domain.RosterEntry, error) {
	var entry domain.RosterEntry
	var status, answersJSON, createdAt, updatedAt string

	err := row.Scan(&entry.ID, &entry.EventID, &entry.UserID, &status, &entry.Position, &answersJSON, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.RosterEntry{}, domain.ErrEntryNotFound
		}
		return domain.RosterEntry{}, fmt.Errorf("scanning roster entry: %w", err)
	}

	return decodeEntry(entry, status, answersJSON, createdAt, updatedAt)
}

// scanEntryFromRows scans a single row from Rows (used in ListByEvent).
func scanEntryFromRows(rows *sql.Rows) (domain.RosterEntry, error) {
	var entry domain.RosterEntry
	var status, answersJSON, createdAt, updatedAt string

	err := rows.Scan(&entry.ID, &entry.EventID, &entry.UserID, &status, &entry.Position, &answersJSON, &createdAt, &updatedAt)
	if err != nil {
		return domain.RosterEntry{}, fmt.Errorf("scanning roster entry row: %w", err)
	}

	return decodeEntry(entry, status, answersJSON, createdAt, updatedAt)
}

func decodeEntry(entry domain.RosterEntry, status, answersJSON, createdAt, updatedAt string) (domain.RosterEntry, error) {
	entry.Status = domain.Status(status)
	if err := json.Unmarshal([]byte(answersJSON), &entry.Answers); err != nil {
		return domain.RosterEntry{}, fmt.Errorf("decoding answers: %w", err)
	}
	entry.CreatedAt, _ = time.Parse(timeFormat, createdAt)
	entry.UpdatedAt, _ = time.Parse(timeFormat, updatedAt)
	return entry, nil
}
