package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/neomorfeo/rosteriq/internal/domain"
)

// EventRepository implements domain.EventRepository using SQLite.
type EventRepository struct {
	db *sql.DB
}

// Compile-time check: EventRepository implements domain.EventRepository.
var _ domain.EventRepository = (*EventRepository)(nil)

// NewEventRepository wraps an already-migrated database connection.
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, e domain.Event) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO events (id, name, capacity, creator_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Name, e.Capacity, e.CreatorID,
		e.CreatedAt.Format(timeFormat),
		e.UpdatedAt.Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}
	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (domain.Event, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, capacity, creator_id, created_at, updated_at
		 FROM events WHERE id = ?`, id,
	)

	var e domain.Event
	var createdAt, updatedAt string

	err := row.Scan(&e.ID, &e.Name, &e.Capacity, &e.CreatorID, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Event{}, domain.ErrEventNotFound
		}
		return domain.Event{}, fmt.Errorf("scanning event: %w", err)
	}

	e.CreatedAt, _ = time.Parse(timeFormat, createdAt)
	e.UpdatedAt, _ = time.Parse(timeFormat, updatedAt)

	return e, nil
}

func (r *EventRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Event, error) {
	query := `SELECT id, name, capacity, creator_id, created_at, updated_at
	 FROM events ORDER BY created_at DESC`
	var args []any

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		var createdAt, updatedAt string
		if err := rows.Scan(&e.ID, &e.Name, &e.Capacity, &e.CreatorID, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning event row: %w", err)
		}
		e.CreatedAt, _ = time.Parse(timeFormat, createdAt)
		e.UpdatedAt, _ = time.Parse(timeFormat, updatedAt)
		events = append(events, e)
	}

	return events, rows.Err()
}
