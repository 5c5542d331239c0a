package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/neomorfeo/rosteriq/internal/domain"
)

// maxCapacity bounds event size to keep roster scans cheap.
const maxCapacity = 100_000

// EventService orchestrates event creation and lookup.
type EventService struct {
	repo domain.EventRepository
}

// NewEventService creates a service with the given repository.
func NewEventService(repo domain.EventRepository) *EventService {
	return &EventService{repo: repo}
}

// Create validates and persists a new event owned by the caller.
func (s *EventService) Create(ctx context.Context, name string, capacity int, creatorID string) (domain.Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Event{}, fmt.Errorf("event name is required")
	}
	if capacity < 1 {
		return domain.Event{}, fmt.Errorf("capacity must be a positive integer")
	}
	if capacity > maxCapacity {
		return domain.Event{}, fmt.Errorf("capacity cannot exceed %d", maxCapacity)
	}

	event := domain.NewEvent(uuid.NewString(), name, capacity, creatorID)

	if err := s.repo.Create(ctx, event); err != nil {
		return domain.Event{}, fmt.Errorf("creating event: %w", err)
	}

	return event, nil
}

// GetByID returns an event by its unique identifier.
func (s *EventService) GetByID(ctx context.Context, id string) (domain.Event, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns events matching the given filter.
func (s *EventService) List(ctx context.Context, filter domain.ListFilter) ([]domain.Event, error) {
	return s.repo.List(ctx, filter)
}
