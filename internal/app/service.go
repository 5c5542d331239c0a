package app

import (
	"context"
	"log/slog"

	"github.com/neomorfeo/rosteriq/internal/domain"
)

// RosterService orchestrates signups against the roster engine. It gates
// every mutating call on caller identity, delegates the atomic decision to
// the store, and schedules the post-promotion notification.
type RosterService struct {
	store     domain.RosterStore
	publisher domain.NotificationPublisher
}

// NewRosterService creates a service with the given adapters.
func NewRosterService(store domain.RosterStore, publisher domain.NotificationPublisher) *RosterService {
	return &RosterService{
		store:     store,
		publisher: publisher,
	}
}

// Join admits the user to the event, confirmed if a seat is open and
// waitlisted otherwise. Admission never triggers a notification.
func (s *RosterService) Join(ctx context.Context, callerID, eventID, userID string, answers map[string]*bool) (domain.RosterEntry, error) {
	if err := authorize(callerID, userID); err != nil {
		return domain.RosterEntry{}, err
	}

	return s.store.Admit(ctx, eventID, userID, answers)
}

// Leave withdraws the user's active entry. When the departure frees a seat
// the store promotes the longest-waiting entrant in the same transaction,
// and a best-effort notification is scheduled for them. A notification
// failure is logged and dropped: the withdrawal and promotion have already
// committed and must not be reversed.
func (s *RosterService) Leave(ctx context.Context, callerID, eventID, userID string) (domain.WithdrawResult, error) {
	if err := authorize(callerID, userID); err != nil {
		return domain.WithdrawResult{}, err
	}

	result, err := s.store.Withdraw(ctx, eventID, userID)
	if err != nil {
		return domain.WithdrawResult{}, err
	}

	if result.Promoted != nil {
		if err := s.publisher.Publish(ctx, *result.Promoted); err != nil {
			slog.ErrorContext(ctx, "scheduling promotion notification failed",
				"event_id", eventID,
				"promoted_user_id", result.Promoted.UserID,
				"error", err,
			)
		}
	}

	return result, nil
}

// Roster returns every entry for the event in arrival order.
func (s *RosterService) Roster(ctx context.Context, eventID string) ([]domain.RosterEntry, error) {
	return s.store.ListByEvent(ctx, eventID)
}

// authorize allows a caller to act only on their own signup. Acting on
// another user's behalf is a deliberate extension point, not a granted
// permission: the check never defaults to allow.
func authorize(callerID, targetID string) error {
	if callerID != targetID {
		return &domain.UnauthorizedError{CallerID: callerID, TargetID: targetID}
	}
	return nil
}
