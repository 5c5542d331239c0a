package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/neomorfeo/rosteriq/internal/domain"
)

const tracerName = "github.com/neomorfeo/rosteriq/internal/adapter/otel"

// TracingStore wraps a domain.RosterStore with OpenTelemetry tracing.
// Each method creates a span with semantic attributes and records errors.
type TracingStore struct {
	next   domain.RosterStore
	tracer trace.Tracer
}

// Compile-time check: TracingStore implements domain.RosterStore.
var _ domain.RosterStore = (*TracingStore)(nil)

// NewTracingStore creates a tracing decorator around the given store.
func NewTracingStore(next domain.RosterStore) *TracingStore {
	return &TracingStore{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (s *TracingStore) Admit(ctx context.Context, eventID, userID string, answers map[string]*bool) (domain.RosterEntry, error) {
	ctx, span := s.tracer.Start(ctx, "RosterStore.Admit",
		trace.WithAttributes(
			attribute.String("event.id", eventID),
			attribute.String("user.id", userID),
		),
	)
	defer span.End()

	entry, err := s.next.Admit(ctx, eventID, userID, answers)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(
			attribute.String("roster.status", string(entry.Status)),
			attribute.Int64("roster.position", entry.Position),
		)
	}
	return entry, err
}

func (s *TracingStore) Withdraw(ctx context.Context, eventID, userID string) (domain.WithdrawResult, error) {
	ctx, span := s.tracer.Start(ctx, "RosterStore.Withdraw",
		trace.WithAttributes(
			attribute.String("event.id", eventID),
			attribute.String("user.id", userID),
		),
	)
	defer span.End()

	result, err := s.next.Withdraw(ctx, eventID, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.String("roster.removed_from", string(result.RemovedFrom)))
		if result.Promoted != nil {
			span.SetAttributes(attribute.String("roster.promoted_user_id", result.Promoted.UserID))
		}
	}
	return result, err
}

func (s *TracingStore) ListByEvent(ctx context.Context, eventID string) ([]domain.RosterEntry, error) {
	ctx, span := s.tracer.Start(ctx, "RosterStore.ListByEvent",
		trace.WithAttributes(attribute.String("event.id", eventID)),
	)
	defer span.End()

	entries, err := s.next.ListByEvent(ctx, eventID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Int("result.count", len(entries)))
	}
	return entries, err
}
