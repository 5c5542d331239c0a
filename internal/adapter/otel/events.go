package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/neomorfeo/rosteriq/internal/domain"
)

// TracingEventRepository wraps a domain.EventRepository with OpenTelemetry tracing.
type TracingEventRepository struct {
	next   domain.EventRepository
	tracer trace.Tracer
}

// Compile-time check: TracingEventRepository implements domain.EventRepository.
var _ domain.EventRepository = (*TracingEventRepository)(nil)

// NewTracingEventRepository creates a tracing decorator around the given repository.
func NewTracingEventRepository(next domain.EventRepository) *TracingEventRepository {
	return &TracingEventRepository{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (r *TracingEventRepository) Create(ctx context.Context, event domain.Event) error {
	ctx, span := r.tracer.Start(ctx, "EventRepository.Create",
		trace.WithAttributes(
			attribute.String("event.id", event.ID),
			attribute.Int("event.capacity", event.Capacity),
		),
	)
	defer span.End()

	err := r.next.Create(ctx, event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (r *TracingEventRepository) GetByID(ctx context.Context, id string) (domain.Event, error) {
	ctx, span := r.tracer.Start(ctx, "EventRepository.GetByID",
		trace.WithAttributes(attribute.String("event.id", id)),
	)
	defer span.End()

	event, err := r.next.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return event, err
}

func (r *TracingEventRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Event, error) {
	ctx, span := r.tracer.Start(ctx, "EventRepository.List",
		trace.WithAttributes(
			attribute.Int("filter.limit", filter.Limit),
			attribute.Int("filter.offset", filter.Offset),
		),
	)
	defer span.End()

	events, err := r.next.List(ctx, filter)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Int("result.count", len(events)))
	}
	return events, err
}
