package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/rosteriq/internal/app"
	"github.com/neomorfeo/rosteriq/internal/domain"
)

// EventResponse is the API representation of an event.
type EventResponse struct {
	ID        string `json:"id" doc:"Unique identifier"`
	Name      string `json:"name" doc:"Display name"`
	Capacity  int    `json:"capacity" doc:"Maximum number of confirmed entrants"`
	CreatorID string `json:"creator_id" doc:"User who created the event"`
	CreatedAt string `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
	UpdatedAt string `json:"updated_at" doc:"Last update timestamp (ISO 8601)"`
}

func toEventResponse(e domain.Event) EventResponse {
	return EventResponse{
		ID:        e.ID,
		Name:      e.Name,
		Capacity:  e.Capacity,
		CreatorID: e.CreatorID,
		CreatedAt: e.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: e.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// EntryResponse is the API representation of a roster entry.
type EntryResponse struct {
	ID        string           `json:"id" doc:"Unique identifier"`
	EventID   string           `json:"event_id" doc:"Event this entry belongs to"`
	UserID    string           `json:"user_id" doc:"Signed-up user"`
	Status    string           `json:"status" doc:"Entry state"`
	Position  int64            `json:"position" doc:"Arrival order within the event"`
	Answers   map[string]*bool `json:"answers,omitempty" doc:"Signup question answers"`
	CreatedAt string           `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
	UpdatedAt string           `json:"updated_at" doc:"Last update timestamp (ISO 8601)"`
}

func toEntryResponse(e domain.RosterEntry) EntryResponse {
	return EntryResponse{
		ID:        e.ID,
		EventID:   e.EventID,
		UserID:    e.UserID,
		Status:    string(e.Status),
		Position:  e.Position,
		Answers:   e.Answers,
		CreatedAt: e.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: e.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// --- Create Event ---

type CreateEventInput struct {
	Caller string `header:"X-User-ID" doc:"Authenticated user ID"`
	Body   struct {
		Name     string `json:"name" minLength:"1" maxLength:"255" doc:"Display name"`
		Capacity int    `json:"capacity" minimum:"1" doc:"Maximum number of confirmed entrants"`
	}
}

type CreateEventOutput struct {
	Body EventResponse
}

// --- Get Event ---

type GetEventInput struct {
	ID string `path:"id" doc:"Event ID"`
}

type GetEventOutput struct {
	Body EventResponse
}

// --- List Events ---

type ListEventsInput struct {
	Limit  int `query:"limit" required:"false" default:"50" doc:"Max results"`
	Offset int `query:"offset" required:"false" default:"0" doc:"Pagination offset"`
}

type ListEventsOutput struct {
	Body []EventResponse
}

// --- Join Event ---

type JoinEventInput struct {
	Caller string `header:"X-User-ID" doc:"Authenticated user ID"`
	ID     string `path:"id" doc:"Event ID"`
	Body   struct {
		UserID  string           `json:"user_id" minLength:"1" doc:"User to sign up"`
		Answers map[string]*bool `json:"answers,omitempty" doc:"Signup question answers"`
	}
}

type JoinEventOutput struct {
	Body EntryResponse
}

// --- Leave Event ---

type LeaveEventInput struct {
	Caller string `header:"X-User-ID" doc:"Authenticated user ID"`
	ID     string `path:"id" doc:"Event ID"`
	UserID string `path:"userId" doc:"User withdrawing from the event"`
}

type LeaveEventOutput struct {
	Body struct {
		RemovedFrom    string `json:"removed_from" doc:"State the entry was withdrawn from"`
		PromotedUserID string `json:"promoted_user_id,omitempty" doc:"User promoted into the freed seat, if any"`
	}
}

// --- List Roster ---

type ListRosterInput struct {
	ID string `path:"id" doc:"Event ID"`
}

type ListRosterOutput struct {
	Body []EntryResponse
}

// Register adds all event and roster API routes to the Huma API.
func Register(api huma.API, events *app.EventService, roster *app.RosterService, identity domain.IdentityResolver) {
	huma.Register(api, huma.Operation{
		OperationID: "create-event",
		Method:      http.MethodPost,
		Path:        "/api/v1/events",
		Summary:     "Create a new event",
		Tags:        []string{"Events"},
	}, func(ctx context.Context, input *CreateEventInput) (*CreateEventOutput, error) {
		callerID, err := identity.Resolve(ctx, input.Caller)
		if err != nil {
			return nil, toHumaError(err)
		}

		event, err := events.Create(ctx, input.Body.Name, input.Body.Capacity, callerID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &CreateEventOutput{Body: toEventResponse(event)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-event",
		Method:      http.MethodGet,
		Path:        "/api/v1/events/{id}",
		Summary:     "Get an event by ID",
		Tags:        []string{"Events"},
	}, func(ctx context.Context, input *GetEventInput) (*GetEventOutput, error) {
		event, err := events.GetByID(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &GetEventOutput{Body: toEventResponse(event)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-events",
		Method:      http.MethodGet,
		Path:        "/api/v1/events",
		Summary:     "List events",
		Tags:        []string{"Events"},
	}, func(ctx context.Context, input *ListEventsInput) (*ListEventsOutput, error) {
		list, err := events.List(ctx, domain.ListFilter{
			Limit:  input.Limit,
			Offset: input.Offset,
		})
		if err != nil {
			return nil, toHumaError(err)
		}

		resp := make([]EventResponse, len(list))
		for i, e := range list {
			resp[i] = toEventResponse(e)
		}
		return &ListEventsOutput{Body: resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "join-event",
		Method:      http.MethodPost,
		Path:        "/api/v1/events/{id}/roster",
		Summary:     "Sign a user up for an event",
		Tags:        []string{"Roster"},
	}, func(ctx context.Context, input *JoinEventInput) (*JoinEventOutput, error) {
		callerID, err := identity.Resolve(ctx, input.Caller)
		if err != nil {
			return nil, toHumaError(err)
		}

		entry, err := roster.Join(ctx, callerID, input.ID, input.Body.UserID, input.Body.Answers)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &JoinEventOutput{Body: toEntryResponse(entry)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "leave-event",
		Method:      http.MethodDelete,
		Path:        "/api/v1/events/{id}/roster/{userId}",
		Summary:     "Withdraw a user from an event",
		Tags:        []string{"Roster"},
	}, func(ctx context.Context, input *LeaveEventInput) (*LeaveEventOutput, error) {
		callerID, err := identity.Resolve(ctx, input.Caller)
		if err != nil {
			return nil, toHumaError(err)
		}

		result, err := roster.Leave(ctx, callerID, input.ID, input.UserID)
		if err != nil {
			return nil, toHumaError(err)
		}

		out := &LeaveEventOutput{}
		out.Body.RemovedFrom = string(result.RemovedFrom)
		if result.Promoted != nil {
			out.Body.PromotedUserID = result.Promoted.UserID
		}
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-roster",
		Method:      http.MethodGet,
		Path:        "/api/v1/events/{id}/roster",
		Summary:     "List an event's roster in arrival order",
		Tags:        []string{"Roster"},
	}, func(ctx context.Context, input *ListRosterInput) (*ListRosterOutput, error) {
		entries, err := roster.Roster(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}

		resp := make([]EntryResponse, len(entries))
		for i, e := range entries {
			resp[i] = toEntryResponse(e)
		}
		return &ListRosterOutput{Body: resp}, nil
	})
}

// toHumaError translates domain errors to Huma HTTP errors.
func toHumaError(err error) error {
	if errors.Is(err, domain.ErrEventNotFound) {
		return huma.Error404NotFound("event not found")
	}
	if errors.Is(err, domain.ErrEntryNotFound) {
		return huma.Error404NotFound("roster entry not found")
	}
	if errors.Is(err, domain.ErrUnauthenticated) {
		return huma.Error401Unauthorized("caller identity is required")
	}

	var authErr *domain.UnauthorizedError
	if errors.As(err, &authErr) {
		return huma.Error403Forbidden(authErr.Error())
	}

	var dupErr *domain.DuplicateEntryError
	if errors.As(err, &dupErr) {
		return huma.Error409Conflict(dupErr.Error())
	}

	var conflictErr *domain.ConflictError
	if errors.As(err, &conflictErr) {
		return huma.Error409Conflict(conflictErr.Error())
	}

	var trErr *domain.TransitionError
	if errors.As(err, &trErr) {
		return huma.Error422UnprocessableEntity(trErr.Error())
	}

	return huma.Error500InternalServerError("internal server error")
}
