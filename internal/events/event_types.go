package events

import (
	"time"

	"github.com/spec-kit/ops-console/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated     EventType = "ticket_created"
	EventTicketUpdated     EventType = "ticket_updated"
	EventAnnotationAdded   EventType = "annotation_added"
	EventAnnotationRemoved EventType = "annotation_removed"
)

// Actor identifies the operator behind an event.
type Actor struct {
	UserID *string `json:"user_id,omitempty"`
	Name   string  `json:"name,omitempty"`
}

// Event is a domain event emitted by services after a successful save.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	ClientID string                `json:"client_id"`
	Title    string                `json:"title"`
	Priority domain.TicketPriority `json:"priority"`
}

// TicketUpdatedPayload describes a full-replace save. The calendar worker
// keys off the status fields; the notification stub keys off NotifyClient.
type TicketUpdatedPayload struct {
	OldStatus         domain.TicketStatus `json:"old_status"`
	NewStatus         domain.TicketStatus `json:"new_status"`
	AssignmentChanged bool                `json:"assignment_changed"`
	AnnotationDelta   int                 `json:"annotation_delta"`
	NotifyClient      bool                `json:"notify_client"`
	Title             string              `json:"title"`
}

// AnnotationAddedPayload payload.
type AnnotationAddedPayload struct {
	CreatedAt time.Time `json:"created_at"`
	User      string    `json:"user"`
	HasMedia  bool      `json:"has_media"`
}
