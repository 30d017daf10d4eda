package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/ops-console/internal/domain"
	"github.com/spec-kit/ops-console/internal/events"
	"github.com/spec-kit/ops-console/internal/repository"
	apperrors "github.com/spec-kit/ops-console/pkg/util/errorutil"
)

// TicketService coordinates ticket workflows. Saves are whole-record
// replacements: the annotation log travels inside the ticket payload and the
// last write wins, field conflicts included.
type TicketService struct {
	tickets    repository.TicketRepository
	clients    repository.ClientRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles repositories for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	ClientRepo repository.ClientRepository
	Dispatcher events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		clients:    deps.ClientRepo,
		dispatcher: deps.Dispatcher,
	}
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	ClientID    string
	Title       string
	Description string
	Priority    domain.TicketPriority
	Visit       bool
}

// TicketReplaceInput carries the full replacement state for a save,
// annotations included.
type TicketReplaceInput struct {
	Title           string
	Status          domain.TicketStatus
	Priority        domain.TicketPriority
	Visit           bool
	Amount          *float64
	AmountCurrency  domain.Currency
	Description     string
	AssignedTo      *string
	AssignedGroupID *string
	Annotations     []domain.Annotation
	NotifyClient    bool
}

// TicketListFilter describes listing filters.
type TicketListFilter struct {
	ClientID   *string
	Statuses   []domain.TicketStatus
	Priorities []domain.TicketPriority
	AssignedTo *string
	SearchTerm *string
	Limit      int
	Offset     int
}

// CreateTicket opens a new ticket, denormalizing the client name so list
// views render without a join.
func (s *TicketService) CreateTicket(ctx context.Context, actor events.Actor, input TicketCreateInput) (*domain.Ticket, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title is required", nil)
	}
	if strings.TrimSpace(input.ClientID) == "" {
		return nil, apperrors.NewValidationError("client is required", nil)
	}

	client, err := s.clients.GetByID(ctx, input.ClientID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	ticket := &domain.Ticket{
		Title:       title,
		ClientID:    client.ID,
		ClientName:  client.Name,
		Status:      domain.StatusNuevo,
		Priority:    input.Priority,
		Visit:       input.Visit,
		Description: input.Description,
	}
	if ticket.Priority == "" {
		ticket.Priority = domain.PriorityMedia
	}
	if !ticket.Priority.IsValid() {
		return nil, apperrors.NewValidationError("unknown priority", map[string]any{"priority": input.Priority})
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Actor:    actor,
		Payload: events.TicketCreatedPayload{
			ClientID: ticket.ClientID,
			Title:    ticket.Title,
			Priority: ticket.Priority,
		},
	})
	return ticket, nil
}

// GetTicket fetches a single ticket with its annotation log.
func (s *TicketService) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// ListTickets returns paginated tickets matching the filter.
func (s *TicketService) ListTickets(ctx context.Context, filter TicketListFilter) ([]domain.Ticket, error) {
	repoFilter := repository.TicketFilter{
		ClientID:   filter.ClientID,
		Statuses:   filter.Statuses,
		Priorities: filter.Priorities,
		AssignedTo: filter.AssignedTo,
		SearchTerm: filter.SearchTerm,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}
	tickets, err := s.tickets.ListWithFilter(ctx, repoFilter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// ReplaceTicket overwrites the stored ticket with the submitted state. There
// is no version check: concurrent editors overwrite each other and the last
// save wins. Validation still rejects unknown enum values and dual
// assignment before anything is written.
func (s *TicketService) ReplaceTicket(ctx context.Context, actor events.Actor, id string, input TicketReplaceInput) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	if err := validateReplace(input); err != nil {
		return nil, err
	}

	oldStatus := ticket.Status
	oldAnnotations := len(ticket.Annotations)
	assignmentChanged := !refEqual(ticket.AssignedTo, input.AssignedTo) ||
		!refEqual(ticket.AssignedGroupID, input.AssignedGroupID)

	if title := strings.TrimSpace(input.Title); title != "" {
		ticket.Title = title
	}
	ticket.Status = input.Status
	ticket.Priority = input.Priority
	ticket.Visit = input.Visit
	ticket.Amount = input.Amount
	ticket.AmountCurrency = input.AmountCurrency
	ticket.Description = input.Description
	ticket.AssignedTo = input.AssignedTo
	ticket.AssignedGroupID = input.AssignedGroupID
	ticket.Annotations = input.Annotations
	if ticket.Status == domain.StatusVisita {
		ticket.Visit = true
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketUpdated,
		TicketID: ticket.ID,
		Actor:    actor,
		Payload: events.TicketUpdatedPayload{
			OldStatus:         oldStatus,
			NewStatus:         ticket.Status,
			AssignmentChanged: assignmentChanged,
			AnnotationDelta:   len(ticket.Annotations) - oldAnnotations,
			NotifyClient:      input.NotifyClient,
			Title:             ticket.Title,
		},
	})
	if len(ticket.Annotations) > oldAnnotations {
		newest := ticket.Annotations[0]
		s.publishEvent(ctx, events.Event{
			Type:     events.EventAnnotationAdded,
			TicketID: ticket.ID,
			Actor:    actor,
			Payload: events.AnnotationAddedPayload{
				CreatedAt: newest.CreatedAt,
				User:      newest.User,
				HasMedia:  len(newest.Attachments) > 0 || len(newest.AudioNotes) > 0,
			},
		})
	} else if len(ticket.Annotations) < oldAnnotations {
		s.publishEvent(ctx, events.Event{
			Type:     events.EventAnnotationRemoved,
			TicketID: ticket.ID,
			Actor:    actor,
		})
	}
	return ticket, nil
}

// validateReplace rejects unknown enum values and dual assignment. An empty
// title is allowed: the detail view never edits titles, so the stored one is
// kept.
func validateReplace(input TicketReplaceInput) error {
	if !input.Status.IsValid() {
		return apperrors.NewValidationError("unknown status", map[string]any{"status": input.Status})
	}
	if !input.Priority.IsValid() {
		return apperrors.NewValidationError("unknown priority", map[string]any{"priority": input.Priority})
	}
	if input.Amount != nil && !input.AmountCurrency.IsValid() {
		return apperrors.NewValidationError("unknown currency", map[string]any{"currency": input.AmountCurrency})
	}
	if input.AssignedTo != nil && input.AssignedGroupID != nil {
		return apperrors.NewValidationError("ticket cannot be assigned to a user and a group at once", nil)
	}
	return nil
}

func refEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
