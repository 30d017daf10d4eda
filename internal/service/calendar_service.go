package service

import (
	"context"
	"time"

	"github.com/spec-kit/ops-console/internal/domain"
	"github.com/spec-kit/ops-console/internal/repository"
	apperrors "github.com/spec-kit/ops-console/pkg/util/errorutil"
)

// CalendarService materializes visit-class tickets onto the schedule. Every
// event is locked: the calendar is a projection of ticket state, never an
// edit surface of its own.
type CalendarService struct {
	calendar repository.CalendarRepository
	tickets  repository.TicketRepository
}

// NewCalendarService constructs the service.
func NewCalendarService(calendar repository.CalendarRepository, tickets repository.TicketRepository) *CalendarService {
	return &CalendarService{calendar: calendar, tickets: tickets}
}

// ListEvents returns events in [from, to) ordered by start time.
func (s *CalendarService) ListEvents(ctx context.Context, from, to time.Time) ([]domain.CalendarEvent, error) {
	if !to.After(from) {
		return nil, apperrors.NewValidationError("range end must follow range start", nil)
	}
	events, err := s.calendar.List(ctx, from, to)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return events, nil
}

// SyncTicket reconciles the schedule with a ticket's current status. A
// visit-class ticket gets one locked event; anything else removes it.
func (s *CalendarService) SyncTicket(ctx context.Context, ticketID string) error {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if !ticket.Status.IsVisitClass() {
		return apperrors.MapError(s.calendar.DeleteForTicket(ctx, ticketID))
	}
	event := &domain.CalendarEvent{
		TicketID: ticket.ID,
		Title:    ticket.Title,
		StartsAt: ticket.UpdatedAt,
		Locked:   true,
	}
	return apperrors.MapError(s.calendar.UpsertForTicket(ctx, event))
}

// RemoveForTicket drops any event tied to the ticket.
func (s *CalendarService) RemoveForTicket(ctx context.Context, ticketID string) error {
	return apperrors.MapError(s.calendar.DeleteForTicket(ctx, ticketID))
}
