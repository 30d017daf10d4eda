package service

import (
	"context"
	"testing"
	"time"

	"github.com/spec-kit/ops-console/internal/domain"
)

type fakeCalendarRepo struct {
	events map[string]*domain.CalendarEvent
}

func newFakeCalendarRepo() *fakeCalendarRepo {
	return &fakeCalendarRepo{events: map[string]*domain.CalendarEvent{}}
}

func (r *fakeCalendarRepo) UpsertForTicket(_ context.Context, event *domain.CalendarEvent) error {
	if existing, ok := r.events[event.TicketID]; ok {
		event.ID = existing.ID
	} else {
		event.ID = "e-" + event.TicketID
	}
	copied := *event
	r.events[event.TicketID] = &copied
	return nil
}

func (r *fakeCalendarRepo) DeleteForTicket(_ context.Context, ticketID string) error {
	delete(r.events, ticketID)
	return nil
}

func (r *fakeCalendarRepo) List(_ context.Context, from, to time.Time) ([]domain.CalendarEvent, error) {
	var result []domain.CalendarEvent
	for _, event := range r.events {
		if !event.StartsAt.Before(from) && event.StartsAt.Before(to) {
			result = append(result, *event)
		}
	}
	return result, nil
}

func TestSyncTicketMaterializesLockedEvent(t *testing.T) {
	tickets := newFakeTicketRepo()
	calendar := newFakeCalendarRepo()
	svc := NewCalendarService(calendar, tickets)

	ticket := &domain.Ticket{Title: "Visita a planta", Status: domain.StatusVisitaProgramada}
	if err := tickets.Create(context.Background(), ticket); err != nil {
		t.Fatalf("seed ticket: %v", err)
	}

	if err := svc.SyncTicket(context.Background(), ticket.ID); err != nil {
		t.Fatalf("SyncTicket: %v", err)
	}
	event, ok := calendar.events[ticket.ID]
	if !ok {
		t.Fatal("no event materialized for visit-class ticket")
	}
	if !event.Locked {
		t.Error("materialized event not locked")
	}
	if event.Title != "Visita a planta" {
		t.Errorf("event title = %q", event.Title)
	}
}

func TestSyncTicketRemovesEventWhenLeavingVisitClass(t *testing.T) {
	tickets := newFakeTicketRepo()
	calendar := newFakeCalendarRepo()
	svc := NewCalendarService(calendar, tickets)

	ticket := &domain.Ticket{Title: "Visita", Status: domain.StatusVisita}
	if err := tickets.Create(context.Background(), ticket); err != nil {
		t.Fatalf("seed ticket: %v", err)
	}
	if err := svc.SyncTicket(context.Background(), ticket.ID); err != nil {
		t.Fatalf("SyncTicket: %v", err)
	}

	ticket.Status = domain.StatusResuelto
	if err := tickets.Update(context.Background(), ticket); err != nil {
		t.Fatalf("update ticket: %v", err)
	}
	if err := svc.SyncTicket(context.Background(), ticket.ID); err != nil {
		t.Fatalf("SyncTicket: %v", err)
	}
	if _, ok := calendar.events[ticket.ID]; ok {
		t.Error("event kept after ticket left the visit family")
	}
}

func TestListEventsRejectsInvertedRange(t *testing.T) {
	svc := NewCalendarService(newFakeCalendarRepo(), newFakeTicketRepo())
	now := time.Now()
	if _, err := svc.ListEvents(context.Background(), now, now); err == nil {
		t.Error("expected error for empty range")
	}
}
