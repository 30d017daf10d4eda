package domain

import "time"

// CalendarEvent mirrors a visit-class ticket onto the schedule. Events are
// materialized from ticket changes and always locked: their edit surface
// defers back to the ticket, the console never edits them directly.
type CalendarEvent struct {
	ID        string
	TicketID  string
	Title     string
	StartsAt  time.Time
	Locked    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
