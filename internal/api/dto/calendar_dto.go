package dto

import "time"

// CalendarEventResponse projection. Events are always locked: the calendar
// mirrors ticket state and is never edited directly.
type CalendarEventResponse struct {
	ID       string    `json:"id"`
	TicketID string    `json:"ticketId"`
	Title    string    `json:"title"`
	StartsAt time.Time `json:"startsAt"`
	Locked   bool      `json:"locked"`
}
