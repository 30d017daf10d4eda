package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ops-console/internal/domain"
)

// CalendarRepository persists ticket-mirrored calendar events. One event
// per ticket at most; upserts key on ticket_id.
type CalendarRepository interface {
	UpsertForTicket(ctx context.Context, event *domain.CalendarEvent) error
	DeleteForTicket(ctx context.Context, ticketID string) error
	List(ctx context.Context, from, to time.Time) ([]domain.CalendarEvent, error)
}

type calendarRepository struct {
	pool *pgxpool.Pool
}

// NewCalendarRepository builds repository.
func NewCalendarRepository(pool *pgxpool.Pool) CalendarRepository {
	return &calendarRepository{pool: pool}
}

func (r *calendarRepository) UpsertForTicket(ctx context.Context, event *domain.CalendarEvent) error {
	const query = `
        INSERT INTO calendar_events (ticket_id, title, starts_at, locked)
        VALUES ($1,$2,$3,$4)
        ON CONFLICT (ticket_id) DO UPDATE SET title=EXCLUDED.title,
            starts_at=EXCLUDED.starts_at, locked=EXCLUDED.locked, updated_at=NOW()
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		event.TicketID,
		event.Title,
		event.StartsAt,
		event.Locked,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
}

func (r *calendarRepository) DeleteForTicket(ctx context.Context, ticketID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM calendar_events WHERE ticket_id=$1`, ticketID)
	return err
}

func (r *calendarRepository) List(ctx context.Context, from, to time.Time) ([]domain.CalendarEvent, error) {
	const query = `
        SELECT id, ticket_id, title, starts_at, locked, created_at, updated_at
        FROM calendar_events WHERE starts_at >= $1 AND starts_at < $2 ORDER BY starts_at ASC`
	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CalendarEvent
	for rows.Next() {
		var event domain.CalendarEvent
		if err := rows.Scan(
			&event.ID,
			&event.TicketID,
			&event.Title,
			&event.StartsAt,
			&event.Locked,
			&event.CreatedAt,
			&event.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	return result, rows.Err()
}
