package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/ops-console/internal/events"
	"github.com/spec-kit/ops-console/internal/service"
)

// CalendarWorker keeps the schedule in sync with ticket saves. It listens
// for update events and reconciles the locked event for the ticket: created
// or moved when the ticket enters a visit-class status, removed when it
// leaves.
type CalendarWorker struct {
	calendar *service.CalendarService
	logger   *zap.Logger
}

// NewCalendarWorker constructs the worker.
func NewCalendarWorker(calendar *service.CalendarService, logger *zap.Logger) *CalendarWorker {
	return &CalendarWorker{calendar: calendar, logger: logger}
}

// Start subscribes the worker to the dispatcher.
func (w *CalendarWorker) Start(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventTicketUpdated, w.handleTicketUpdated)
}

func (w *CalendarWorker) handleTicketUpdated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketUpdatedPayload)
	if !ok {
		return nil
	}
	if payload.OldStatus == payload.NewStatus && !payload.OldStatus.IsVisitClass() {
		return nil
	}
	if err := w.calendar.SyncTicket(ctx, event.TicketID); err != nil {
		w.logger.Warn("calendar sync failed",
			zap.String("ticket_id", event.TicketID),
			zap.Error(err))
		return err
	}
	return nil
}
