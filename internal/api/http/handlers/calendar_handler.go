package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ops-console/internal/api/dto"
	"github.com/spec-kit/ops-console/internal/service"
	apperrors "github.com/spec-kit/ops-console/pkg/util/errorutil"
)

// CalendarHandler serves the schedule projection.
type CalendarHandler struct {
	service *service.CalendarService
}

// NewCalendarHandler constructs handler.
func NewCalendarHandler(calendarService *service.CalendarService) *CalendarHandler {
	return &CalendarHandler{service: calendarService}
}

// ListEvents GET /calendar. Defaults to the current month when no range is
// given.
func (h *CalendarHandler) ListEvents(c *fiber.Ctx) error {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return apperrors.NewValidationError("invalid from timestamp", nil)
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return apperrors.NewValidationError("invalid to timestamp", nil)
		}
		to = parsed
	}

	events, err := h.service.ListEvents(c.Context(), from, to)
	if err != nil {
		return err
	}
	items := make([]dto.CalendarEventResponse, 0, len(events))
	for _, event := range events {
		items = append(items, dto.CalendarEventResponse{
			ID:       event.ID,
			TicketID: event.TicketID,
			Title:    event.Title,
			StartsAt: event.StartsAt,
			Locked:   event.Locked,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}
