package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ops-console/internal/api/dto"
	"github.com/spec-kit/ops-console/internal/auth"
	"github.com/spec-kit/ops-console/internal/domain"
	"github.com/spec-kit/ops-console/internal/events"
	"github.com/spec-kit/ops-console/internal/service"
	apperrors "github.com/spec-kit/ops-console/pkg/util/errorutil"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.TicketCreateInput{
		ClientID:    req.ClientID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Visit:       req.Visit,
	}
	ticket, err := h.service.CreateTicket(c.Context(), actorFromContext(c), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	filter := parseTicketQuery(c)
	tickets, err := h.service.ListTickets(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.TicketSummary, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketSummary(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	ticket, err := h.service.GetTicket(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// ReplaceTicket PUT /tickets/:id. The whole record, annotation log included,
// is overwritten with the submitted state; the last write wins.
func (h *TicketsHandler) ReplaceTicket(c *fiber.Ctx) error {
	var req dto.ReplaceTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.TicketReplaceInput{
		Title:           req.Title,
		Status:          req.Status,
		Priority:        req.Priority,
		Visit:           req.Visit,
		Amount:          req.Amount,
		AmountCurrency:  req.AmountCurrency,
		Description:     req.Description,
		AssignedTo:      req.AssignedTo,
		AssignedGroupID: req.AssignedGroupID,
		Annotations:     req.Annotations,
		NotifyClient:    req.NotifyClient,
	}
	ticket, err := h.service.ReplaceTicket(c.Context(), actorFromContext(c), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

func actorFromContext(c *fiber.Ctx) events.Actor {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return events.Actor{}
	}
	id := principal.User.ID
	return events.Actor{UserID: &id, Name: principal.User.Name}
}

func parseTicketQuery(c *fiber.Ctx) service.TicketListFilter {
	filter := service.TicketListFilter{}
	if clientID := c.Query("clientId"); clientID != "" {
		filter.ClientID = &clientID
	}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.TicketStatus(strings.TrimSpace(part)))
		}
	}
	if priorityStr := c.Query("priority"); priorityStr != "" {
		for _, part := range strings.Split(priorityStr, ",") {
			filter.Priorities = append(filter.Priorities, domain.TicketPriority(strings.TrimSpace(part)))
		}
	}
	if assignee := c.Query("assignedTo"); assignee != "" {
		filter.AssignedTo = &assignee
	}
	if term := c.Query("q"); term != "" {
		filter.SearchTerm = &term
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("pageSize"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func ticketSummary(ticket *domain.Ticket) dto.TicketSummary {
	return dto.TicketSummary{
		ID:              ticket.ID,
		Title:           ticket.Title,
		ClientID:        ticket.ClientID,
		ClientName:      ticket.ClientName,
		Status:          ticket.Status,
		Priority:        ticket.Priority,
		Visit:           ticket.Visit,
		AssignedTo:      ticket.AssignedTo,
		AssignedGroupID: ticket.AssignedGroupID,
		Locked:          ticket.Status.IsTerminal(),
		CreatedAt:       ticket.CreatedAt,
		UpdatedAt:       ticket.UpdatedAt,
	}
}

func ticketResponse(ticket *domain.Ticket) dto.TicketResponse {
	annotations := ticket.Annotations
	if annotations == nil {
		annotations = []domain.Annotation{}
	}
	return dto.TicketResponse{
		ID:              ticket.ID,
		Title:           ticket.Title,
		ClientID:        ticket.ClientID,
		ClientName:      ticket.ClientName,
		Status:          ticket.Status,
		Priority:        ticket.Priority,
		Visit:           ticket.Visit,
		Amount:          ticket.Amount,
		AmountCurrency:  ticket.AmountCurrency,
		Description:     ticket.Description,
		AssignedTo:      ticket.AssignedTo,
		AssignedGroupID: ticket.AssignedGroupID,
		Annotations:     annotations,
		CreatedAt:       ticket.CreatedAt,
		UpdatedAt:       ticket.UpdatedAt,
	}
}
