package dto

import (
	"time"

	"github.com/spec-kit/ops-console/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	ClientID    string                `json:"clientId"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Priority    domain.TicketPriority `json:"priority"`
	Visit       bool                  `json:"visit"`
}

// ReplaceTicketRequest is the full-replace save body. The annotation log
// travels inside it and overwrites the stored log verbatim.
type ReplaceTicketRequest struct {
	Title           string                `json:"title,omitempty"`
	Status          domain.TicketStatus   `json:"status"`
	Priority        domain.TicketPriority `json:"priority"`
	Visit           bool                  `json:"visit"`
	Amount          *float64              `json:"amount,omitempty"`
	AmountCurrency  domain.Currency       `json:"amountCurrency,omitempty"`
	Description     string                `json:"description"`
	AssignedTo      *string               `json:"assignedTo,omitempty"`
	AssignedGroupID *string               `json:"assignedGroupId,omitempty"`
	Annotations     []domain.Annotation   `json:"annotations"`
	NotifyClient    bool                  `json:"notifyClient"`
}

// TicketListQuery captures query filters.
type TicketListQuery struct {
	ClientID   *string
	Statuses   []domain.TicketStatus
	Priorities []domain.TicketPriority
	AssignedTo *string
	SearchTerm *string
	Page       int
	PageSize   int
}

// TicketSummary is the list-view projection, annotations omitted.
type TicketSummary struct {
	ID              string                `json:"id"`
	Title           string                `json:"title"`
	ClientID        string                `json:"clientId"`
	ClientName      string                `json:"clientName"`
	Status          domain.TicketStatus   `json:"status"`
	Priority        domain.TicketPriority `json:"priority"`
	Visit           bool                  `json:"visit"`
	AssignedTo      *string               `json:"assignedTo,omitempty"`
	AssignedGroupID *string               `json:"assignedGroupId,omitempty"`
	Locked          bool                  `json:"locked"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}

// TicketResponse is the detail projection with the full annotation log.
type TicketResponse struct {
	ID              string                `json:"id"`
	Title           string                `json:"title"`
	ClientID        string                `json:"clientId"`
	ClientName      string                `json:"clientName"`
	Status          domain.TicketStatus   `json:"status"`
	Priority        domain.TicketPriority `json:"priority"`
	Visit           bool                  `json:"visit"`
	Amount          *float64              `json:"amount,omitempty"`
	AmountCurrency  domain.Currency       `json:"amountCurrency,omitempty"`
	Description     string                `json:"description"`
	AssignedTo      *string               `json:"assignedTo,omitempty"`
	AssignedGroupID *string               `json:"assignedGroupId,omitempty"`
	Annotations     []domain.Annotation   `json:"annotations"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}
