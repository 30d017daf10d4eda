package dto

import (
	"time"

	"github.com/spec-kit/ops-console/internal/domain"
)

// BudgetRequest payload for create and update.
type BudgetRequest struct {
	ClientID    string              `json:"clientId"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Amount      float64             `json:"amount"`
	Currency    domain.Currency     `json:"currency"`
	Status      domain.BudgetStatus `json:"status,omitempty"`
}

// BudgetResponse projection.
type BudgetResponse struct {
	ID          string              `json:"id"`
	ClientID    string              `json:"clientId"`
	ClientName  string              `json:"clientName"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Amount      float64             `json:"amount"`
	Currency    domain.Currency     `json:"currency"`
	Status      domain.BudgetStatus `json:"status"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}
