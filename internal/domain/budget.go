package domain

import "time"

// BudgetStatus enumerates budget lifecycle states.
type BudgetStatus string

const (
	BudgetBorrador  BudgetStatus = "Borrador"
	BudgetEnviado   BudgetStatus = "Enviado"
	BudgetAprobado  BudgetStatus = "Aprobado"
	BudgetRechazado BudgetStatus = "Rechazado"
)

// Budget is a quote issued to a client.
type Budget struct {
	ID          string
	ClientID    string
	ClientName  string
	Title       string
	Description string
	Amount      float64
	Currency    Currency
	Status      BudgetStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
