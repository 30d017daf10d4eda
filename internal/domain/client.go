package domain

import "time"

// Client is a customer record. Tickets denormalize the client name so the
// list views render without a join.
type Client struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
