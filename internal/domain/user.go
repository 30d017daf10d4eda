package domain

import "time"

// UserRole enumerates console operator roles.
type UserRole string

const (
	RoleAdmin    UserRole = "ADMIN"
	RoleOperator UserRole = "OPERATOR"
)

// User is a console operator. Users double as the assignment directory:
// LegacyID carries the identifier used by the system this console replaced,
// which is why assignment resolution matches on several fields.
type User struct {
	ID           string
	LegacyID     string
	Name         string
	Email        string
	AvatarURL    string
	PasswordHash string
	Role         UserRole
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Group is an assignment target for work shared by several operators.
type Group struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
