package dto

import (
	"time"

	"github.com/spec-kit/ops-console/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse returns the token pair.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// UserRequest payload for create and update. Password is optional on
// update; empty keeps the stored hash.
type UserRequest struct {
	LegacyID  string          `json:"legacyId"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	AvatarURL string          `json:"avatarUrl"`
	Password  string          `json:"password,omitempty"`
	Role      domain.UserRole `json:"role"`
	Active    bool            `json:"active"`
}

// UserResponse projection, hash never included.
type UserResponse struct {
	ID        string          `json:"id"`
	LegacyID  string          `json:"legacyId,omitempty"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	AvatarURL string          `json:"avatarUrl,omitempty"`
	Role      domain.UserRole `json:"role"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// GroupResponse projection.
type GroupResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
