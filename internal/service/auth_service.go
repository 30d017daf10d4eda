package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/ops-console/internal/auth"
	"github.com/spec-kit/ops-console/internal/config"
	"github.com/spec-kit/ops-console/internal/domain"
	"github.com/spec-kit/ops-console/internal/repository"
	apperrors "github.com/spec-kit/ops-console/pkg/util/errorutil"
)

// AuthService coordinates operator login and account management.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// UserInput describes operator create and update payloads.
type UserInput struct {
	LegacyID  string
	Name      string
	Email     string
	AvatarURL string
	Password  string
	Role      domain.UserRole
	Active    bool
}

// Login authenticates an operator by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if !user.Active {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("user inactive")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return user, token, exp, nil
}

// CreateUser registers a new operator account.
func (s *AuthService) CreateUser(ctx context.Context, input UserInput) (*domain.User, error) {
	email := strings.TrimSpace(input.Email)
	if strings.TrimSpace(input.Name) == "" || email == "" {
		return nil, apperrors.NewValidationError("name and email are required", nil)
	}
	if input.Role != domain.RoleAdmin && input.Role != domain.RoleOperator {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": input.Role})
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	user := &domain.User{
		LegacyID:     input.LegacyID,
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		AvatarURL:    input.AvatarURL,
		PasswordHash: hash,
		Role:         input.Role,
		Active:       input.Active,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// UpdateUser replaces an operator's profile fields. An empty password keeps
// the stored hash.
func (s *AuthService) UpdateUser(ctx context.Context, id string, input UserInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Email) == "" {
		return nil, apperrors.NewValidationError("name and email are required", nil)
	}
	if input.Role != domain.RoleAdmin && input.Role != domain.RoleOperator {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": input.Role})
	}
	user.LegacyID = input.LegacyID
	user.Name = strings.TrimSpace(input.Name)
	user.Email = strings.TrimSpace(input.Email)
	user.AvatarURL = input.AvatarURL
	user.Role = input.Role
	user.Active = input.Active
	if input.Password != "" {
		hash, err := auth.HashPassword(input.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		user.PasswordHash = hash
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// DeleteUser removes an operator account.
func (s *AuthService) DeleteUser(ctx context.Context, id string) error {
	return apperrors.MapError(s.users.Delete(ctx, id))
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
