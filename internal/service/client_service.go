package service

import (
	"context"
	"strings"

	"github.com/spec-kit/ops-console/internal/domain"
	"github.com/spec-kit/ops-console/internal/repository"
	apperrors "github.com/spec-kit/ops-console/pkg/util/errorutil"
)

// ClientService manages customer records.
type ClientService struct {
	clients repository.ClientRepository
}

// NewClientService constructs the service.
func NewClientService(clients repository.ClientRepository) *ClientService {
	return &ClientService{clients: clients}
}

// ClientInput describes create and update payloads.
type ClientInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Notes   string
}

// CreateClient registers a new customer.
func (s *ClientService) CreateClient(ctx context.Context, input ClientInput) (*domain.Client, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name is required", nil)
	}
	client := &domain.Client{
		Name:    name,
		Email:   strings.TrimSpace(input.Email),
		Phone:   strings.TrimSpace(input.Phone),
		Address: strings.TrimSpace(input.Address),
		Notes:   input.Notes,
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, apperrors.MapError(err)
	}
	return client, nil
}

// UpdateClient replaces the mutable fields of a customer record.
func (s *ClientService) UpdateClient(ctx context.Context, id string, input ClientInput) (*domain.Client, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name is required", nil)
	}
	client.Name = name
	client.Email = strings.TrimSpace(input.Email)
	client.Phone = strings.TrimSpace(input.Phone)
	client.Address = strings.TrimSpace(input.Address)
	client.Notes = input.Notes
	if err := s.clients.Update(ctx, client); err != nil {
		return nil, apperrors.MapError(err)
	}
	return client, nil
}

// DeleteClient removes a customer record.
func (s *ClientService) DeleteClient(ctx context.Context, id string) error {
	return apperrors.MapError(s.clients.Delete(ctx, id))
}

// GetClient fetches a single customer.
func (s *ClientService) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return client, nil
}

// ListClients returns paginated customers ordered by name.
func (s *ClientService) ListClients(ctx context.Context, limit, offset int) ([]domain.Client, error) {
	clients, err := s.clients.List(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return clients, nil
}
