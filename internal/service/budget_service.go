package service

import (
	"context"
	"strings"

	"github.com/spec-kit/ops-console/internal/domain"
	"github.com/spec-kit/ops-console/internal/repository"
	apperrors "github.com/spec-kit/ops-console/pkg/util/errorutil"
)

// BudgetService manages quotes, denormalizing the client name the same way
// tickets do.
type BudgetService struct {
	budgets repository.BudgetRepository
	clients repository.ClientRepository
}

// NewBudgetService constructs the service.
func NewBudgetService(budgets repository.BudgetRepository, clients repository.ClientRepository) *BudgetService {
	return &BudgetService{budgets: budgets, clients: clients}
}

// BudgetInput describes create and update payloads.
type BudgetInput struct {
	ClientID    string
	Title       string
	Description string
	Amount      float64
	Currency    domain.Currency
	Status      domain.BudgetStatus
}

// CreateBudget registers a new quote in Borrador state unless told otherwise.
func (s *BudgetService) CreateBudget(ctx context.Context, input BudgetInput) (*domain.Budget, error) {
	if err := validateBudget(input); err != nil {
		return nil, err
	}
	client, err := s.clients.GetByID(ctx, input.ClientID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	budget := &domain.Budget{
		ClientID:    client.ID,
		ClientName:  client.Name,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Amount:      input.Amount,
		Currency:    input.Currency,
		Status:      input.Status,
	}
	if budget.Status == "" {
		budget.Status = domain.BudgetBorrador
	}
	if err := s.budgets.Create(ctx, budget); err != nil {
		return nil, apperrors.MapError(err)
	}
	return budget, nil
}

// UpdateBudget replaces a quote's fields.
func (s *BudgetService) UpdateBudget(ctx context.Context, id string, input BudgetInput) (*domain.Budget, error) {
	if err := validateBudget(input); err != nil {
		return nil, err
	}
	budget, err := s.budgets.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if input.ClientID != budget.ClientID {
		client, err := s.clients.GetByID(ctx, input.ClientID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		budget.ClientID = client.ID
		budget.ClientName = client.Name
	}
	budget.Title = strings.TrimSpace(input.Title)
	budget.Description = input.Description
	budget.Amount = input.Amount
	budget.Currency = input.Currency
	if input.Status != "" {
		budget.Status = input.Status
	}
	if err := s.budgets.Update(ctx, budget); err != nil {
		return nil, apperrors.MapError(err)
	}
	return budget, nil
}

// DeleteBudget removes a quote.
func (s *BudgetService) DeleteBudget(ctx context.Context, id string) error {
	return apperrors.MapError(s.budgets.Delete(ctx, id))
}

// GetBudget fetches a single quote.
func (s *BudgetService) GetBudget(ctx context.Context, id string) (*domain.Budget, error) {
	budget, err := s.budgets.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return budget, nil
}

// ListBudgets returns paginated quotes, optionally scoped to one client.
func (s *BudgetService) ListBudgets(ctx context.Context, clientID *string, limit, offset int) ([]domain.Budget, error) {
	budgets, err := s.budgets.List(ctx, clientID, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return budgets, nil
}

func validateBudget(input BudgetInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return apperrors.NewValidationError("title is required", nil)
	}
	if strings.TrimSpace(input.ClientID) == "" {
		return apperrors.NewValidationError("client is required", nil)
	}
	if !input.Currency.IsValid() {
		return apperrors.NewValidationError("unknown currency", map[string]any{"currency": input.Currency})
	}
	if input.Status != "" {
		switch input.Status {
		case domain.BudgetBorrador, domain.BudgetEnviado, domain.BudgetAprobado, domain.BudgetRechazado:
		default:
			return apperrors.NewValidationError("unknown budget status", map[string]any{"status": input.Status})
		}
	}
	return nil
}
