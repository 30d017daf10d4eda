package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ops-console/internal/domain"
)

// BudgetRepository persists quotes.
type BudgetRepository interface {
	Create(ctx context.Context, budget *domain.Budget) error
	Update(ctx context.Context, budget *domain.Budget) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Budget, error)
	List(ctx context.Context, clientID *string, limit, offset int) ([]domain.Budget, error)
}

type budgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository builds repository.
func NewBudgetRepository(pool *pgxpool.Pool) BudgetRepository {
	return &budgetRepository{pool: pool}
}

func (r *budgetRepository) Create(ctx context.Context, budget *domain.Budget) error {
	const query = `
        INSERT INTO budgets (client_id, client_name, title, description, amount, currency, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		budget.ClientID,
		budget.ClientName,
		budget.Title,
		budget.Description,
		budget.Amount,
		budget.Currency,
		budget.Status,
	).Scan(&budget.ID, &budget.CreatedAt, &budget.UpdatedAt)
}

func (r *budgetRepository) Update(ctx context.Context, budget *domain.Budget) error {
	const query = `
        UPDATE budgets SET client_id=$1, client_name=$2, title=$3, description=$4,
            amount=$5, currency=$6, status=$7, updated_at=NOW()
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		budget.ClientID,
		budget.ClientName,
		budget.Title,
		budget.Description,
		budget.Amount,
		budget.Currency,
		budget.Status,
		budget.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *budgetRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM budgets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *budgetRepository) GetByID(ctx context.Context, id string) (*domain.Budget, error) {
	const query = `
        SELECT id, client_id, client_name, title, description, amount, currency, status, created_at, updated_at
        FROM budgets WHERE id=$1`
	var budget domain.Budget
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&budget.ID,
		&budget.ClientID,
		&budget.ClientName,
		&budget.Title,
		&budget.Description,
		&budget.Amount,
		&budget.Currency,
		&budget.Status,
		&budget.CreatedAt,
		&budget.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &budget, nil
}

func (r *budgetRepository) List(ctx context.Context, clientID *string, limit, offset int) ([]domain.Budget, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT id, client_id, client_name, title, description, amount, currency, status, created_at, updated_at
        FROM budgets`
	args := []any{limit, offset}
	if clientID != nil {
		query += ` WHERE client_id=$3`
		args = append(args, *clientID)
	}
	query += ` ORDER BY updated_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Budget
	for rows.Next() {
		var budget domain.Budget
		if err := rows.Scan(
			&budget.ID,
			&budget.ClientID,
			&budget.ClientName,
			&budget.Title,
			&budget.Description,
			&budget.Amount,
			&budget.Currency,
			&budget.Status,
			&budget.CreatedAt,
			&budget.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, budget)
	}
	return result, rows.Err()
}
