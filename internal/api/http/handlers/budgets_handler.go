package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ops-console/internal/api/dto"
	"github.com/spec-kit/ops-console/internal/domain"
	"github.com/spec-kit/ops-console/internal/service"
	apperrors "github.com/spec-kit/ops-console/pkg/util/errorutil"
)

// BudgetsHandler manages quote endpoints.
type BudgetsHandler struct {
	service *service.BudgetService
}

// NewBudgetsHandler constructs handler.
func NewBudgetsHandler(budgetService *service.BudgetService) *BudgetsHandler {
	return &BudgetsHandler{service: budgetService}
}

// CreateBudget POST /budgets.
func (h *BudgetsHandler) CreateBudget(c *fiber.Ctx) error {
	var req dto.BudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	budget, err := h.service.CreateBudget(c.Context(), budgetInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": budgetResponse(budget)})
}

// UpdateBudget PUT /budgets/:id.
func (h *BudgetsHandler) UpdateBudget(c *fiber.Ctx) error {
	var req dto.BudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	budget, err := h.service.UpdateBudget(c.Context(), c.Params("id"), budgetInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": budgetResponse(budget)})
}

// DeleteBudget DELETE /budgets/:id.
func (h *BudgetsHandler) DeleteBudget(c *fiber.Ctx) error {
	if err := h.service.DeleteBudget(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// GetBudget GET /budgets/:id.
func (h *BudgetsHandler) GetBudget(c *fiber.Ctx) error {
	budget, err := h.service.GetBudget(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": budgetResponse(budget)})
}

// ListBudgets GET /budgets.
func (h *BudgetsHandler) ListBudgets(c *fiber.Ctx) error {
	var clientID *string
	if id := c.Query("clientId"); id != "" {
		clientID = &id
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("pageSize"), 50)
	budgets, err := h.service.ListBudgets(c.Context(), clientID, pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}
	items := make([]dto.BudgetResponse, 0, len(budgets))
	for i := range budgets {
		items = append(items, budgetResponse(&budgets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func budgetInput(req dto.BudgetRequest) service.BudgetInput {
	return service.BudgetInput{
		ClientID:    req.ClientID,
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Status:      req.Status,
	}
}

func budgetResponse(budget *domain.Budget) dto.BudgetResponse {
	return dto.BudgetResponse{
		ID:          budget.ID,
		ClientID:    budget.ClientID,
		ClientName:  budget.ClientName,
		Title:       budget.Title,
		Description: budget.Description,
		Amount:      budget.Amount,
		Currency:    budget.Currency,
		Status:      budget.Status,
		CreatedAt:   budget.CreatedAt,
		UpdatedAt:   budget.UpdatedAt,
	}
}
