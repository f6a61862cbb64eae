package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"outlay/internal/core"
	"outlay/internal/store"
)

// ExpenseService builds expense views for one user and runs the
// ownership-guarded single-record operations.
type ExpenseService struct {
	expenses   store.ExpenseStore
	users      store.UserStore
	categories store.CategoryStore
}

func NewExpenseService(expenses store.ExpenseStore, users store.UserStore, categories store.CategoryStore) *ExpenseService {
	return &ExpenseService{
		expenses:   expenses,
		users:      users,
		categories: categories,
	}
}

// CreateExpenseParams carries caller input for a new expense. CategoryID is
// optional; when set it must resolve to an existing category.
type CreateExpenseParams struct {
	CategoryID  string
	Amount      decimal.Decimal
	Date        core.Date
	Description string
}

// UpdateExpenseParams mirrors CreateExpenseParams for updates. An empty
// CategoryID leaves the current category untouched.
type UpdateExpenseParams struct {
	CategoryID  string
	Amount      decimal.Decimal
	Date        core.Date
	Description string
}

// ListExpenses returns all of one user's expenses as presentation views,
// optionally filtered, sorted by the requested field and direction.
//
// Missing sort field defaults to "date", missing direction to ascending.
// An unrecognized filter field filters nothing. The sort is stable: records
// with equal keys keep their fetched relative order.
func (s *ExpenseService) ListExpenses(ctx context.Context, ownerEmail, sortField, direction, filterField, filterValue string) ([]core.ExpenseView, error) {
	expenses, err := s.expenses.FindByOwner(ctx, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	expenses = filterExpenses(expenses, filterField, filterValue)
	sortExpenses(expenses, sortField, direction)

	views := make([]core.ExpenseView, len(expenses))
	for i, e := range expenses {
		views[i] = e.View()
	}
	return views, nil
}

// GetExpense fetches a single expense after verifying it belongs to the
// acting user.
func (s *ExpenseService) GetExpense(ctx context.Context, ownerEmail, expenseID string) (core.ExpenseView, error) {
	user, err := resolveOwner(ctx, s.users, ownerEmail)
	if err != nil {
		return core.ExpenseView{}, err
	}
	expense, err := s.expenses.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return core.ExpenseView{}, fmt.Errorf("get expense: %w", err)
	}
	if err := checkOwnership("expense", user, expense.UserID); err != nil {
		return core.ExpenseView{}, err
	}
	return expense.View(), nil
}

func (s *ExpenseService) CreateExpense(ctx context.Context, ownerEmail string, params CreateExpenseParams) (core.ExpenseView, error) {
	user, err := resolveOwner(ctx, s.users, ownerEmail)
	if err != nil {
		return core.ExpenseView{}, err
	}

	if params.CategoryID != "" {
		if _, err := s.categories.FindCategoryByID(ctx, params.CategoryID); err != nil {
			return core.ExpenseView{}, fmt.Errorf("resolve category: %w", err)
		}
	}

	now := time.Now().UTC()
	expense := core.Expense{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		CategoryID:  params.CategoryID,
		Amount:      params.Amount,
		Date:        params.Date,
		Description: params.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := expense.Validate(); err != nil {
		return core.ExpenseView{}, fmt.Errorf("validate expense: %w", err)
	}

	if err := s.expenses.CreateExpense(ctx, expense); err != nil {
		return core.ExpenseView{}, fmt.Errorf("create expense: %w", err)
	}

	slog.InfoContext(ctx, "expense created",
		"expense_id", expense.ID,
		"user_email", ownerEmail,
		"amount", expense.Amount.String())

	return expense.View(), nil
}

func (s *ExpenseService) UpdateExpense(ctx context.Context, ownerEmail, expenseID string, params UpdateExpenseParams) (core.ExpenseView, error) {
	user, err := resolveOwner(ctx, s.users, ownerEmail)
	if err != nil {
		return core.ExpenseView{}, err
	}
	expense, err := s.expenses.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return core.ExpenseView{}, fmt.Errorf("update expense: %w", err)
	}
	if err := checkOwnership("expense", user, expense.UserID); err != nil {
		return core.ExpenseView{}, err
	}

	if params.CategoryID != "" {
		if _, err := s.categories.FindCategoryByID(ctx, params.CategoryID); err != nil {
			return core.ExpenseView{}, fmt.Errorf("resolve category: %w", err)
		}
		expense.CategoryID = params.CategoryID
	}
	expense.Amount = params.Amount
	expense.Date = params.Date
	expense.Description = params.Description
	expense.UpdatedAt = time.Now().UTC()

	if err := expense.Validate(); err != nil {
		return core.ExpenseView{}, fmt.Errorf("validate expense: %w", err)
	}
	if err := s.expenses.UpdateExpense(ctx, expense); err != nil {
		return core.ExpenseView{}, fmt.Errorf("update expense: %w", err)
	}
	return expense.View(), nil
}

func (s *ExpenseService) DeleteExpense(ctx context.Context, ownerEmail, expenseID string) error {
	user, err := resolveOwner(ctx, s.users, ownerEmail)
	if err != nil {
		return err
	}
	expense, err := s.expenses.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if err := checkOwnership("expense", user, expense.UserID); err != nil {
		return err
	}
	if err := s.expenses.DeleteExpense(ctx, expense.ID); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	slog.InfoContext(ctx, "expense deleted",
		"expense_id", expense.ID,
		"user_email", ownerEmail)
	return nil
}

// filterExpenses retains records where the named field's string rendering
// contains the filter value. Both arguments must be non-blank for the filter
// to apply; an unknown field name keeps everything.
func filterExpenses(expenses []core.Expense, field, value string) []core.Expense {
	if strings.TrimSpace(field) == "" || strings.TrimSpace(value) == "" {
		return expenses
	}

	var keep func(core.Expense) bool
	switch strings.ToLower(field) {
	case "category":
		keep = func(e core.Expense) bool {
			return e.CategoryID != "" && strings.Contains(e.CategoryID, value)
		}
	case "amount":
		keep = func(e core.Expense) bool {
			return strings.Contains(e.Amount.String(), value)
		}
	case "date":
		keep = func(e core.Expense) bool {
			return strings.Contains(e.Date.String(), value)
		}
	case "description":
		lower := strings.ToLower(value)
		keep = func(e core.Expense) bool {
			return strings.Contains(strings.ToLower(e.Description), lower)
		}
	case "createdat":
		keep = func(e core.Expense) bool {
			return strings.Contains(e.CreatedAt.Format(time.RFC3339Nano), value)
		}
	case "updatedat":
		keep = func(e core.Expense) bool {
			return strings.Contains(e.UpdatedAt.Format(time.RFC3339Nano), value)
		}
	default:
		return expenses
	}

	filtered := make([]core.Expense, 0, len(expenses))
	for _, e := range expenses {
		if keep(e) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// sortExpenses orders records by amount or date. Anything other than
// "amount" falls back to date ordering; anything other than "desc" is
// ascending. Stable, so ties keep input order.
func sortExpenses(expenses []core.Expense, sortField, direction string) {
	desc := strings.EqualFold(direction, "desc")

	var less func(a, b core.Expense) bool
	if strings.EqualFold(sortField, "amount") {
		less = func(a, b core.Expense) bool { return a.Amount.LessThan(b.Amount) }
	} else {
		less = func(a, b core.Expense) bool { return a.Date.Time.Before(b.Date.Time) }
	}

	sort.SliceStable(expenses, func(i, j int) bool {
		if desc {
			return less(expenses[j], expenses[i])
		}
		return less(expenses[i], expenses[j])
	})
}
