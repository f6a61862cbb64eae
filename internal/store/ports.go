// Package store defines the persistence contracts consumed by the service
// layer. Implementations live in internal/storage.
package store

import (
	"context"

	"outlay/internal/core"
)

// ExpenseStore is the expense side of the store. Bulk reads are
// scoped by owner email at the store level; lookups by primary key return a
// *core.NotFoundError when the record is absent.
type ExpenseStore interface {
	FindByOwner(ctx context.Context, email string) ([]core.Expense, error)
	FindByOwnerAndDateRange(ctx context.Context, email string, start, end core.Date) ([]core.Expense, error)
	FindExpenseByID(ctx context.Context, id string) (core.Expense, error)
	CreateExpense(ctx context.Context, e core.Expense) error
	UpdateExpense(ctx context.Context, e core.Expense) error
	DeleteExpense(ctx context.Context, id string) error
}

// UserStore resolves user identities for the ownership guard and enumerates
// the population for report runs.
type UserStore interface {
	FindAllUsers(ctx context.Context) ([]core.User, error)
	FindUserByEmail(ctx context.Context, email string) (core.User, error)
	CreateUser(ctx context.Context, u core.User) error
}

// CategoryStore resolves category references. Deleting a category does not
// touch the expenses that point at it; consumers tolerate dangling IDs.
type CategoryStore interface {
	FindCategoriesByOwner(ctx context.Context, email string) ([]core.Category, error)
	FindCategoryByID(ctx context.Context, id string) (core.Category, error)
	CreateCategory(ctx context.Context, c core.Category) error
	UpdateCategory(ctx context.Context, c core.Category) error
	DeleteCategory(ctx context.Context, id string) error
}
