package services

import (
	"context"
	"sync"

	"outlay/internal/core"
)

// memoryStore is a hand-rolled in-memory store used by the service
// tests. It implements store.ExpenseStore, store.UserStore and
// store.CategoryStore.
type memoryStore struct {
	mu         sync.Mutex
	users      []core.User
	categories []core.Category
	expenses   []core.Expense

	// expenseErrs injects a fetch failure for a given owner email.
	expenseErrs map[string]error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{expenseErrs: make(map[string]error)}
}

func (m *memoryStore) userByID(id string) (core.User, bool) {
	for _, u := range m.users {
		if u.ID == id {
			return u, true
		}
	}
	return core.User{}, false
}

func (m *memoryStore) FindByOwner(ctx context.Context, email string) ([]core.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.expenseErrs[email]; err != nil {
		return nil, err
	}
	var out []core.Expense
	for _, e := range m.expenses {
		if u, ok := m.userByID(e.UserID); ok && u.Email == email {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memoryStore) FindByOwnerAndDateRange(ctx context.Context, email string, start, end core.Date) ([]core.Expense, error) {
	all, err := m.FindByOwner(ctx, email)
	if err != nil {
		return nil, err
	}
	var out []core.Expense
	for _, e := range all {
		if e.Date.Time.Before(start.Time) || e.Date.Time.After(end.Time) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (m *memoryStore) FindExpenseByID(ctx context.Context, id string) (core.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.expenses {
		if e.ID == id {
			return e, nil
		}
	}
	return core.Expense{}, core.NewNotFound("expense", id)
}

func (m *memoryStore) CreateExpense(ctx context.Context, e core.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expenses = append(m.expenses, e)
	return nil
}

func (m *memoryStore) UpdateExpense(ctx context.Context, e core.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.expenses {
		if m.expenses[i].ID == e.ID {
			m.expenses[i] = e
			return nil
		}
	}
	return core.NewNotFound("expense", e.ID)
}

func (m *memoryStore) DeleteExpense(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.expenses {
		if m.expenses[i].ID == id {
			m.expenses = append(m.expenses[:i], m.expenses[i+1:]...)
			return nil
		}
	}
	return core.NewNotFound("expense", id)
}

func (m *memoryStore) FindAllUsers(ctx context.Context) ([]core.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]core.User(nil), m.users...), nil
}

func (m *memoryStore) FindUserByEmail(ctx context.Context, email string) (core.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return core.User{}, core.NewNotFound("user", email)
}

func (m *memoryStore) CreateUser(ctx context.Context, u core.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = append(m.users, u)
	return nil
}

func (m *memoryStore) FindCategoriesByOwner(ctx context.Context, email string) ([]core.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []core.Category
	for _, c := range m.categories {
		if u, ok := m.userByID(c.UserID); ok && u.Email == email {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memoryStore) FindCategoryByID(ctx context.Context, id string) (core.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return core.Category{}, core.NewNotFound("category", id)
}

func (m *memoryStore) CreateCategory(ctx context.Context, c core.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories = append(m.categories, c)
	return nil
}

func (m *memoryStore) UpdateCategory(ctx context.Context, c core.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.categories {
		if m.categories[i].ID == c.ID {
			m.categories[i] = c
			return nil
		}
	}
	return core.NewNotFound("category", c.ID)
}

func (m *memoryStore) DeleteCategory(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.categories {
		if m.categories[i].ID == id {
			m.categories = append(m.categories[:i], m.categories[i+1:]...)
			return nil
		}
	}
	return core.NewNotFound("category", id)
}
