package services

import (
	"context"
	"fmt"

	"outlay/internal/core"
	"outlay/internal/store"
)

// StatisticsService derives per-category and per-month breakdowns over a
// user's entire expense history. Nothing is cached; every call re-reads and
// re-derives.
type StatisticsService struct {
	expenses   store.ExpenseStore
	categories store.CategoryStore
}

func NewStatisticsService(expenses store.ExpenseStore, categories store.CategoryStore) *StatisticsService {
	return &StatisticsService{
		expenses:   expenses,
		categories: categories,
	}
}

// GetStatisticsForUser aggregates every expense the user owns. The fetch is
// scoped by email at the store, so no per-record ownership check is run.
func (s *StatisticsService) GetStatisticsForUser(ctx context.Context, email string) (core.Aggregation, error) {
	expenses, err := s.expenses.FindByOwner(ctx, email)
	if err != nil {
		return core.Aggregation{}, fmt.Errorf("fetch expenses: %w", err)
	}
	names, err := categoryNames(ctx, s.categories, email)
	if err != nil {
		return core.Aggregation{}, err
	}
	return core.Aggregate(expenses, names), nil
}
