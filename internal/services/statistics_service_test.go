package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outlay/internal/core"
)

func TestGetStatisticsForUser(t *testing.T) {
	ms := newMemoryStore()
	seedUser(ms, "u1", "a@example.com")
	ms.categories = append(ms.categories,
		core.Category{ID: "c1", Name: "A", UserID: "u1"},
		core.Category{ID: "c2", Name: "B", UserID: "u1"},
	)
	seedExpense(ms, "e1", "u1", "c1", "10.00", core.NewDate(2025, time.March, 1), "")
	seedExpense(ms, "e2", "u1", "c2", "20.00", core.NewDate(2025, time.March, 15), "")
	seedExpense(ms, "e3", "u1", "c1", "15.00", core.NewDate(2025, time.March, 30), "")

	svc := NewStatisticsService(ms, ms)
	stats, err := svc.GetStatisticsForUser(context.Background(), "a@example.com")
	require.NoError(t, err)

	totals := make(map[string]decimal.Decimal)
	for _, c := range stats.Categories {
		totals[c.CategoryName] = c.TotalAmount
	}
	assert.True(t, totals["A"].Equal(decimal.RequireFromString("25.00")))
	assert.True(t, totals["B"].Equal(decimal.RequireFromString("20.00")))

	require.Len(t, stats.Months, 1)
	assert.Equal(t, "2025-03", stats.Months[0].MonthYear)
	assert.True(t, stats.Months[0].TotalAmount.Equal(decimal.RequireFromString("45.00")))
	assert.Len(t, stats.Months[0].Expenses, 3)
}

func TestGetStatisticsToleratesDeletedCategory(t *testing.T) {
	ms := newMemoryStore()
	seedUser(ms, "u1", "a@example.com")
	// The category row is gone but the expense still points at it.
	seedExpense(ms, "e1", "u1", "deleted-cat", "8.00", core.NewDate(2025, time.April, 4), "")
	seedExpense(ms, "e2", "u1", "", "2.00", core.NewDate(2025, time.April, 5), "")

	svc := NewStatisticsService(ms, ms)
	stats, err := svc.GetStatisticsForUser(context.Background(), "a@example.com")
	require.NoError(t, err, "unresolvable categories must not fail the call")

	require.Len(t, stats.Categories, 1)
	assert.Equal(t, core.UncategorizedGroup, stats.Categories[0].CategoryName)
	assert.True(t, stats.Categories[0].TotalAmount.Equal(decimal.RequireFromString("10.00")))
}

func TestGetStatisticsEmptyHistory(t *testing.T) {
	ms := newMemoryStore()
	seedUser(ms, "u1", "a@example.com")

	svc := NewStatisticsService(ms, ms)
	stats, err := svc.GetStatisticsForUser(context.Background(), "a@example.com")
	require.NoError(t, err)
	assert.Empty(t, stats.Categories)
	assert.Empty(t, stats.Months)
}
