// Package core holds the domain model and the aggregation engine.
//
// Aggregation is pure: it performs no I/O and derives everything from the
// expense slice it is handed. Group iteration order is the order in which a
// group's first member appears in the input, which keeps output deterministic
// for a given fetch without relying on map iteration.
package core

import "github.com/shopspring/decimal"

// UncategorizedGroup is the bucket that receives expenses whose category
// reference is absent or no longer resolves. Routing them here keeps a single
// dangling reference from failing a whole aggregation call.
const UncategorizedGroup = "Uncategorized"

type (
	// CategoryTotal is a category display name with the summed amount of its
	// members. Derived, never persisted.
	CategoryTotal struct {
		CategoryName string          `json:"categoryName"`
		TotalAmount  decimal.Decimal `json:"totalAmount"`
	}

	// CategoryBreakdown is a CategoryTotal with the itemized member list,
	// preserved in input order.
	CategoryBreakdown struct {
		CategoryName string          `json:"categoryName"`
		TotalAmount  decimal.Decimal `json:"totalAmount"`
		Expenses     []ExpenseView   `json:"expenses"`
	}

	// MonthBucket groups expenses by the "YYYY-MM" projection of their date.
	MonthBucket struct {
		MonthYear   string          `json:"monthYear"`
		TotalAmount decimal.Decimal `json:"totalAmount"`
		Expenses    []ExpenseView   `json:"expenses"`
	}

	// Aggregation is the combined category and month view of one record set.
	Aggregation struct {
		Categories []CategoryBreakdown `json:"categoryBreakdown"`
		Months     []MonthBucket       `json:"monthlyBreakdown"`
	}
)

// GroupName resolves the category group an expense belongs to. Expenses
// without a category, or whose category does not resolve to a display name,
// land in UncategorizedGroup.
func GroupName(e Expense, categoryNames map[string]string) string {
	if e.CategoryID == "" {
		return UncategorizedGroup
	}
	name, ok := categoryNames[e.CategoryID]
	if !ok || name == "" {
		return UncategorizedGroup
	}
	return name
}

// SumAmounts adds up expense amounts with exact decimal arithmetic.
func SumAmounts(expenses []Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// Aggregate partitions expenses by category display name and by calendar
// month, summing each partition. categoryNames maps category ID to display
// name for the owning user.
func Aggregate(expenses []Expense, categoryNames map[string]string) Aggregation {
	byCategory := partition(expenses, func(e Expense) string {
		return GroupName(e, categoryNames)
	})
	byMonth := partition(expenses, func(e Expense) string {
		return e.Date.MonthKey()
	})

	agg := Aggregation{
		Categories: make([]CategoryBreakdown, 0, len(byCategory)),
		Months:     make([]MonthBucket, 0, len(byMonth)),
	}
	for _, g := range byCategory {
		agg.Categories = append(agg.Categories, CategoryBreakdown{
			CategoryName: g.key,
			TotalAmount:  SumAmounts(g.items),
			Expenses:     views(g.items),
		})
	}
	for _, g := range byMonth {
		agg.Months = append(agg.Months, MonthBucket{
			MonthYear:   g.key,
			TotalAmount: SumAmounts(g.items),
			Expenses:    views(g.items),
		})
	}
	return agg
}

// CategoryTotals partitions expenses by category display name and returns the
// per-group sums without the itemized lists.
func CategoryTotals(expenses []Expense, categoryNames map[string]string) []CategoryTotal {
	groups := partition(expenses, func(e Expense) string {
		return GroupName(e, categoryNames)
	})
	totals := make([]CategoryTotal, 0, len(groups))
	for _, g := range groups {
		totals = append(totals, CategoryTotal{
			CategoryName: g.key,
			TotalAmount:  SumAmounts(g.items),
		})
	}
	return totals
}

type group struct {
	key   string
	items []Expense
}

// partition splits expenses into insertion-ordered groups. Members keep their
// relative input order.
func partition(expenses []Expense, keyOf func(Expense) string) []group {
	index := make(map[string]int)
	var groups []group
	for _, e := range expenses {
		k := keyOf(e)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, group{key: k})
		}
		groups[i].items = append(groups[i].items, e)
	}
	return groups
}

func views(expenses []Expense) []ExpenseView {
	out := make([]ExpenseView, len(expenses))
	for i, e := range expenses {
		out[i] = e.View()
	}
	return out
}
