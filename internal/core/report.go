package core

import (
	"time"

	"github.com/shopspring/decimal"
)

type (
	// UserReport is one user's financial summary over a report window.
	// A user with no expenses in the window still gets a report: empty
	// slices and a zero total, never nil fields.
	UserReport struct {
		OwnerEmail     string          `json:"ownerEmail"`
		Expenses       []ExpenseView   `json:"expenses"`
		TotalAmount    decimal.Decimal `json:"totalAmount"`
		CategoryTotals []CategoryTotal `json:"categoryTotals"`
	}

	// ReportFailure marks a single user whose report could not be computed.
	// One bad user never aborts the rest of the batch.
	ReportFailure struct {
		OwnerEmail string
		Err        error
	}
)

// NewUserReport derives a report from the expenses fetched for one user's
// window. categoryNames maps the user's category IDs to display names.
func NewUserReport(email string, expenses []Expense, categoryNames map[string]string) UserReport {
	return UserReport{
		OwnerEmail:     email,
		Expenses:       views(expenses),
		TotalAmount:    SumAmounts(expenses),
		CategoryTotals: CategoryTotals(expenses, categoryNames),
	}
}

// MonthlyWindow returns the first and last calendar day of the month before
// the one containing now.
func MonthlyWindow(now time.Time) (Date, Date) {
	year, month, _ := now.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	last := first.AddDate(0, 1, -1)
	return Date{Time: first}, Date{Time: last}
}

// WeeklyWindow returns the 7 days ending on the day containing now,
// inclusive on both ends.
func WeeklyWindow(now time.Time) (Date, Date) {
	year, month, day := now.Date()
	end := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{Time: end.AddDate(0, 0, -6)}, Date{Time: end}
}
