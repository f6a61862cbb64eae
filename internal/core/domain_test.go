package core

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-07")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "2025-03-07" {
		t.Errorf("round trip = %q", d.String())
	}
	if d.MonthKey() != "2025-03" {
		t.Errorf("month key = %q", d.MonthKey())
	}
	if _, err := ParseDate("07/03/2025"); err == nil {
		t.Error("expected error for non ISO date")
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		UserID: "u1",
		Amount: decimal.RequireFromString("10.00"),
		Date:   NewDate(2025, time.January, 1),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	// Sign is not validated; negative amounts are legitimate records.
	negative := good
	negative.Amount = decimal.RequireFromString("-4.20")
	if err := negative.Validate(); err != nil {
		t.Fatalf("negative amount should validate, got %v", err)
	}

	cases := []struct {
		name string
		e    Expense
	}{
		{"zero date", Expense{UserID: "u1"}},
		{"no owner", Expense{Date: NewDate(2025, time.January, 1)}},
		{"long description", Expense{
			UserID:      "u1",
			Date:        NewDate(2025, time.January, 1),
			Description: strings.Repeat("x", 201),
		}},
	}
	for _, tc := range cases {
		if err := tc.e.Validate(); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestExpenseView(t *testing.T) {
	e := Expense{
		ID:          "e1",
		UserID:      "u1",
		CategoryID:  "c1",
		Amount:      decimal.RequireFromString("9.99"),
		Date:        NewDate(2025, time.July, 4),
		Description: "fireworks",
	}
	v := e.View()
	if v.ID != "e1" || v.OwnerID != "u1" || v.CategoryID != "c1" {
		t.Errorf("identity fields not preserved: %+v", v)
	}
	if v.Date != "2025-07-04" {
		t.Errorf("date = %q", v.Date)
	}
	if !v.Amount.Equal(e.Amount) {
		t.Errorf("amount = %s", v.Amount)
	}
}

func TestMonthlyWindow(t *testing.T) {
	cases := []struct {
		now         time.Time
		start, end  string
	}{
		{time.Date(2025, time.April, 15, 13, 0, 0, 0, time.UTC), "2025-03-01", "2025-03-31"},
		{time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC), "2024-12-01", "2024-12-31"},
		{time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), "2024-02-01", "2024-02-29"}, // leap year
	}
	for _, tc := range cases {
		start, end := MonthlyWindow(tc.now)
		if start.String() != tc.start || end.String() != tc.end {
			t.Errorf("MonthlyWindow(%s) = [%s, %s], want [%s, %s]",
				tc.now.Format("2006-01-02"), start, end, tc.start, tc.end)
		}
	}
}

func TestWeeklyWindow(t *testing.T) {
	now := time.Date(2025, time.August, 31, 9, 30, 0, 0, time.UTC)
	start, end := WeeklyWindow(now)
	if end.String() != "2025-08-31" {
		t.Errorf("end = %s", end)
	}
	if start.String() != "2025-08-25" {
		t.Errorf("start = %s", start)
	}
}

func TestNewUserReportEmptyWindow(t *testing.T) {
	report := NewUserReport("b@example.com", nil, nil)
	if report.Expenses == nil || report.CategoryTotals == nil {
		t.Fatal("empty report must use empty slices, not nil")
	}
	if len(report.Expenses) != 0 || len(report.CategoryTotals) != 0 {
		t.Errorf("expected empty report, got %+v", report)
	}
	if !report.TotalAmount.Equal(decimal.Zero) {
		t.Errorf("total = %s, want 0", report.TotalAmount)
	}
}
