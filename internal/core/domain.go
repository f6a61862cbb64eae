package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type (
	// Date is a timezone-naive calendar date (no time component).
	Date struct {
		time.Time
	}

	User struct {
		ID        string
		Email     string
		FirstName string
		LastName  string
		CreatedAt time.Time
		UpdatedAt time.Time
	}

	// Category belongs to one user. Display names are not required to be
	// unique per owner at this layer.
	Category struct {
		ID          string
		Name        string
		Description string
		UserID      string
		CreatedAt   time.Time
		UpdatedAt   time.Time
	}

	// Expense is the raw record owned by the store. CategoryID is empty for
	// uncategorized expenses and may dangle after a category is deleted;
	// downstream consumers have to tolerate both.
	Expense struct {
		ID          string
		UserID      string
		CategoryID  string
		Amount      decimal.Decimal
		Date        Date
		Description string
		CreatedAt   time.Time
		UpdatedAt   time.Time
	}

	// ExpenseView is the presentation shape handed back to callers.
	ExpenseView struct {
		ID          string          `json:"id"`
		Amount      decimal.Decimal `json:"amount"`
		Date        string          `json:"date"`
		Description string          `json:"description,omitempty"`
		CategoryID  string          `json:"categoryId,omitempty"`
		OwnerID     string          `json:"ownerId"`
		CreatedAt   time.Time       `json:"createdAt"`
		UpdatedAt   time.Time       `json:"updatedAt"`
	}
)

var (
	ErrEmptyEmail = errors.New("empty email")
	ErrEmptyOwner = errors.New("empty owner")
	ErrZeroDate   = errors.New("date cannot be zero")
)

// NewDate creates a Date at UTC midnight.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format("2006-01-02")
}

// MonthKey returns the zero-padded "YYYY-MM" projection of the date.
func (d Date) MonthKey() string {
	return d.Format("2006-01")
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrZeroDate
	}
	return nil
}

// Validate checks the fields the store requires. The amount's sign is
// deliberately unconstrained; negative amounts are valid data.
func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.UserID) == "" {
		return ErrEmptyOwner
	}
	if len(e.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}

func (u User) Validate() error {
	if strings.TrimSpace(u.Email) == "" {
		return ErrEmptyEmail
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("empty category name")
	}
	if strings.TrimSpace(c.UserID) == "" {
		return ErrEmptyOwner
	}
	return nil
}

// View projects an expense into its caller-facing shape.
func (e Expense) View() ExpenseView {
	return ExpenseView{
		ID:          e.ID,
		Amount:      e.Amount,
		Date:        e.Date.String(),
		Description: e.Description,
		CategoryID:  e.CategoryID,
		OwnerID:     e.UserID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
