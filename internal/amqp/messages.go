package amqp

import (
	"encoding/json"
	"time"

	"outlay/internal/core"
)

// ReportDelivery is one queued delivery job: a single user's report plus the
// window label it was generated for. Amounts travel as decimal strings.
type ReportDelivery struct {
	OwnerEmail     string              `json:"ownerEmail"`
	Window         string              `json:"window"`
	TotalAmount    string              `json:"totalAmount"`
	CategoryTotals []CategoryTotalLine `json:"categoryTotals"`
	Expenses       []ExpenseLine       `json:"expenses"`
	Timestamp      time.Time           `json:"timestamp"`
}

type CategoryTotalLine struct {
	CategoryName string `json:"categoryName"`
	TotalAmount  string `json:"totalAmount"`
}

type ExpenseLine struct {
	Date        string `json:"date"`
	Amount      string `json:"amount"`
	Description string `json:"description,omitempty"`
}

// NewReportDelivery flattens a UserReport into a delivery job.
func NewReportDelivery(report core.UserReport, window string) *ReportDelivery {
	totals := make([]CategoryTotalLine, len(report.CategoryTotals))
	for i, ct := range report.CategoryTotals {
		totals[i] = CategoryTotalLine{
			CategoryName: ct.CategoryName,
			TotalAmount:  ct.TotalAmount.String(),
		}
	}
	lines := make([]ExpenseLine, len(report.Expenses))
	for i, e := range report.Expenses {
		lines[i] = ExpenseLine{
			Date:        e.Date,
			Amount:      e.Amount.String(),
			Description: e.Description,
		}
	}
	return &ReportDelivery{
		OwnerEmail:     report.OwnerEmail,
		Window:         window,
		TotalAmount:    report.TotalAmount.String(),
		CategoryTotals: totals,
		Expenses:       lines,
		Timestamp:      time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ReportDelivery) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ReportDeliveryFromJSON creates a message from JSON bytes
func ReportDeliveryFromJSON(data []byte) (*ReportDelivery, error) {
	var msg ReportDelivery
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
