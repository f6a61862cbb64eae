package mail

import (
	"fmt"
	"html"
	"net/smtp"
	"strings"

	"outlay/internal/amqp"
)

// Mailer sends report delivery jobs as HTML emails over plain SMTP.
type Mailer struct {
	addr string
	from string
}

func NewMailer(addr, from string) *Mailer {
	return &Mailer{addr: addr, from: from}
}

// SendReport renders a delivery job and mails it to the report's owner.
func (m *Mailer) SendReport(job *amqp.ReportDelivery) error {
	msg := buildMessage(m.from, job.OwnerEmail, subjectFor(job.Window), renderHTML(job))
	if err := smtp.SendMail(m.addr, nil, m.from, []string{job.OwnerEmail}, msg); err != nil {
		return fmt.Errorf("send report to %s: %w", job.OwnerEmail, err)
	}
	return nil
}

func subjectFor(window string) string {
	switch window {
	case "monthly":
		return "Monthly Expense Report"
	case "weekly":
		return "Weekly Expense Report"
	default:
		return "Expense Report"
	}
}

func renderHTML(job *amqp.ReportDelivery) string {
	var b strings.Builder
	b.WriteString("<h1>" + subjectFor(job.Window) + "</h1>")
	b.WriteString("<p>Total Expenses: " + job.TotalAmount + "</p>")
	b.WriteString("<h2>Expenses by Category</h2>")
	b.WriteString("<ul>")
	for _, ct := range job.CategoryTotals {
		b.WriteString("<li>" + html.EscapeString(ct.CategoryName) + ": " + ct.TotalAmount + "</li>")
	}
	b.WriteString("</ul>")
	b.WriteString("<h2>All Expenses</h2>")
	b.WriteString("<ul>")
	for _, e := range job.Expenses {
		b.WriteString("<li>Date: " + e.Date + ", Amount: " + e.Amount)
		if e.Description != "" {
			b.WriteString(", Description: " + html.EscapeString(e.Description))
		}
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}

func buildMessage(from, to, subject, htmlBody string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	b.WriteString("\r\n")
	return []byte(b.String())
}
