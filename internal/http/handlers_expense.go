package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"outlay/internal/core"
	"outlay/internal/services"
)

type expenseRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	CategoryID  string          `json:"categoryId"`
}

func decodeExpenseRequest(r *http.Request) (expenseRequest, core.Date, error) {
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, core.Date{}, badRequestf("invalid request body: %v", err)
	}
	date, err := core.ParseDate(req.Date)
	if err != nil {
		return req, core.Date{}, badRequestf("invalid date %q, expected YYYY-MM-DD", req.Date)
	}
	return req, date, nil
}

func (s *Server) listExpenses(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	q := r.URL.Query()

	views, err := s.expenses.ListExpenses(r.Context(), email,
		q.Get("sortBy"), q.Get("direction"), q.Get("filterBy"), q.Get("filterValue"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Expenses fetched successfully", views)
}

func (s *Server) getExpense(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	id := chi.URLParam(r, "id")

	view, err := s.expenses.GetExpense(r.Context(), email, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Expense fetched successfully", view)
}

func (s *Server) createExpense(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	req, date, err := decodeExpenseRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	view, err := s.expenses.CreateExpense(r.Context(), email, services.CreateExpenseParams{
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Date:        date,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, "Expense created successfully", view)
}

func (s *Server) updateExpense(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	id := chi.URLParam(r, "id")

	req, date, err := decodeExpenseRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	view, err := s.expenses.UpdateExpense(r.Context(), email, id, services.UpdateExpenseParams{
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Date:        date,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Expense updated successfully", view)
}

func (s *Server) deleteExpense(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	id := chi.URLParam(r, "id")

	if err := s.expenses.DeleteExpense(r.Context(), email, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Expense deleted successfully", nil)
}
