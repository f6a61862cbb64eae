package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"outlay/internal/core"
	"outlay/internal/log"
	"outlay/internal/services"
	"outlay/internal/store"
)

// emptyStore backs API-key gate tests with a user population of zero.
type emptyStore struct{}

func (emptyStore) FindByOwner(context.Context, string) ([]core.Expense, error) { return nil, nil }
func (emptyStore) FindByOwnerAndDateRange(context.Context, string, core.Date, core.Date) ([]core.Expense, error) {
	return nil, nil
}
func (emptyStore) FindExpenseByID(ctx context.Context, id string) (core.Expense, error) {
	return core.Expense{}, core.NewNotFound("expense", id)
}
func (emptyStore) CreateExpense(context.Context, core.Expense) error { return nil }
func (emptyStore) UpdateExpense(context.Context, core.Expense) error { return nil }
func (emptyStore) DeleteExpense(context.Context, string) error       { return nil }

func (emptyStore) FindAllUsers(context.Context) ([]core.User, error) { return nil, nil }
func (emptyStore) FindUserByEmail(ctx context.Context, email string) (core.User, error) {
	return core.User{}, core.NewNotFound("user", email)
}
func (emptyStore) CreateUser(context.Context, core.User) error { return nil }

func (emptyStore) FindCategoriesByOwner(context.Context, string) ([]core.Category, error) {
	return nil, nil
}
func (emptyStore) FindCategoryByID(ctx context.Context, id string) (core.Category, error) {
	return core.Category{}, core.NewNotFound("category", id)
}
func (emptyStore) CreateCategory(context.Context, core.Category) error { return nil }
func (emptyStore) UpdateCategory(context.Context, core.Category) error { return nil }
func (emptyStore) DeleteCategory(context.Context, string) error        { return nil }

var _ store.ExpenseStore = emptyStore{}
var _ store.UserStore = emptyStore{}
var _ store.CategoryStore = emptyStore{}

func newTestServer(apiKey string) *Server {
	st := emptyStore{}
	logger := log.New(log.DefaultConfig())
	return NewServer(":0", apiKey, Deps{
		Expenses:   services.NewExpenseService(st, st, st),
		Categories: services.NewCategoryService(st, st),
		Users:      services.NewUserService(st),
		Statistics: services.NewStatisticsService(st, st),
		Reports:    services.NewReportService(st, st, st, 2),
		Logger:     logger,
	})
}

func TestReportEndpointsRequireAPIKey(t *testing.T) {
	srv := newTestServer("secret")

	tests := []struct {
		name       string
		path       string
		key        string
		wantStatus int
	}{
		{"monthly missing key", "/api/reports/monthly", "", http.StatusForbidden},
		{"monthly wrong key", "/api/reports/monthly", "nope", http.StatusForbidden},
		{"monthly valid key", "/api/reports/monthly", "secret", http.StatusOK},
		{"weekly wrong key", "/api/reports/weekly", "nope", http.StatusForbidden},
		{"weekly valid key", "/api/reports/weekly", "secret", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.key != "" {
				req.Header.Set("X-API-Key", tt.key)
			}
			rec := httptest.NewRecorder()

			srv.Handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestUnconfiguredAPIKeyRejectsEverything(t *testing.T) {
	srv := newTestServer("")

	req := httptest.NewRequest(http.MethodGet, "/api/reports/monthly", nil)
	req.Header.Set("X-API-Key", "")
	rec := httptest.NewRecorder()

	srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestReportTriggerEmptyPopulation(t *testing.T) {
	srv := newTestServer("secret")

	req := httptest.NewRequest(http.MethodGet, "/api/reports/weekly", nil)
	req.Header.Set("X-API-Key", "secret")
	rec := httptest.NewRecorder()

	srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body apiResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Status != http.StatusOK {
		t.Errorf("envelope status = %d, want %d", body.Status, http.StatusOK)
	}
}

func TestGetUserNotFound(t *testing.T) {
	srv := newTestServer("secret")

	req := httptest.NewRequest(http.MethodGet, "/api/users/ghost@example.com", nil)
	rec := httptest.NewRecorder()

	srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if !strings.Contains(rec.Body.String(), "user not found") {
		t.Errorf("body should mention missing user, got %s", rec.Body.String())
	}
}

func TestCreateExpenseRejectsBadDate(t *testing.T) {
	srv := newTestServer("secret")

	body := strings.NewReader(`{"amount": "10.00", "date": "03/01/2025", "description": "x"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/expenses/user/alice@example.com/", body)
	rec := httptest.NewRecorder()

	srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestWriteErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", core.NewNotFound("expense", "e1"), http.StatusNotFound},
		{"wrapped not found", wrapErr(core.NewNotFound("user", "u1")), http.StatusNotFound},
		{"ownership", &core.OwnershipError{Kind: "expense"}, http.StatusForbidden},
		{"bad request", badRequestf("nope"), http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var body apiResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if body.Status != tt.wantStatus {
				t.Errorf("envelope status = %d, want %d", body.Status, tt.wantStatus)
			}
			if body.Message == "" {
				t.Error("envelope message should not be empty")
			}
		})
	}
}

func wrapErr(err error) error {
	return errors.Join(errors.New("lookup failed"), err)
}
