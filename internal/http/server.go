package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"outlay/internal/amqp"
	"outlay/internal/log"
	"outlay/internal/services"
)

// ReportPublisher queues one delivery job per generated report. The AMQP
// client satisfies this; a nil publisher disables delivery.
type ReportPublisher interface {
	PublishReportDelivery(ctx context.Context, msg *amqp.ReportDelivery) error
}

// Deps bundles everything the HTTP layer needs.
type Deps struct {
	Expenses   *services.ExpenseService
	Categories *services.CategoryService
	Users      *services.UserService
	Statistics *services.StatisticsService
	Reports    *services.ReportService
	Publisher  ReportPublisher
	Logger     *log.Logger
}

type Server struct {
	http.Server

	expenses   *services.ExpenseService
	categories *services.CategoryService
	users      *services.UserService
	statistics *services.StatisticsService
	reports    *services.ReportService
	publisher  ReportPublisher
	apiKey     string
	logger     *log.Logger
}

func NewServer(addr, apiKey string, deps Deps) *Server {
	s := &Server{
		expenses:   deps.Expenses,
		categories: deps.Categories,
		users:      deps.Users,
		statistics: deps.Statistics,
		reports:    deps.Reports,
		publisher:  deps.Publisher,
		apiKey:     apiKey,
		logger:     deps.Logger.WithComponent(log.ComponentHTTP),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(log.Middleware(s.logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/expenses/user/{email}", func(r chi.Router) {
			r.Get("/", s.listExpenses)
			r.Post("/", s.createExpense)
			r.Get("/{id}", s.getExpense)
			r.Put("/{id}", s.updateExpense)
			r.Delete("/{id}", s.deleteExpense)
		})

		r.Route("/categories/user/{email}", func(r chi.Router) {
			r.Get("/", s.listCategories)
			r.Post("/", s.createCategory)
			r.Put("/{id}", s.updateCategory)
			r.Delete("/{id}", s.deleteCategory)
		})

		r.Post("/users", s.createUser)
		r.Get("/users/{email}", s.getUser)

		r.Get("/statistics/user/{email}", s.getStatistics)

		r.Route("/reports", func(r chi.Router) {
			r.Use(s.requireAPIKey)
			r.Get("/monthly", s.triggerMonthlyReports)
			r.Get("/weekly", s.triggerWeeklyReports)
		})
	})

	s.Server = http.Server{
		Addr:           addr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	return s
}

// requireAPIKey guards the report trigger endpoints with the pre-shared key.
func (s *Server) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey == "" || r.Header.Get("X-API-Key") != s.apiKey {
			writeJSON(w, http.StatusForbidden, "invalid API key", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
