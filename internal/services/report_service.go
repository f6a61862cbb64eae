package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"outlay/internal/core"
	"outlay/internal/store"
)

// ReportService runs the aggregation engine once per user over a date
// window, across the whole user population, concurrently.
type ReportService struct {
	users         store.UserStore
	expenses      store.ExpenseStore
	categories    store.CategoryStore
	maxConcurrent int
}

func NewReportService(users store.UserStore, expenses store.ExpenseStore, categories store.CategoryStore, maxConcurrent int) *ReportService {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &ReportService{
		users:         users,
		expenses:      expenses,
		categories:    categories,
		maxConcurrent: maxConcurrent,
	}
}

// ReportBatch is the outcome of one report run: completed reports plus the
// users whose computation failed. Order across users is not guaranteed.
type ReportBatch struct {
	Reports  []core.UserReport
	Failures []core.ReportFailure
}

// GenerateReportsForAllUsers computes one UserReport per known user for the
// inclusive [start, end] window. Per-user computations are independent and
// run on a bounded worker pool; a failure for one user is recorded and never
// aborts the rest of the batch. Only the initial user enumeration can fail
// the call as a whole.
func (s *ReportService) GenerateReportsForAllUsers(ctx context.Context, start, end core.Date) (ReportBatch, error) {
	users, err := s.users.FindAllUsers(ctx)
	if err != nil {
		return ReportBatch{}, fmt.Errorf("list users: %w", err)
	}

	var (
		mu    sync.Mutex
		batch ReportBatch
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)
	for _, user := range users {
		g.Go(func() error {
			report, err := s.reportForUser(ctx, user, start, end)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				slog.ErrorContext(ctx, "report generation failed for user",
					"user_email", user.Email,
					"error", err)
				batch.Failures = append(batch.Failures, core.ReportFailure{
					OwnerEmail: user.Email,
					Err:        err,
				})
				return nil
			}
			batch.Reports = append(batch.Reports, report)
			return nil
		})
	}
	_ = g.Wait()

	slog.InfoContext(ctx, "report batch complete",
		"window_start", start.String(),
		"window_end", end.String(),
		"reports", len(batch.Reports),
		"failures", len(batch.Failures))

	return batch, nil
}

func (s *ReportService) reportForUser(ctx context.Context, user core.User, start, end core.Date) (core.UserReport, error) {
	expenses, err := s.expenses.FindByOwnerAndDateRange(ctx, user.Email, start, end)
	if err != nil {
		return core.UserReport{}, fmt.Errorf("fetch expenses: %w", err)
	}
	names, err := categoryNames(ctx, s.categories, user.Email)
	if err != nil {
		return core.UserReport{}, err
	}
	return core.NewUserReport(user.Email, expenses, names), nil
}
