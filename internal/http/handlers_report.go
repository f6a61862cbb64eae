package http

import (
	"net/http"
	"time"

	"outlay/internal/amqp"
	"outlay/internal/core"
	"outlay/internal/log"
)

// reportRunSummary is returned from the trigger endpoints: how many reports
// were generated, how many users failed, and how many deliveries were queued.
type reportRunSummary struct {
	Window   string   `json:"window"`
	Start    string   `json:"start"`
	End      string   `json:"end"`
	Reports  int      `json:"reports"`
	Failures []string `json:"failures"`
	Queued   int      `json:"queued"`
}

func (s *Server) triggerMonthlyReports(w http.ResponseWriter, r *http.Request) {
	start, end := core.MonthlyWindow(time.Now())
	s.runReports(w, r, "monthly", start, end)
}

func (s *Server) triggerWeeklyReports(w http.ResponseWriter, r *http.Request) {
	start, end := core.WeeklyWindow(time.Now())
	s.runReports(w, r, "weekly", start, end)
}

func (s *Server) runReports(w http.ResponseWriter, r *http.Request, window string, start, end core.Date) {
	ctx := r.Context()

	batch, err := s.reports.GenerateReportsForAllUsers(ctx, start, end)
	if err != nil {
		writeError(w, err)
		return
	}

	summary := reportRunSummary{
		Window:   window,
		Start:    start.String(),
		End:      end.String(),
		Reports:  len(batch.Reports),
		Failures: make([]string, 0, len(batch.Failures)),
	}
	for _, f := range batch.Failures {
		summary.Failures = append(summary.Failures, f.OwnerEmail)
	}

	if s.publisher == nil {
		s.logger.WarnContext(ctx, "Report delivery disabled, reports generated but not queued",
			log.FieldWindow, window, log.FieldReports, summary.Reports)
		writeJSON(w, http.StatusOK, "Reports generated, delivery disabled", summary)
		return
	}

	for _, report := range batch.Reports {
		job := amqp.NewReportDelivery(report, window)
		if err := s.publisher.PublishReportDelivery(ctx, job); err != nil {
			s.logger.ErrorContext(ctx, "Failed to queue report delivery",
				log.FieldUserEmail, report.OwnerEmail, log.FieldError, err)
			summary.Failures = append(summary.Failures, report.OwnerEmail)
			continue
		}
		summary.Queued++
	}

	s.logger.InfoContext(ctx, "Report run complete",
		log.FieldWindow, window,
		log.FieldReports, summary.Reports,
		"queued", summary.Queued,
		log.FieldFailures, len(summary.Failures))

	writeJSON(w, http.StatusOK, "Reports generated and queued for delivery", summary)
}
