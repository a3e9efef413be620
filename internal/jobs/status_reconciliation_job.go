package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StatusReconciliationJob periodically recomputes order statuses from the
// tasks and documents on record. Statuses are normally projected inside the
// command that changed them; the job is the safety net for orders left
// stale by a crash between writes.
type StatusReconciliationJob struct {
	handler  commands.ReconcileOrderStatusesCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewStatusReconciliationJob creates a new job for reconciling order
// statuses. The schedule is a six-field cron expression with seconds, e.g.
// "*/30 * * * * *" for every thirty seconds.
func NewStatusReconciliationJob(
	handler commands.ReconcileOrderStatusesCommandHandler,
	schedule string,
	logger *slog.Logger,
) *StatusReconciliationJob {
	return &StatusReconciliationJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "status_reconciliation_job"),
	}
}

// Start begins the reconciliation job on its configured schedule.
func (j *StatusReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewReconcileOrderStatusesCommand()

		reconciled, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Status reconciliation job failed", "error", handleErr)
			return
		}

		if reconciled > 0 {
			j.logger.InfoContext(ctx, "Reconciled stale order statuses", "count", reconciled)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Status reconciliation job started", "schedule", j.schedule)
	return nil
}

// Stop stops the reconciliation job.
func (j *StatusReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Status reconciliation job stopped")
}
