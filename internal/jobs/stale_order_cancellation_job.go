package jobs

import (
	"context"
	"log/slog"
	"time"

	"shop/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StaleOrderCancellationJob manages the scheduled cancellation of orders
// that have gone unpaid past their time-to-live. Runs every hour.
type StaleOrderCancellationJob struct {
	handler commands.CancelStaleOrdersCommandHandler
	ttl     time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewStaleOrderCancellationJob creates a new job for cancelling stale orders.
// Uses CancelStaleOrdersCommandHandler to sweep unpaid orders older than ttl.
func NewStaleOrderCancellationJob(handler commands.CancelStaleOrdersCommandHandler,
	ttl time.Duration, logger *slog.Logger) *StaleOrderCancellationJob {
	return &StaleOrderCancellationJob{
		handler: handler,
		ttl:     ttl,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "stale_order_cancellation_job"),
	}
}

// Start begins the stale order cancellation job to run hourly.
func (j *StaleOrderCancellationJob) Start() error {
	_, err := j.cron.AddFunc("0 0 * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewCancelStaleOrdersCommand(j.ttl)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Stale order cancellation job misconfigured", "error", cmdErr)
			return
		}

		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			j.logger.ErrorContext(ctx, "Stale order cancellation job failed", "error", handleErr)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale order cancellation job started (running hourly)", "ttl", j.ttl.String())
	return nil
}

// Stop stops the stale order cancellation job.
func (j *StaleOrderCancellationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale order cancellation job stopped")
}
