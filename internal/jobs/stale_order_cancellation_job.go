package jobs

import (
	"context"
	"log/slog"
	"time"

	"cafeteria/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StaleOrderCancellationJob periodically cancels pending orders that were
// never confirmed. Runs every minute; each run cancels at most one batch,
// so a large backlog drains over several runs instead of one long
// transaction.
type StaleOrderCancellationJob struct {
	handler   commands.CancelStaleOrdersCommandHandler
	maxAge    time.Duration
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewStaleOrderCancellationJob creates the cleanup job. maxAge is how long
// an order may sit in pending before it is considered abandoned.
func NewStaleOrderCancellationJob(
	handler commands.CancelStaleOrdersCommandHandler,
	maxAge time.Duration,
	batchSize int,
	logger *slog.Logger,
) *StaleOrderCancellationJob {
	return &StaleOrderCancellationJob{
		handler:   handler,
		maxAge:    maxAge,
		batchSize: batchSize,
		cron:      cron.New(),
		logger:    logger.With("component", "stale_order_cancellation_job"),
	}
}

// Start begins the cleanup job to run every minute.
func (j *StaleOrderCancellationJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewCancelStaleOrdersCommand(time.Now().UTC().Add(-j.maxAge), j.batchSize)
		if err != nil {
			j.logger.ErrorContext(ctx, "Failed to build stale order cancellation command", "error", err)
			return
		}

		cancelled, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Stale order cancellation job failed", "error", err)
			return
		}

		if cancelled > 0 {
			j.logger.InfoContext(ctx, "Cancelled stale pending orders", "count", cancelled)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale order cancellation job started (running every minute)")
	return nil
}

// Stop stops the cleanup job.
func (j *StaleOrderCancellationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale order cancellation job stopped")
}
