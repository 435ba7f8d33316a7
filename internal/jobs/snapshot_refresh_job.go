package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// SnapshotRefreshJob manages the periodic full resynchronization of the
// working set against the order store. Runs every five minutes as the
// correctness backstop for missed or out-of-order transport events.
type SnapshotRefreshJob struct {
	handler commands.RefreshSnapshotCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewSnapshotRefreshJob creates a new job for snapshot refreshes.
// Uses RefreshSnapshotCommandHandler to pull and re-filter the full order set.
func NewSnapshotRefreshJob(handler commands.RefreshSnapshotCommandHandler, logger *slog.Logger) *SnapshotRefreshJob {
	return &SnapshotRefreshJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "snapshot_refresh_job"),
	}
}

// Start begins the snapshot refresh job to run every five minutes.
func (j *SnapshotRefreshJob) Start() error {
	_, err := j.cron.AddFunc("0 */5 * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewRefreshSnapshotCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Snapshot refresh job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Snapshot refresh job started (running every five minutes)")
	return nil
}

// Stop stops the snapshot refresh job.
func (j *SnapshotRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Snapshot refresh job stopped")
}
