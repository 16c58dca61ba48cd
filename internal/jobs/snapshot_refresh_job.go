package jobs

import (
	"context"
	"log/slog"

	"github.com/thanosshawn/shopAdmin/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultSnapshotRefreshSpec reloads the working copy every five minutes.
const DefaultSnapshotRefreshSpec = "@every 5m"

type ordersRefresher interface {
	Handle(ctx context.Context, cmd commands.RefreshOrdersCommand) (int, error)
}

// SnapshotRefreshJob periodically reloads the console's working copy from the store.
// A run still in progress when the next tick fires is skipped, not queued.
type SnapshotRefreshJob struct {
	handler ordersRefresher
	spec    string
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewSnapshotRefreshJob creates a refresh job scheduled by spec (standard cron
// syntax or descriptors such as "@every 30s"). An empty spec means DefaultSnapshotRefreshSpec.
func NewSnapshotRefreshJob(handler ordersRefresher, spec string, logger *slog.Logger) *SnapshotRefreshJob {
	if spec == "" {
		spec = DefaultSnapshotRefreshSpec
	}
	return &SnapshotRefreshJob{
		handler: handler,
		spec:    spec,
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:  logger.With("component", "snapshot_refresh_job"),
	}
}

// Start schedules the job. Returns an error if the spec cannot be parsed.
func (j *SnapshotRefreshJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Snapshot refresh job started", "spec", j.spec)
	return nil
}

// Run performs one refresh. Failures are logged; the previous snapshot stays in place.
func (j *SnapshotRefreshJob) Run(ctx context.Context) {
	n, err := j.handler.Handle(ctx, commands.NewRefreshOrdersCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Snapshot refresh failed", "error", err)
		return
	}
	j.logger.DebugContext(ctx, "Snapshot refreshed", "orders", n)
}

// Stop stops scheduling and waits for a running refresh to finish.
func (j *SnapshotRefreshJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Snapshot refresh job stopped")
}
