// Package jobs provides scheduled background tasks for the admin console backend.
//
// Jobs are cron-based (github.com/robfig/cron/v3) and managed through JobManager:
//
//	jobManager := jobs.NewJobManager(refreshHandler, cfg.SnapshotRefreshSpec, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// SnapshotRefreshJob reloads the in-memory working copy of orders from the
// store, so the filter bar sees changes made by other consoles. The schedule
// defaults to "@every 5m". A refresh may race with a command applying its own
// patch to the working copy; whichever finishes last wins.
//
// # Error Handling
//
// A failed refresh is logged and leaves the previous snapshot in place.
package jobs
