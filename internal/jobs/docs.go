// Package jobs provides scheduled background tasks for the fulfillment
// station.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the station process.
//
// # Available Jobs
//
// 1. SnapshotRefreshJob - Runs every five minutes to resynchronize the local
// working set against the order store's full order list
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(refreshSnapshotHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The snapshot refresh uses the cron expression "0 */5 * * * *": once every
// five minutes on the minute. The interval is the correctness backstop for
// events the transport dropped or delivered out of order; the store's answer
// always wins over local state.
//
// # Error Handling
//
// A failed refresh is logged and retried on the next tick; the working set
// keeps serving its last good state in between.
package jobs
