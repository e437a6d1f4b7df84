// Package jobs provides scheduled background tasks for the shop.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic housekeeping of the order workflow.
//
// # Available Jobs
//
// 1. StaleOrderCancellationJob - Runs every hour to cancel new orders that
// have gone unpaid past their time-to-live
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(cancelStaleOrdersHandler, staleOrderTTL, logger)
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
// The cancellation job uses the cron expression "0 0 * * * *" which means it
// runs at the top of every hour. Cancellation restores stock and refunds
// points, so each stale order is processed in its own transaction and one
// failure does not block the rest of the sweep.
//
// # Error Handling
//
// Orders that moved out of the New status between listing and cancellation
// are skipped silently. All other failures are logged per sweep.
package jobs
