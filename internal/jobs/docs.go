// Package jobs provides scheduled background tasks for the print shop.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic maintenance of the order pipeline.
//
// # Available Jobs
//
// 1. DraftCleanupJob - Runs every minute to expire abandoned drafts and delete their uploads
// 2. QueueResetJob - Runs daily at midnight to rewind the order number sequence to A-001
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(registry, storage, sequencer, settingsRepo, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Cleanup failures are logged by the registry and retried on the next sweep
// - A failed sequence persist is logged; the in-memory sequence is already
//   rewound, so numbering stays correct until the next successful save
// - Failed job starts will stop any already running jobs
package jobs
