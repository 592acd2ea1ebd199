// Package jobs provides scheduled background tasks for the marketplace.
//
// Jobs are cron-based, built on github.com/robfig/cron/v3, and managed
// through JobManager which offers a unified start/stop interface:
//
//	jobManager := jobs.NewJobManager(purgeHandler, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// ResetTokenPurgeJob runs every five minutes and clears password-reset
// tokens whose expiry has passed. The tokens are already rejected on use
// once expired, so the job is housekeeping, not enforcement.
package jobs
