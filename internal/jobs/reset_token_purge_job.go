package jobs

import (
	"context"
	"log/slog"

	"marketplace/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ResetTokenPurgeJob clears expired password-reset tokens on a schedule.
// Expired tokens are already unusable; the purge keeps the digest columns from
// accumulating stale secrets.
type ResetTokenPurgeJob struct {
	handler commands.PurgeResetTokensCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewResetTokenPurgeJob creates a job that purges expired reset tokens
// every five minutes.
func NewResetTokenPurgeJob(handler commands.PurgeResetTokensCommandHandler, logger *slog.Logger) *ResetTokenPurgeJob {
	return &ResetTokenPurgeJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "reset_token_purge_job"),
	}
}

// Start begins the purge schedule.
func (j *ResetTokenPurgeJob) Start() error {
	_, err := j.cron.AddFunc("0 */5 * * * *", func() {
		ctx := context.Background()

		cleared, err := j.handler.Handle(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Reset token purge failed", "error", err)
			return
		}

		if cleared > 0 {
			j.logger.InfoContext(ctx, "Expired reset tokens purged", "count", cleared)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Reset token purge job started (running every five minutes)")
	return nil
}

// Stop stops the purge schedule.
func (j *ResetTokenPurgeJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Reset token purge job stopped")
}
