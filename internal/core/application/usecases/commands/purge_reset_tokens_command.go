package commands

import (
	"context"
	"time"
)

// PurgeResetTokensCommandHandler clears expired reset-token records.
// Expired tokens are already unredeemable; the purge keeps the store from
// accumulating dead digests. Run on a schedule by the job manager.
type PurgeResetTokensCommandHandler struct {
	uowFactory AccountUoWFactory
}

// NewPurgeResetTokensCommandHandler creates a handler for the scheduled purge.
func NewPurgeResetTokensCommandHandler(uowFactory AccountUoWFactory) PurgeResetTokensCommandHandler {
	return PurgeResetTokensCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle removes every reset-token record that expired before now and
// reports how many were cleared.
func (h *PurgeResetTokensCommandHandler) Handle(ctx context.Context) (int64, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cleared, err := uow.AccountRepository().ClearExpiredResetTokens(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}

	return cleared, uow.Commit(ctx)
}
