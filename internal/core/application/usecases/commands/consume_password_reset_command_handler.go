package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
)

// ConsumePasswordResetCommandHandler redeems a reset token.
// Lookup goes by token digest within the role scope; an unknown digest and
// an expired token produce the same generic error so a caller cannot tell
// which tokens ever existed.
type ConsumePasswordResetCommandHandler struct {
	uowFactory AccountUoWFactory
}

// NewConsumePasswordResetCommandHandler creates a handler for token redemption.
func NewConsumePasswordResetCommandHandler(uowFactory AccountUoWFactory) ConsumePasswordResetCommandHandler {
	return ConsumePasswordResetCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the redemption command. On success the credential hash is
// replaced and the token record cleared, making the token single-use.
func (h *ConsumePasswordResetCommandHandler) Handle(ctx context.Context, cmd ConsumePasswordResetCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	sum := sha256.Sum256([]byte(cmd.Token()))
	digest := hex.EncodeToString(sum[:])

	newHash, err := bcrypt.GenerateFromPassword([]byte(cmd.NewPassword()), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	accountRepo := uow.AccountRepository()
	aggregate, err := accountRepo.GetByResetDigestAndRole(ctx, digest, cmd.Role())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return account.ErrResetTokenInvalidOrExpired
		}
		return err
	}

	if err = aggregate.ConsumeResetToken(digest, string(newHash), time.Now().UTC()); err != nil {
		return err
	}

	if err = accountRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
