package commands

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

const resetTokenBytes = 32

// RequestPasswordResetCommandHandler starts a credential reset.
// It stores only a sha256 digest of the token; the plaintext leaves the
// process exactly once, inside the mailed link. When the mail provider
// fails, the stored digest is cleared again so no orphaned token stays
// consumable.
//
// An email that matches no account is NOT reported to the caller: the
// handler returns success either way, so the endpoint cannot be used to
// probe which addresses are registered.
type RequestPasswordResetCommandHandler struct {
	uowFactory AccountUoWFactory
	mailer     ports.ResetMailer
}

// NewRequestPasswordResetCommandHandler creates a handler for reset requests.
func NewRequestPasswordResetCommandHandler(
	uowFactory AccountUoWFactory, mailer ports.ResetMailer,
) RequestPasswordResetCommandHandler {
	return RequestPasswordResetCommandHandler{
		uowFactory: uowFactory,
		mailer:     mailer,
	}
}

// Handle processes the reset request command.
func (h *RequestPasswordResetCommandHandler) Handle(ctx context.Context, cmd RequestPasswordResetCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	token, digest, err := newResetToken()
	if err != nil {
		return err
	}

	issued, err := h.storeDigest(ctx, cmd, digest)
	if err != nil || !issued {
		return err
	}

	if err = h.mailer.SendResetLink(ctx, cmd.Email(), cmd.Role(), token, cmd.Client()); err != nil {
		if clearErr := h.clearDigest(ctx, cmd); clearErr != nil {
			return errors.Join(errs.NewUpstreamUnavailableErrorWithCause("mail", err), clearErr)
		}
		return errs.NewUpstreamUnavailableErrorWithCause("mail", err)
	}

	return nil
}

// storeDigest records the token digest on the account. An unknown email
// reports success without issuing anything.
func (h *RequestPasswordResetCommandHandler) storeDigest(
	ctx context.Context, cmd RequestPasswordResetCommand, digest string,
) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	accountRepo := uow.AccountRepository()
	aggregate, err := accountRepo.GetByEmailAndRole(ctx, cmd.Email(), cmd.Role())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return false, nil
		}
		return false, err
	}

	if err = aggregate.IssueResetToken(digest, time.Now().UTC()); err != nil {
		return false, err
	}

	if err = accountRepo.Update(ctx, aggregate); err != nil {
		return false, err
	}

	return true, uow.Commit(ctx)
}

// clearDigest removes the token record after a failed send.
func (h *RequestPasswordResetCommandHandler) clearDigest(ctx context.Context, cmd RequestPasswordResetCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	accountRepo := uow.AccountRepository()
	aggregate, err := accountRepo.GetByEmailAndRole(ctx, cmd.Email(), cmd.Role())
	if err != nil {
		return err
	}

	aggregate.ClearResetToken()
	if err = accountRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// newResetToken generates the plaintext token and the digest stored in its
// place. Lookup-by-digest needs a deterministic hash, so the digest is
// sha256 rather than a salted password hash.
func newResetToken() (token string, digest string, err error) {
	raw := make([]byte, resetTokenBytes)
	if _, err = rand.Read(raw); err != nil {
		return "", "", err
	}

	token = hex.EncodeToString(raw)
	sum := sha256.Sum256([]byte(token))
	return token, hex.EncodeToString(sum[:]), nil
}
