package commands_test

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func digestOf(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func TestNewConsumePasswordResetCommand(t *testing.T) {
	t.Run("valid command", func(t *testing.T) {
		cmd, err := commands.NewConsumePasswordResetCommand("sometoken", "customer", "longenough")
		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
	})

	t.Run("requires a token", func(t *testing.T) {
		_, err := commands.NewConsumePasswordResetCommand("  ", "customer", "longenough")
		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrTokenIsRequired)
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		_, err := commands.NewConsumePasswordResetCommand("sometoken", "customer", "short")
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestConsumePasswordResetCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	token := "a3f1c2"
	aggregate := deliveryAccount(t, "rider@example.com")
	require.NoError(t, aggregate.IssueResetToken(digestOf(token), time.Now().UTC()))
	oldHash := aggregate.PasswordHash()

	cmd, err := commands.NewConsumePasswordResetCommand(token, "delivery", "new-password-1")
	require.NoError(t, err)

	repo := new(MockAccountRepository)
	uow := new(MockAccountUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AccountRepository").Return(repo).Once(),
		repo.On("GetByResetDigestAndRole", mock.Anything, digestOf(token), account.RoleDelivery).
			Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAccountUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConsumePasswordResetCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	assert.NotEqual(t, oldHash, aggregate.PasswordHash())
	assert.Empty(t, aggregate.ResetTokenDigest(), "token record must be cleared after redemption")
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestConsumePasswordResetCommandHandler_Handle_UnknownToken(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewConsumePasswordResetCommand("nosuchtoken", "delivery", "new-password-1")
	require.NoError(t, err)

	repo := new(MockAccountRepository)
	uow := new(MockAccountUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AccountRepository").Return(repo).Once(),
		repo.On("GetByResetDigestAndRole", mock.Anything, digestOf("nosuchtoken"), account.RoleDelivery).
			Return(nil, errs.NewObjectNotFoundError("digest", "redacted")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAccountUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConsumePasswordResetCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, account.ErrResetTokenInvalidOrExpired,
		"unknown and expired tokens must be indistinguishable")
}

func TestConsumePasswordResetCommandHandler_Handle_ExpiredToken(t *testing.T) {
	ctx := t.Context()
	token := "expiredtoken"
	aggregate := deliveryAccount(t, "rider@example.com")
	require.NoError(t, aggregate.IssueResetToken(digestOf(token), time.Now().UTC().Add(-31*time.Minute)))

	cmd, err := commands.NewConsumePasswordResetCommand(token, "delivery", "new-password-1")
	require.NoError(t, err)

	repo := new(MockAccountRepository)
	uow := new(MockAccountUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AccountRepository").Return(repo).Once(),
		repo.On("GetByResetDigestAndRole", mock.Anything, digestOf(token), account.RoleDelivery).
			Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAccountUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConsumePasswordResetCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, account.ErrResetTokenInvalidOrExpired)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestPurgeResetTokensCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	repo := new(MockAccountRepository)
	uow := new(MockAccountUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AccountRepository").Return(repo).Once(),
		repo.On("ClearExpiredResetTokens", mock.Anything, mock.AnythingOfType("time.Time")).
			Return(int64(3), nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAccountUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPurgeResetTokensCommandHandler(factory)
	cleared, err := h.Handle(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), cleared)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}
