package account_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccount(t *testing.T, role account.Role) *account.Account {
	t.Helper()
	acc, err := account.NewAccount(kernel.NewUUID(), "user@example.com", role, "$2a$10$hash")
	require.NoError(t, err)
	return acc
}

func TestNewAccount(t *testing.T) {
	t.Run("valid account", func(t *testing.T) {
		acc := newTestAccount(t, account.RoleCustomer)

		require.NoError(t, acc.Validate())
		assert.Equal(t, "user@example.com", acc.Email())
		assert.Equal(t, account.RoleCustomer, acc.Role())
		assert.Empty(t, acc.ResetTokenDigest())
		assert.Nil(t, acc.ResetTokenExpires())
	})

	t.Run("empty email rejected", func(t *testing.T) {
		_, err := account.NewAccount(kernel.NewUUID(), "", account.RoleVendor, "hash")
		require.Error(t, err)
	})

	t.Run("invalid role rejected", func(t *testing.T) {
		_, err := account.NewAccount(kernel.NewUUID(), "user@example.com", account.RoleUnknown, "hash")
		require.Error(t, err)
	})

	t.Run("empty password hash rejected", func(t *testing.T) {
		_, err := account.NewAccount(kernel.NewUUID(), "user@example.com", account.RoleDelivery, "")
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var acc account.Account
		require.Error(t, acc.Validate())
	})
}

func TestRestoreAccount(t *testing.T) {
	t.Run("restores outstanding reset record", func(t *testing.T) {
		expires := time.Now().Add(10 * time.Minute)
		acc, err := account.RestoreAccount(
			kernel.NewUUID(), "user@example.com", account.RoleDelivery, "hash", "digest", &expires)

		require.NoError(t, err)
		assert.Equal(t, "digest", acc.ResetTokenDigest())
		require.NotNil(t, acc.ResetTokenExpires())
	})

	t.Run("digest without expiry rejected", func(t *testing.T) {
		_, err := account.RestoreAccount(
			kernel.NewUUID(), "user@example.com", account.RoleDelivery, "hash", "digest", nil)
		require.Error(t, err)
	})

	t.Run("expiry without digest rejected", func(t *testing.T) {
		expires := time.Now()
		_, err := account.RestoreAccount(
			kernel.NewUUID(), "user@example.com", account.RoleDelivery, "hash", "", &expires)
		require.Error(t, err)
	})
}

func TestAccount_IssueResetToken(t *testing.T) {
	t.Run("stores digest with 30 minute expiry", func(t *testing.T) {
		acc := newTestAccount(t, account.RoleCustomer)
		issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

		require.NoError(t, acc.IssueResetToken("digest-1", issuedAt))

		assert.Equal(t, "digest-1", acc.ResetTokenDigest())
		require.NotNil(t, acc.ResetTokenExpires())
		assert.Equal(t, issuedAt.Add(30*time.Minute), *acc.ResetTokenExpires())
	})

	t.Run("reissue supersedes previous token", func(t *testing.T) {
		acc := newTestAccount(t, account.RoleCustomer)
		now := time.Now()

		require.NoError(t, acc.IssueResetToken("digest-1", now))
		require.NoError(t, acc.IssueResetToken("digest-2", now.Add(time.Minute)))

		assert.Equal(t, "digest-2", acc.ResetTokenDigest())
	})

	t.Run("empty digest rejected", func(t *testing.T) {
		acc := newTestAccount(t, account.RoleCustomer)
		require.Error(t, acc.IssueResetToken("", time.Now()))
	})
}

func TestAccount_ConsumeResetToken(t *testing.T) {
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("valid token replaces credential and clears record", func(t *testing.T) {
		acc := newTestAccount(t, account.RoleVendor)
		require.NoError(t, acc.IssueResetToken("digest-1", issuedAt))

		err := acc.ConsumeResetToken("digest-1", "new-hash", issuedAt.Add(5*time.Minute))

		require.NoError(t, err)
		assert.Equal(t, "new-hash", acc.PasswordHash())
		assert.Empty(t, acc.ResetTokenDigest())
		assert.Nil(t, acc.ResetTokenExpires())
	})

	t.Run("token is single use", func(t *testing.T) {
		acc := newTestAccount(t, account.RoleVendor)
		require.NoError(t, acc.IssueResetToken("digest-1", issuedAt))

		require.NoError(t, acc.ConsumeResetToken("digest-1", "new-hash", issuedAt.Add(time.Minute)))
		err := acc.ConsumeResetToken("digest-1", "newer-hash", issuedAt.Add(2*time.Minute))

		require.ErrorIs(t, err, account.ErrResetTokenInvalidOrExpired)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, "new-hash", acc.PasswordHash())
	})

	t.Run("expired token fails with the uniform error", func(t *testing.T) {
		acc := newTestAccount(t, account.RoleVendor)
		require.NoError(t, acc.IssueResetToken("digest-1", issuedAt))

		err := acc.ConsumeResetToken("digest-1", "new-hash", issuedAt.Add(31*time.Minute))

		require.ErrorIs(t, err, account.ErrResetTokenInvalidOrExpired)
	})

	t.Run("token valid at exactly 30 minutes", func(t *testing.T) {
		acc := newTestAccount(t, account.RoleVendor)
		require.NoError(t, acc.IssueResetToken("digest-1", issuedAt))

		err := acc.ConsumeResetToken("digest-1", "new-hash", issuedAt.Add(30*time.Minute))

		require.NoError(t, err)
	})

	t.Run("wrong digest fails with the same error as expired", func(t *testing.T) {
		acc := newTestAccount(t, account.RoleVendor)
		require.NoError(t, acc.IssueResetToken("digest-1", issuedAt))

		wrongErr := acc.ConsumeResetToken("digest-2", "new-hash", issuedAt.Add(time.Minute))

		expired := newTestAccount(t, account.RoleVendor)
		require.NoError(t, expired.IssueResetToken("digest-1", issuedAt))
		expiredErr := expired.ConsumeResetToken("digest-1", "new-hash", issuedAt.Add(time.Hour))

		require.ErrorIs(t, wrongErr, account.ErrResetTokenInvalidOrExpired)
		require.ErrorIs(t, expiredErr, account.ErrResetTokenInvalidOrExpired)
		assert.Equal(t, expiredErr.Error(), wrongErr.Error())
	})

	t.Run("no outstanding token fails", func(t *testing.T) {
		acc := newTestAccount(t, account.RoleVendor)

		err := acc.ConsumeResetToken("digest-1", "new-hash", issuedAt)

		require.ErrorIs(t, err, account.ErrResetTokenInvalidOrExpired)
	})
}

func TestAccount_ClearResetToken(t *testing.T) {
	t.Run("clears digest and expiry together", func(t *testing.T) {
		acc := newTestAccount(t, account.RoleCustomer)
		require.NoError(t, acc.IssueResetToken("digest-1", time.Now()))

		acc.ClearResetToken()

		assert.Empty(t, acc.ResetTokenDigest())
		assert.Nil(t, acc.ResetTokenExpires())
	})
}

func TestRoleFromString(t *testing.T) {
	tests := []struct {
		input   string
		want    account.Role
		wantErr bool
	}{
		{input: "customer", want: account.RoleCustomer},
		{input: "vendor", want: account.RoleVendor},
		{input: "delivery", want: account.RoleDelivery},
		{input: "admin", want: account.RoleAdmin},
		{input: "Delivery", want: account.RoleDelivery},
		{input: " customer ", want: account.RoleCustomer},
		{input: "driver", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("parse "+tt.input, func(t *testing.T) {
			role, err := account.RoleFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, role)
		})
	}
}

func TestRole_Validate(t *testing.T) {
	for _, role := range []account.Role{
		account.RoleCustomer, account.RoleVendor, account.RoleDelivery, account.RoleAdmin,
	} {
		require.NoError(t, role.Validate())
	}

	require.Error(t, account.RoleUnknown.Validate())
	require.Error(t, account.Role(99).Validate())
}
