package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/account"
)

// AccountRepository defines the persistence contract for account aggregates.
// Accounts are owned by the external identity service; this repository covers
// only the slice the credential-reset flow needs.
type AccountRepository interface {
	// Add persists a new account aggregate to storage.
	Add(ctx context.Context, aggregate *account.Account) error

	// Update persists changes to an existing account aggregate, including
	// its reset-token record and credential hash.
	Update(ctx context.Context, aggregate *account.Account) error

	// GetByEmailAndRole retrieves the account registered under the given
	// email for the given role. Missing accounts return errs.ErrObjectNotFound.
	GetByEmailAndRole(ctx context.Context, email string, role account.Role) (*account.Account, error)

	// GetByResetDigestAndRole retrieves the account holding the given reset
	// token digest for the given role. Missing accounts return
	// errs.ErrObjectNotFound.
	GetByResetDigestAndRole(ctx context.Context, digest string, role account.Role) (*account.Account, error)

	// ClearExpiredResetTokens removes every reset-token record whose expiry
	// precedes now and reports how many were cleared.
	ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}
