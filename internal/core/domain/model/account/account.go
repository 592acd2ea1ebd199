package account

import (
	"crypto/subtle"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ResetTokenTTL is how long an issued reset token stays valid.
const ResetTokenTTL = 30 * time.Minute

var (
	// ErrAccountIsNotConstructed is returned when an Account was not created
	// through NewAccount or RestoreAccount.
	ErrAccountIsNotConstructed = errors.New("Account must be created via NewAccount or RestoreAccount constructor")

	// ErrResetTokenInvalidOrExpired is the uniform failure for every reset
	// consumption mismatch. Wrong digest, wrong role and expired token are
	// deliberately indistinguishable so token validity never leaks.
	ErrResetTokenInvalidOrExpired = errs.NewValueIsInvalidErrorWithCause(
		"reset token", errors.New("invalid or expired"))
)

// Account is the aggregate held in the identity store: an email, a role tag,
// a bcrypt credential hash, and an optional single-use reset-token record.
//
// Invariants:
//   - Role is exactly one of customer/vendor/delivery/admin
//   - The reset record is either fully present (digest + expiry) or fully
//     absent; consumption and invalidation clear both fields together
//   - The credential hash is never empty
type Account struct {
	id           kernel.UUID
	email        string
	role         Role
	passwordHash string

	resetTokenDigest  string
	resetTokenExpires *time.Time

	isConstructed bool
}

// NewAccount creates a new Account with no reset token outstanding.
// The passwordHash must already be a credential hash; the aggregate never
// sees raw passwords.
func NewAccount(id kernel.UUID, email string, role Role, passwordHash string) (*Account, error) {
	acc := &Account{
		isConstructed: true,
	}

	if err := errors.Join(
		acc.setID(id),
		acc.setEmail(email),
		acc.setRole(role),
		acc.setPasswordHash(passwordHash),
	); err != nil {
		return nil, err
	}

	return acc, nil
}

// RestoreAccount reconstructs an Account from persistence, including any
// outstanding reset-token record. The digest and expiry must be both set or
// both empty.
func RestoreAccount(
	id kernel.UUID,
	email string,
	role Role,
	passwordHash string,
	resetTokenDigest string,
	resetTokenExpires *time.Time,
) (*Account, error) {
	acc, err := NewAccount(id, email, role, passwordHash)
	if err != nil {
		return nil, err
	}

	if (resetTokenDigest == "") != (resetTokenExpires == nil) {
		return nil, errs.NewValueIsInvalidError("reset token record must carry both digest and expiry")
	}

	acc.resetTokenDigest = resetTokenDigest
	acc.resetTokenExpires = resetTokenExpires
	return acc, nil
}

// Validate ensures the Account came from a constructor.
func (a *Account) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAccountIsNotConstructed
	}
	return nil
}

// ID returns the account identifier.
func (a *Account) ID() kernel.UUID {
	return a.id
}

// Email returns the account email.
func (a *Account) Email() string {
	return a.email
}

// Role returns the account's role tag.
func (a *Account) Role() Role {
	return a.role
}

// PasswordHash returns the stored credential hash.
func (a *Account) PasswordHash() string {
	return a.passwordHash
}

// ResetTokenDigest returns the stored reset-token digest, empty when no token
// is outstanding.
func (a *Account) ResetTokenDigest() string {
	return a.resetTokenDigest
}

// ResetTokenExpires returns the reset-token expiry, nil when no token is
// outstanding.
func (a *Account) ResetTokenExpires() *time.Time {
	return a.resetTokenExpires
}

// IssueResetToken stores the digest of a freshly generated reset token with an
// expiry of ResetTokenTTL from issuedAt. Any previously outstanding token is
// superseded.
func (a *Account) IssueResetToken(digest string, issuedAt time.Time) error {
	if digest == "" {
		return errs.NewValueIsRequiredError("reset token digest")
	}

	expires := issuedAt.Add(ResetTokenTTL)
	a.resetTokenDigest = digest
	a.resetTokenExpires = &expires
	return nil
}

// ConsumeResetToken validates the supplied digest against the outstanding
// record at the given instant and, on success, replaces the credential hash
// and clears the record (single use). Every failure mode returns the same
// ErrResetTokenInvalidOrExpired.
func (a *Account) ConsumeResetToken(digest string, newPasswordHash string, now time.Time) error {
	if newPasswordHash == "" {
		return errs.NewValueIsRequiredError("password hash")
	}

	if a.resetTokenDigest == "" || a.resetTokenExpires == nil {
		return ErrResetTokenInvalidOrExpired
	}
	if subtle.ConstantTimeCompare([]byte(a.resetTokenDigest), []byte(digest)) != 1 {
		return ErrResetTokenInvalidOrExpired
	}
	if now.After(*a.resetTokenExpires) {
		return ErrResetTokenInvalidOrExpired
	}

	a.passwordHash = newPasswordHash
	a.ClearResetToken()
	return nil
}

// ClearResetToken removes any outstanding reset-token record. Called after
// consumption and when mail delivery fails so no stale token is left live.
func (a *Account) ClearResetToken() {
	a.resetTokenDigest = ""
	a.resetTokenExpires = nil
}

func (a *Account) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Account) setEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	a.email = email
	return nil
}

func (a *Account) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	a.role = role
	return nil
}

func (a *Account) setPasswordHash(hash string) error {
	if hash == "" {
		return errs.NewValueIsRequiredError("password hash")
	}
	a.passwordHash = hash
	return nil
}
