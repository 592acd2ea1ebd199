package ports

import (
	"context"

	"marketplace/internal/core/domain/model/account"
)

// ClientType identifies the caller's platform so the reset link can point at
// the right front end. Callers pass it explicitly; nothing is inferred from
// request metadata.
type ClientType string

// Known client types.
const (
	ClientTypeWeb     ClientType = "web"
	ClientTypeAndroid ClientType = "android"
	ClientTypeIOS     ClientType = "ios"
)

// ResetMailer sends password-reset links through an external mail provider.
type ResetMailer interface {
	// SendResetLink delivers a reset link carrying the plaintext token to the
	// account's email address. A send failure must surface as an error so the
	// caller can invalidate the stored token.
	SendResetLink(ctx context.Context, email string, role account.Role, token string, client ClientType) error
}
