package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrRequestPasswordResetCommandIsNotConstructed = errors.New(
		"RequestPasswordResetCommand must be created via NewRequestPasswordResetCommand constructor",
	)
	ErrEmailIsRequired = errs.NewValueIsRequiredError("email")
)

// RequestPasswordResetCommand represents a request to start a credential
// reset for the account registered under an email within one role. The
// caller names its platform explicitly so the mailed link targets the right
// front end.
type RequestPasswordResetCommand struct { //nolint:recvcheck //using for validation
	email  string
	role   account.Role
	client ports.ClientType

	guard guard.ConstructorGuard
}

// NewRequestPasswordResetCommand creates a command to start a password reset.
func NewRequestPasswordResetCommand(email string, role string, client string) (RequestPasswordResetCommand, error) {
	cmd := RequestPasswordResetCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setEmail(email),
		cmd.setRole(role),
		cmd.setClient(client),
	); err != nil {
		return RequestPasswordResetCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestPasswordResetCommand) Validate() error {
	return c.guard.Validate(ErrRequestPasswordResetCommandIsNotConstructed)
}

// Email returns the address the reset was requested for.
func (c RequestPasswordResetCommand) Email() string {
	return c.email
}

// Role returns the role scope of the reset.
func (c RequestPasswordResetCommand) Role() account.Role {
	return c.role
}

// Client returns the requesting platform.
func (c RequestPasswordResetCommand) Client() ports.ClientType {
	return c.client
}

func (c *RequestPasswordResetCommand) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailIsRequired
	}

	c.email = strings.ToLower(email)
	return nil
}

func (c *RequestPasswordResetCommand) setRole(role string) error {
	parsed, err := account.RoleFromString(role)
	if err != nil {
		return err
	}

	c.role = parsed
	return nil
}

func (c *RequestPasswordResetCommand) setClient(client string) error {
	switch ports.ClientType(strings.ToLower(strings.TrimSpace(client))) {
	case ports.ClientTypeWeb:
		c.client = ports.ClientTypeWeb
	case ports.ClientTypeAndroid:
		c.client = ports.ClientTypeAndroid
	case ports.ClientTypeIOS:
		c.client = ports.ClientTypeIOS
	default:
		return errs.NewValueIsInvalidError("client type")
	}

	return nil
}
