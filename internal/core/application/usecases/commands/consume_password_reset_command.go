package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

const minPasswordLength = 8

var (
	ErrConsumePasswordResetCommandIsNotConstructed = errors.New(
		"ConsumePasswordResetCommand must be created via NewConsumePasswordResetCommand constructor",
	)
	ErrTokenIsRequired = errs.NewValueIsRequiredError("token")
)

// ConsumePasswordResetCommand represents redeeming a reset token for a new
// password within one role.
type ConsumePasswordResetCommand struct { //nolint:recvcheck //using for validation
	token       string
	role        account.Role
	newPassword string

	guard guard.ConstructorGuard
}

// NewConsumePasswordResetCommand creates a command to redeem a reset token.
func NewConsumePasswordResetCommand(token string, role string, newPassword string) (ConsumePasswordResetCommand, error) {
	cmd := ConsumePasswordResetCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setToken(token),
		cmd.setRole(role),
		cmd.setNewPassword(newPassword),
	); err != nil {
		return ConsumePasswordResetCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConsumePasswordResetCommand) Validate() error {
	return c.guard.Validate(ErrConsumePasswordResetCommandIsNotConstructed)
}

// Token returns the plaintext token from the reset link.
func (c ConsumePasswordResetCommand) Token() string {
	return c.token
}

// Role returns the role scope of the reset.
func (c ConsumePasswordResetCommand) Role() account.Role {
	return c.role
}

// NewPassword returns the replacement password.
func (c ConsumePasswordResetCommand) NewPassword() string {
	return c.newPassword
}

func (c *ConsumePasswordResetCommand) setToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrTokenIsRequired
	}

	c.token = token
	return nil
}

func (c *ConsumePasswordResetCommand) setRole(role string) error {
	parsed, err := account.RoleFromString(role)
	if err != nil {
		return err
	}

	c.role = parsed
	return nil
}

func (c *ConsumePasswordResetCommand) setNewPassword(password string) error {
	if len(password) < minPasswordLength {
		return errs.NewValueIsOutOfRangeError("password length", len(password), minPasswordLength, "unbounded")
	}

	c.newPassword = password
	return nil
}
