// Package accountrepo provides data transfer objects and mapping functions
// for account persistence. Only the credential-reset slice of the identity
// data lives here; profile management belongs to the identity service.
package accountrepo

import (
	"time"

	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AccountDTO represents the database structure for persisting account
// aggregates. Email and role form the login identity; the reset digest is
// indexed because redemption looks accounts up by it.
type AccountDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email             string    `gorm:"index:idx_accounts_email_role,unique"`
	Role              string    `gorm:"index:idx_accounts_email_role,unique"`
	PasswordHash      string
	ResetTokenDigest  *string `gorm:"index"`
	ResetTokenExpires *time.Time
}

// TableName specifies the database table name for account entities.
func (AccountDTO) TableName() string {
	return "accounts"
}

// fromDomain converts an account domain aggregate to its database representation.
func fromDomain(aggregate *account.Account) AccountDTO {
	var digest *string
	if d := aggregate.ResetTokenDigest(); d != "" {
		digest = &d
	}

	return AccountDTO{
		ID:                aggregate.ID().Bytes(),
		Email:             aggregate.Email(),
		Role:              aggregate.Role().String(),
		PasswordHash:      aggregate.PasswordHash(),
		ResetTokenDigest:  digest,
		ResetTokenExpires: aggregate.ResetTokenExpires(),
	}
}

// toDomain converts a database DTO to an account domain aggregate using RestoreAccount.
func toDomain(dto AccountDTO) (*account.Account, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	role, err := account.RoleFromString(dto.Role)
	if err != nil {
		return nil, err
	}

	digest := ""
	if dto.ResetTokenDigest != nil {
		digest = *dto.ResetTokenDigest
	}

	return account.RestoreAccount(id, dto.Email, role, dto.PasswordHash, digest, dto.ResetTokenExpires)
}
