package accountrepo

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAccountRepository implements AccountRepository using GORM.
type GormAccountRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAccountRepository creates a new GORM account repository.
func NewGormAccountRepository(db *gorm.DB, tracker aggregateTracker) *GormAccountRepository {
	return &GormAccountRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new account to the database.
func (r *GormAccountRepository) Add(ctx context.Context, aggregate *account.Account) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing account to the database. The reset-token columns
// are written explicitly so clearing a token persists the NULLs.
func (r *GormAccountRepository) Update(ctx context.Context, aggregate *account.Account) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&AccountDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"password_hash":       dto.PasswordHash,
			"reset_token_digest":  dto.ResetTokenDigest,
			"reset_token_expires": dto.ResetTokenExpires,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("account", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetByEmailAndRole retrieves the account registered under an email for a role.
func (r *GormAccountRepository) GetByEmailAndRole(
	ctx context.Context, email string, role account.Role,
) (*account.Account, error) {
	if err := role.Validate(); err != nil {
		return nil, err
	}

	var dto AccountDTO
	err := r.db.WithContext(ctx).
		First(&dto, "email = ? AND role = ?", email, role.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("email", email)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByResetDigestAndRole retrieves the account holding a reset token digest
// within a role.
func (r *GormAccountRepository) GetByResetDigestAndRole(
	ctx context.Context, digest string, role account.Role,
) (*account.Account, error) {
	if err := role.Validate(); err != nil {
		return nil, err
	}
	if digest == "" {
		return nil, errs.NewValueIsRequiredError("digest")
	}

	var dto AccountDTO
	err := r.db.WithContext(ctx).
		First(&dto, "reset_token_digest = ? AND role = ?", digest, role.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("reset token", "digest")
		}
		return nil, err
	}

	return toDomain(dto)
}

// ClearExpiredResetTokens removes every reset-token record that expired
// before now and reports how many were cleared.
func (r *GormAccountRepository) ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&AccountDTO{}).
		Where("reset_token_expires IS NOT NULL AND reset_token_expires < ?", now).
		Updates(map[string]any{
			"reset_token_digest":  nil,
			"reset_token_expires": nil,
		})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
