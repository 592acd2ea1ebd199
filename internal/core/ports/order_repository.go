package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllAvailable retrieves all orders a delivery partner may accept:
	// status Processing with no delivery partner bound.
	GetAllAvailable(ctx context.Context) ([]*order.Order, error)

	// AssignDeliveryPartner atomically binds a delivery partner to an order.
	// The write succeeds only if the order is still in Processing status with
	// no partner bound; a lost race returns errs.ErrConflict and a missing
	// order returns errs.ErrObjectNotFound.
	AssignDeliveryPartner(ctx context.Context, orderID kernel.UUID, partnerID kernel.UUID, startedAt time.Time) error
}
