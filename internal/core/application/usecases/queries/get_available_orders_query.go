package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrGetAvailableOrdersQueryIsNotConstructed = errors.New(
	"GetAvailableOrdersQuery must be created via NewGetAvailableOrdersQuery constructor",
)

// GetAvailableOrdersQuery lists the orders a delivery partner can accept:
// status processing, no partner bound. Without an origin the listing is flat;
// with one it is filtered to the radius and sorted nearest first.
type GetAvailableOrdersQuery struct {
	origin   *kernel.GeoPoint
	radiusKm float64

	guard guard.ConstructorGuard
}

// NewGetAvailableOrdersQuery creates a flat listing query.
func NewGetAvailableOrdersQuery() GetAvailableOrdersQuery {
	return GetAvailableOrdersQuery{guard: guard.NewConstructorGuard()}
}

// NewGetAvailableOrdersQueryNear creates a proximity-filtered listing query.
func NewGetAvailableOrdersQueryNear(origin kernel.GeoPoint, radiusKm float64) (GetAvailableOrdersQuery, error) {
	if err := origin.Validate(); err != nil {
		return GetAvailableOrdersQuery{}, err
	}
	if radiusKm <= 0 {
		return GetAvailableOrdersQuery{}, errs.NewValueIsInvalidError("radius")
	}

	return GetAvailableOrdersQuery{
		origin:   &origin,
		radiusKm: radiusKm,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through a constructor.
func (q GetAvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableOrdersQueryIsNotConstructed)
}

// Origin returns the partner's position, nil for a flat listing.
func (q GetAvailableOrdersQuery) Origin() *kernel.GeoPoint {
	return q.origin
}

// RadiusKm returns the search radius, meaningful only with an origin.
func (q GetAvailableOrdersQuery) RadiusKm() float64 {
	return q.radiusKm
}

// GetAvailableOrdersQueryResponse is one acceptable order. DistanceKm is
// negative in flat listings where no origin was supplied.
type GetAvailableOrdersQueryResponse struct {
	ID              kernel.UUID
	ShippingAddress string
	Location        kernel.GeoPoint
	ItemCount       int
	CreatedAt       time.Time
	DistanceKm      float64
}
