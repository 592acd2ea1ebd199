package queries

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrGetNearbyProductsQueryIsNotConstructed = errors.New(
	"GetNearbyProductsQuery must be created via NewGetNearbyProductsQuery constructor",
)

// GetNearbyProductsQuery retrieves active products within a radius of a
// point, optionally narrowed to one category. This is the public customer
// discovery surface; no authentication is attached to it.
type GetNearbyProductsQuery struct {
	origin   kernel.GeoPoint
	radiusKm float64
	category string

	guard guard.ConstructorGuard
}

// NewGetNearbyProductsQuery creates a query for product discovery.
// The origin must be valid coordinates and the radius positive. An empty
// category means no category filter.
func NewGetNearbyProductsQuery(origin kernel.GeoPoint, radiusKm float64, category string) (GetNearbyProductsQuery, error) {
	if err := origin.Validate(); err != nil {
		return GetNearbyProductsQuery{}, err
	}
	if radiusKm <= 0 {
		return GetNearbyProductsQuery{}, errs.NewValueIsInvalidError("radius")
	}

	return GetNearbyProductsQuery{
		origin:   origin,
		radiusKm: radiusKm,
		category: strings.TrimSpace(category),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetNearbyProductsQuery) Validate() error {
	return q.guard.Validate(ErrGetNearbyProductsQueryIsNotConstructed)
}

// Origin returns the query point.
func (q GetNearbyProductsQuery) Origin() kernel.GeoPoint {
	return q.origin
}

// RadiusKm returns the search radius.
func (q GetNearbyProductsQuery) RadiusKm() float64 {
	return q.radiusKm
}

// Category returns the category filter, empty for none.
func (q GetNearbyProductsQuery) Category() string {
	return q.category
}

// GetNearbyProductsQueryResponse is one discovered product, nearest first in
// the result slice.
type GetNearbyProductsQueryResponse struct {
	ID          kernel.UUID
	VendorID    kernel.UUID
	Name        string
	Category    string
	Price       float64
	AddressLine string
	Location    kernel.GeoPoint
	DistanceKm  float64
}
