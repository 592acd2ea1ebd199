package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailableOrdersQueryHandler lists orders open for acceptance.
// The listing is a snapshot: any order in it may already be taken by the
// time a partner tries to accept it, and the accept path resolves that race,
// not this query.
type GetAvailableOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableOrdersQueryHandler creates a handler for availability queries.
func NewGetAvailableOrdersQueryHandler(db *gorm.DB) GetAvailableOrdersQueryHandler {
	return GetAvailableOrdersQueryHandler{db: db}
}

type orderCandidate struct {
	response GetAvailableOrdersQueryResponse
}

func (c orderCandidate) Location() kernel.GeoPoint {
	return c.response.Location
}

// Handle executes the availability query, oldest orders first in the flat
// listing and nearest first when an origin is supplied.
func (h GetAvailableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableOrdersQuery,
) ([]GetAvailableOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.shipping_address,
			o.shipping_latitude,
			o.shipping_longitude,
			o.created_at,
			COUNT(i.id)
		FROM orders o
		JOIN order_items i ON i.order_id = o.id
		WHERE o.status = ?
		  AND o.delivery_partner_id IS NULL
		GROUP BY o.id, o.shipping_address, o.shipping_latitude, o.shipping_longitude, o.created_at
		ORDER BY o.created_at
	`, order.Processing.String()).Rows()
	if err != nil {
		return nil, errs.NewUpstreamUnavailableErrorWithCause("database", err)
	}
	defer rows.Close()

	candidates := make([]orderCandidate, 0)

	for rows.Next() {
		var (
			id                  uuid.UUID
			shippingAddress     string
			latitude, longitude float64
			createdAt           time.Time
			itemCount           int
		)

		if err = rows.Scan(&id, &shippingAddress, &latitude, &longitude, &createdAt, &itemCount); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		location, locErr := kernel.NewGeoPoint(latitude, longitude)
		if locErr != nil {
			return nil, locErr
		}

		candidates = append(candidates, orderCandidate{response: GetAvailableOrdersQueryResponse{
			ID:              orderID,
			ShippingAddress: shippingAddress,
			Location:        location,
			ItemCount:       itemCount,
			CreatedAt:       createdAt,
			DistanceKm:      -1,
		}})
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewUpstreamUnavailableErrorWithCause("database", err)
	}

	if query.Origin() == nil {
		responses := make([]GetAvailableOrdersQueryResponse, 0, len(candidates))
		for _, candidate := range candidates {
			responses = append(responses, candidate.response)
		}
		return responses, nil
	}

	matches, err := services.FindNear(*query.Origin(), query.RadiusKm(), candidates)
	if err != nil {
		return nil, err
	}

	responses := make([]GetAvailableOrdersQueryResponse, 0, len(matches))
	for _, match := range matches {
		response := match.Candidate.response
		response.DistanceKm = match.DistanceKm
		responses = append(responses, response)
	}

	return responses, nil
}
