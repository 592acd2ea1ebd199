package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetNearbyProductsQueryHandler answers customer product discovery.
// The database narrows candidates to active products in the requested
// category; the distance filter and ordering run through the proximity
// service so the boundary-inclusion rule lives in one place.
type GetNearbyProductsQueryHandler struct {
	db *gorm.DB
}

// NewGetNearbyProductsQueryHandler creates a handler for product discovery queries.
func NewGetNearbyProductsQueryHandler(db *gorm.DB) GetNearbyProductsQueryHandler {
	return GetNearbyProductsQueryHandler{db: db}
}

// productCandidate adapts a catalog row to the proximity search.
type productCandidate struct {
	response GetNearbyProductsQueryResponse
}

func (c productCandidate) Location() kernel.GeoPoint {
	return c.response.Location
}

// Handle executes the discovery query. Results come back nearest first; zero
// matches is an empty slice, not an error.
func (h GetNearbyProductsQueryHandler) Handle(
	ctx context.Context,
	query GetNearbyProductsQuery,
) ([]GetNearbyProductsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			vendor_id,
			name,
			category,
			price,
			address_line,
			latitude,
			longitude
		FROM products
		WHERE active
	`
	args := make([]any, 0, 1)
	if query.Category() != "" {
		sql += " AND category = ?"
		args = append(args, query.Category())
	}
	sql += " ORDER BY id"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, errs.NewUpstreamUnavailableErrorWithCause("database", err)
	}
	defer rows.Close()

	candidates := make([]productCandidate, 0)

	for rows.Next() {
		var (
			id, vendorID        uuid.UUID
			name, category      string
			price               float64
			addressLine         string
			latitude, longitude float64
		)

		if err = rows.Scan(&id, &vendorID, &name, &category, &price, &addressLine, &latitude, &longitude); err != nil {
			return nil, err
		}

		productID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		ownerID, idErr := kernel.UUIDFromBytes(vendorID[:])
		if idErr != nil {
			return nil, idErr
		}
		location, locErr := kernel.NewGeoPoint(latitude, longitude)
		if locErr != nil {
			return nil, locErr
		}

		candidates = append(candidates, productCandidate{response: GetNearbyProductsQueryResponse{
			ID:          productID,
			VendorID:    ownerID,
			Name:        name,
			Category:    category,
			Price:       price,
			AddressLine: addressLine,
			Location:    location,
		}})
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewUpstreamUnavailableErrorWithCause("database", err)
	}

	matches, err := services.FindNear(query.Origin(), query.RadiusKm(), candidates)
	if err != nil {
		return nil, err
	}

	responses := make([]GetNearbyProductsQueryResponse, 0, len(matches))
	for _, match := range matches {
		response := match.Candidate.response
		response.DistanceKm = match.DistanceKm
		responses = append(responses, response)
	}

	return responses, nil
}
