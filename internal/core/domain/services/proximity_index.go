package services

import (
	"sort"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Locatable is anything with a position on the globe. Both products and
// unassigned orders satisfy it, so the same radius search serves customer
// product discovery and delivery-partner order discovery.
type Locatable interface {
	Location() kernel.GeoPoint
}

// Match pairs a candidate with its great-circle distance from the query point.
type Match[T Locatable] struct {
	Candidate  T
	DistanceKm float64
}

// ProximityIndex is a domain service answering "what is within radius R of
// point P" over an in-memory candidate set.
//
// Business rules:
//   - A candidate at distance exactly R is included (inclusive boundary)
//   - Results are ordered by ascending distance, nearest first
//   - Zero matches is not an error
type ProximityIndex struct{}

// NewProximityIndex creates a new ProximityIndex instance.
func NewProximityIndex() ProximityIndex {
	return ProximityIndex{}
}

// FindNear returns the candidates within radiusKm of origin, nearest first.
// The radius must be positive; the candidate order is stable for equal
// distances.
func FindNear[T Locatable](origin kernel.GeoPoint, radiusKm float64, candidates []T) ([]Match[T], error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}
	if radiusKm <= 0 {
		return nil, errs.NewValueIsInvalidError("radius")
	}

	matches := make([]Match[T], 0, len(candidates))
	for _, candidate := range candidates {
		location := candidate.Location()
		if err := location.Validate(); err != nil {
			return nil, err
		}

		distance, err := origin.DistanceKm(location)
		if err != nil {
			return nil, err
		}
		if distance <= radiusKm {
			matches = append(matches, Match[T]{Candidate: candidate, DistanceKm: distance})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].DistanceKm < matches[j].DistanceKm
	})

	return matches, nil
}

// FindNear is the method form of the package-level search, kept so the
// service can be injected as a collaborator.
func (ProximityIndex) FindNear(origin kernel.GeoPoint, radiusKm float64, candidates []Locatable) ([]Match[Locatable], error) {
	return FindNear(origin, radiusKm, candidates)
}
