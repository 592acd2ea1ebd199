package services_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type place struct {
	name     string
	location kernel.GeoPoint
}

func (p place) Location() kernel.GeoPoint {
	return p.location
}

func point(t *testing.T, lat, lng float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return p
}

func TestFindNear(t *testing.T) {
	origin := point(t, 52.52, 13.405) // Berlin

	t.Run("should order matches nearest first", func(t *testing.T) {
		candidates := []place{
			{name: "Paris", location: point(t, 48.8566, 2.3522)},
			{name: "Potsdam", location: point(t, 52.3906, 13.0645)},
			{name: "Hamburg", location: point(t, 53.5511, 9.9937)},
		}

		matches, err := services.FindNear(origin, 1000, candidates)
		require.NoError(t, err)
		require.Len(t, matches, 3)
		assert.Equal(t, "Potsdam", matches[0].Candidate.name)
		assert.Equal(t, "Hamburg", matches[1].Candidate.name)
		assert.Equal(t, "Paris", matches[2].Candidate.name)
		assert.Less(t, matches[0].DistanceKm, matches[1].DistanceKm)
		assert.Less(t, matches[1].DistanceKm, matches[2].DistanceKm)
	})

	t.Run("should exclude candidates beyond the radius", func(t *testing.T) {
		candidates := []place{
			{name: "Potsdam", location: point(t, 52.3906, 13.0645)},
			{name: "Paris", location: point(t, 48.8566, 2.3522)},
		}

		matches, err := services.FindNear(origin, 50, candidates)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "Potsdam", matches[0].Candidate.name)
	})

	t.Run("boundary is inclusive", func(t *testing.T) {
		candidate := place{name: "edge", location: point(t, 52.52, 14.0)}
		exact, err := origin.DistanceKm(candidate.location)
		require.NoError(t, err)

		matches, err := services.FindNear(origin, exact, []place{candidate})
		require.NoError(t, err)
		assert.Len(t, matches, 1, "candidate at the exact radius must be included")

		matches, err = services.FindNear(origin, exact*0.999999, []place{candidate})
		require.NoError(t, err)
		assert.Empty(t, matches, "candidate just past the radius must be excluded")
	})

	t.Run("zero matches is not an error", func(t *testing.T) {
		matches, err := services.FindNear(origin, 1, []place{
			{name: "Paris", location: point(t, 48.8566, 2.3522)},
		})
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("should reject a non-positive radius", func(t *testing.T) {
		for _, radius := range []float64{0, -5} {
			_, err := services.FindNear(origin, radius, []place{})
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})

	t.Run("should reject an unconstructed origin", func(t *testing.T) {
		_, err := services.FindNear(kernel.GeoPoint{}, 10, []place{})
		require.Error(t, err)
	})
}
