package guard_test

import (
	"errors"
	"testing"

	"marketplace/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("constructed_guard_passes_validation", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("should not be returned")))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("entity not constructed")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

// TestConstructorGuardUsageExample shows the intended embedding pattern on a
// small value object.
func TestConstructorGuardUsageExample(t *testing.T) {
	type radius struct {
		km    float64
		guard guard.ConstructorGuard
	}

	errRadiusNotConstructed := errors.New("radius must be created via newRadius")

	newRadius := func(km float64) (radius, error) {
		if km <= 0 {
			return radius{}, errors.New("radius must be positive")
		}
		return radius{km: km, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_object_is_valid", func(t *testing.T) {
		r, err := newRadius(2.5)
		require.NoError(t, err)
		require.NoError(t, r.guard.Validate(errRadiusNotConstructed))
	})

	t.Run("zero_value_object_is_invalid", func(t *testing.T) {
		var r radius
		err := r.guard.Validate(errRadiusNotConstructed)
		require.Error(t, err)
		assert.Equal(t, errRadiusNotConstructed, err)
	})
}
