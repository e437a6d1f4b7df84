package guard_test

import (
	"errors"
	"testing"

	"shop/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("should pass for constructed guard", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("should not be returned")))
	})

	t.Run("should return provided error for zero-value guard", func(t *testing.T) {
		var g guard.ConstructorGuard
		errNotConstructed := errors.New("command must be created via its constructor")

		err := g.Validate(errNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("should fall back to default error when nil is provided", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
	})
}
