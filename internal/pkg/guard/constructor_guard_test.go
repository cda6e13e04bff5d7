package guard_test

import (
	"errors"
	"testing"

	"cafeteria/internal/pkg/guard"

	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed guard passes validation", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero value guard fails with provided error", func(t *testing.T) {
		var g guard.ConstructorGuard
		validationErr := errors.New("command must be created via its constructor")

		err := g.Validate(validationErr)

		require.ErrorIs(t, err, validationErr)
	})

	t.Run("zero value guard falls back to default error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
	})

	t.Run("guard can be safely passed by value", func(t *testing.T) {
		g := guard.NewConstructorGuard()
		gCopy := g

		require.NoError(t, g.Validate(errors.New("boom")))
		require.NoError(t, gCopy.Validate(errors.New("boom")))
	})
}
