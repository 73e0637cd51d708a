// Package kvtest holds the behaviour every kv.Store backend must share.
package kvtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikikusuma/storefront/pkg/kv"
)

func Run(t *testing.T, s kv.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key -> not ok", func(t *testing.T) {
		v, ok, err := s.Get(ctx, "absent")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, v)
	})

	t.Run("set then get -> value", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "cart", `[{"productId":"p1","qty":2}]`))
		v, ok, err := s.Get(ctx, "cart")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `[{"productId":"p1","qty":2}]`, v)
	})

	t.Run("overwrite -> last write wins", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "k", "one"))
		require.NoError(t, s.Set(ctx, "k", "two"))
		v, _, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "two", v)
	})
}
