package app

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/dwikikusuma/storefront/pkg/events"
	"github.com/dwikikusuma/storefront/pkg/kv"
)

const cartKey = "credmint_cart_v1"

type fakeCatalog struct{ products []catalog.Product }

func (f *fakeCatalog) Products() []catalog.Product { return f.products }

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{products: []catalog.Product{
		{ID: "p1", Title: "Phone", CategoryID: "technology", Price: 100},
		{ID: "p2", Title: "Watch", CategoryID: "watch", Price: 25.5},
	}}
}

func newTestService(t *testing.T) (*Service, *kv.Memory, *fakeCatalog) {
	ctx := context.Background()
	t.Helper()
	store := kv.NewMemory()
	cat := newFakeCatalog()
	return NewService(ctx, store, cartKey, cat), store, cat
}

func TestAdd(t *testing.T) {
	ctx := context.Background()
	t.Run("repeated add -> single summed line", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		require.NoError(t, svc.Add(ctx, "p1", 2))
		require.NoError(t, svc.Add(ctx, "p1", 3))
		assert.Equal(t, []domain.Line{{ProductID: "p1", Qty: 5}}, svc.Lines())
	})

	t.Run("fractional and tiny qty -> floored, at least 1", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		require.NoError(t, svc.Add(ctx, "p1", 2.9))
		require.NoError(t, svc.Add(ctx, "p2", 0))
		require.NoError(t, svc.Add(ctx, "p2", -4))
		require.NoError(t, svc.Add(ctx, "p2", math.NaN()))
		assert.Equal(t, []domain.Line{{ProductID: "p1", Qty: 2}, {ProductID: "p2", Qty: 3}}, svc.Lines())
	})

	t.Run("empty product id -> invalid", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		assert.ErrorIs(t, svc.Add(ctx, "", 1), ErrInvalidInput)
		assert.Empty(t, svc.Lines())
	})
}

func TestSetQty(t *testing.T) {
	ctx := context.Background()
	t.Run("zero -> line removed and count excludes it", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		require.NoError(t, svc.Add(ctx, "p1", 2))
		require.NoError(t, svc.Add(ctx, "p2", 1))

		require.NoError(t, svc.SetQty(ctx, "p1", 0))
		assert.Equal(t, []domain.Line{{ProductID: "p2", Qty: 1}}, svc.Lines())
		assert.Equal(t, 1, svc.Count())
	})

	t.Run("exact qty -> replaced", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		require.NoError(t, svc.Add(ctx, "p1", 2))
		require.NoError(t, svc.SetQty(ctx, "p1", 7.6))
		assert.Equal(t, []domain.Line{{ProductID: "p1", Qty: 7}}, svc.Lines())
	})

	t.Run("missing line -> created", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		require.NoError(t, svc.SetQty(ctx, "p2", 4))
		assert.Equal(t, []domain.Line{{ProductID: "p2", Qty: 4}}, svc.Lines())
	})

	t.Run("negative -> removed", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		require.NoError(t, svc.Add(ctx, "p1", 1))
		require.NoError(t, svc.SetQty(ctx, "p1", -3))
		assert.Empty(t, svc.Lines())
	})
}

func TestIncrementDecrement(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	require.NoError(t, svc.Increment(ctx, "p1"))
	require.NoError(t, svc.Increment(ctx, "p1"))
	assert.Equal(t, []domain.Line{{ProductID: "p1", Qty: 2}}, svc.Lines())

	require.NoError(t, svc.Decrement(ctx, "p1"))
	require.NoError(t, svc.Decrement(ctx, "p1"))
	assert.Empty(t, svc.Lines())
}

func TestRemoveAndClear(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t)
	require.NoError(t, svc.Add(ctx, "p1", 1))
	require.NoError(t, svc.Add(ctx, "p2", 1))

	require.NoError(t, svc.Remove(ctx, "unknown"))
	assert.Len(t, svc.Lines(), 2)

	require.NoError(t, svc.Remove(ctx, "p1"))
	assert.Equal(t, []domain.Line{{ProductID: "p2", Qty: 1}}, svc.Lines())

	require.NoError(t, svc.Clear(ctx))
	assert.Empty(t, svc.Lines())
	raw, _, _ := store.Get(ctx, cartKey)
	assert.Equal(t, "[]", raw)
}

func TestDerivedTotals(t *testing.T) {
	ctx := context.Background()
	svc, _, cat := newTestService(t)
	require.NoError(t, svc.Add(ctx, "p1", 2))
	require.NoError(t, svc.Add(ctx, "p2", 2))
	require.NoError(t, svc.Add(ctx, "ghost", 3))

	items := svc.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 200.0, items[0].LineTotal)
	assert.Equal(t, 51.0, items[1].LineTotal)
	assert.Equal(t, 251.0, svc.Subtotal())
	assert.Equal(t, 7, svc.Count())

	t.Run("product removed from catalog -> dropped from items, kept in lines", func(t *testing.T) {
		cat.products = cat.products[:1]
		assert.Len(t, svc.Items(), 1)
		assert.Equal(t, 200.0, svc.Subtotal())
		assert.Equal(t, 7, svc.Count())
		assert.Len(t, svc.Lines(), 3)
	})

	t.Run("product restored -> resolves again", func(t *testing.T) {
		cat.products = append(cat.products, catalog.Product{ID: "ghost", Price: 1})
		assert.Len(t, svc.Items(), 2)
		assert.Equal(t, 203.0, svc.Subtotal())
	})
}

func TestPersistence(t *testing.T) {
	ctx := context.Background()
	svc, store, cat := newTestService(t)
	require.NoError(t, svc.Add(ctx, "p1", 2))
	require.NoError(t, svc.Add(ctx, "p2", 1))

	raw, ok, err := store.Get(ctx, cartKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"productId":"p1","qty":2},{"productId":"p2","qty":1}]`, raw)

	reopened := NewService(ctx, store, cartKey, cat)
	assert.Equal(t, svc.Lines(), reopened.Lines())
}

func TestLoadMalformed(t *testing.T) {
	ctx := context.Background()
	for _, raw := range []string{"", "{", `{"productId":"p1"}`, "null"} {
		store := kv.NewMemory()
		require.NoError(t, store.Set(ctx, cartKey, raw))
		svc := NewService(ctx, store, cartKey, newFakeCatalog())
		assert.Empty(t, svc.Lines(), "raw %q", raw)
	}
}

func TestDecodeLines(t *testing.T) {
	got := DecodeLines(`[
		{"productId":"p1","qty":2},
		{"productId":"","qty":2},
		{"qty":3},
		{"productId":"p2","qty":0},
		{"productId":"p3","qty":-1},
		{"productId":"p4","qty":"x"},
		{"productId":"p5","qty":1.7},
		{"productId":"p1","qty":1},
		"junk"
	]`)
	assert.Equal(t, []domain.Line{{ProductID: "p1", Qty: 3}, {ProductID: "p5", Qty: 1}}, got)
}

func TestSubscribeAndEvents(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	bus := events.NewBus()
	var ops []any
	require.NoError(t, bus.Subscribe(events.CartChanged, func(e events.Event) { ops = append(ops, e.Detail["op"]) }))

	svc := NewService(ctx, store, cartKey, newFakeCatalog(), WithBus(bus))

	var counts []int
	svc.Subscribe(func(lines []domain.Line) { counts = append(counts, len(lines)) })

	require.NoError(t, svc.Add(ctx, "p1", 1))
	require.NoError(t, svc.SetQty(ctx, "p1", 0))
	require.NoError(t, svc.Clear(ctx))

	assert.Equal(t, []int{0, 1, 0, 0}, counts)
	assert.Equal(t, []any{"add", "set_qty", "clear"}, ops)
}

func TestConcurrentMutationsPersistLastState(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t)

	const N = 200
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < N; i++ {
		g.Go(func() error {
			if i%2 == 0 {
				return svc.Increment(gctx, "p1")
			}
			return svc.Add(gctx, "p2", 1)
		})
	}
	require.NoError(t, g.Wait())

	want := []domain.Line{{ProductID: "p1", Qty: N / 2}, {ProductID: "p2", Qty: N / 2}}
	assert.ElementsMatch(t, want, svc.Lines())
	assert.Equal(t, N, svc.Count())

	raw, ok, err := store.Get(ctx, cartKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.ElementsMatch(t, svc.Lines(), DecodeLines(raw))
}

func TestConcurrentIncrementDecrementBalance(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t)
	require.NoError(t, svc.SetQty(ctx, "p1", 100))

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < 50; i++ {
		g.Go(func() error { return svc.Increment(gctx, "p1") })
		g.Go(func() error { return svc.Decrement(gctx, "p1") })
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, []domain.Line{{ProductID: "p1", Qty: 100}}, svc.Lines())
	raw, _, err := store.Get(ctx, cartKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"productId":"p1","qty":100}]`, raw)
}
