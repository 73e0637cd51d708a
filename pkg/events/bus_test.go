package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestBusDeliversSynchronously(t *testing.T) {
	b := NewBus()

	var got []Event
	require.NoError(t, b.Subscribe(CartChanged, func(e Event) { got = append(got, e) }))

	b.Publish(CartChanged, map[string]any{"op": "add"})
	b.Publish(CatalogChanged, nil)

	require.Len(t, got, 1)
	assert.Equal(t, CartChanged, got[0].Topic)
	assert.Equal(t, "add", got[0].Detail["op"])
	assert.NotEmpty(t, got[0].ID)
	assert.False(t, got[0].At.IsZero())
}

func TestNilBusPublishIsNoop(t *testing.T) {
	var b *Bus
	assert.NotPanics(t, func() { b.Publish(CartChanged, nil) })
}

func TestLogChanges(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	b := NewBus()
	require.NoError(t, LogChanges(b, zap.New(core), CartChanged, FilterChanged))

	b.Publish(CartChanged, map[string]any{"op": "clear"})
	b.Publish(FilterChanged, nil)
	b.Publish(CatalogChanged, nil)

	entries := logs.FilterMessage("state changed").All()
	require.Len(t, entries, 2)
	assert.Equal(t, CartChanged, entries[0].ContextMap()["topic"])
}
