package memory

import (
	"testing"

	"github.com/sjanney/orderbook/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustOrder(t *testing.T, id core.OrderId, side core.Side, price core.Price, qty core.Quantity) *core.Order {
	o, err := core.NewOrder(id, side, core.GoodTilCancel, price, qty)
	require.NoError(t, err)
	return o
}

func TestNewMemoryBackend(t *testing.T) {
	b := NewMemoryBackend()
	assert.NotNil(t, b)
	assert.Equal(t, 0, b.Size())

	_, ok := b.Best(core.Buy)
	assert.False(t, ok)
	_, ok = b.Best(core.Sell)
	assert.False(t, ok)
}

func TestMemoryBackend_InsertAndGetOrder(t *testing.T) {
	b := NewMemoryBackend()
	order := mustOrder(t, 1, core.Buy, 100, 10)

	b.Insert(order)

	got, ok := b.GetOrder(1)
	require.True(t, ok)
	assert.Same(t, order, got)
	assert.Equal(t, 1, b.Size())
}

func TestMemoryBackend_DeleteUnknownIsNoop(t *testing.T) {
	b := NewMemoryBackend()
	b.Delete(999)
	assert.Equal(t, 0, b.Size())
}

func TestMemoryBackend_DeleteDropsEmptyLevel(t *testing.T) {
	b := NewMemoryBackend()
	order := mustOrder(t, 1, core.Buy, 100, 10)
	b.Insert(order)

	b.Delete(1)

	assert.Equal(t, 0, b.Size())
	_, ok := b.Best(core.Buy)
	assert.False(t, ok, "level should be unlinked once its last order is removed")
	_, exists := b.GetOrder(1)
	assert.False(t, exists)
}

func TestMemoryBackend_FIFOWithinLevel(t *testing.T) {
	b := NewMemoryBackend()
	first := mustOrder(t, 1, core.Buy, 100, 10)
	second := mustOrder(t, 2, core.Buy, 100, 5)
	b.Insert(first)
	b.Insert(second)

	front, ok := b.Front(core.Buy, 100)
	require.True(t, ok)
	assert.Equal(t, core.OrderId(1), front.ID(), "earlier insertion keeps time priority")

	b.Delete(1)

	front, ok = b.Front(core.Buy, 100)
	require.True(t, ok)
	assert.Equal(t, core.OrderId(2), front.ID())
}

func TestMemoryBackend_StableHandleAcrossUnrelatedMutation(t *testing.T) {
	b := NewMemoryBackend()
	target := mustOrder(t, 1, core.Buy, 100, 10)
	b.Insert(target)

	// Insert and remove unrelated orders at other prices and at the
	// same price; target's front-of-queue position must be unaffected.
	other := mustOrder(t, 2, core.Buy, 99, 3)
	b.Insert(other)
	sibling := mustOrder(t, 3, core.Buy, 100, 4)
	b.Insert(sibling)
	b.Delete(2)

	front, ok := b.Front(core.Buy, 100)
	require.True(t, ok)
	assert.Equal(t, core.OrderId(1), front.ID())
}

func TestMemoryBackend_BidsSortedHighToLow(t *testing.T) {
	b := NewMemoryBackend()
	b.Insert(mustOrder(t, 1, core.Buy, 100, 1))
	b.Insert(mustOrder(t, 2, core.Buy, 105, 1))
	b.Insert(mustOrder(t, 3, core.Buy, 95, 1))
	b.Insert(mustOrder(t, 4, core.Buy, 110, 1))
	b.Insert(mustOrder(t, 5, core.Buy, 102, 1))

	levels := b.Levels(core.Buy)
	prices := make([]core.Price, len(levels))
	for i, lvl := range levels {
		prices[i] = lvl.Price
	}
	assert.Equal(t, []core.Price{110, 105, 102, 100, 95}, prices)
}

func TestMemoryBackend_AsksSortedLowToHigh(t *testing.T) {
	b := NewMemoryBackend()
	b.Insert(mustOrder(t, 1, core.Sell, 100, 1))
	b.Insert(mustOrder(t, 2, core.Sell, 105, 1))
	b.Insert(mustOrder(t, 3, core.Sell, 95, 1))
	b.Insert(mustOrder(t, 4, core.Sell, 110, 1))

	levels := b.Levels(core.Sell)
	prices := make([]core.Price, len(levels))
	for i, lvl := range levels {
		prices[i] = lvl.Price
	}
	assert.Equal(t, []core.Price{95, 100, 105, 110}, prices)
}

func TestMemoryBackend_LevelsAggregateQuantity(t *testing.T) {
	b := NewMemoryBackend()
	b.Insert(mustOrder(t, 1, core.Buy, 100, 10))
	b.Insert(mustOrder(t, 2, core.Buy, 100, 7))

	levels := b.Levels(core.Buy)
	require.Len(t, levels, 1)
	assert.Equal(t, core.Price(100), levels[0].Price)
	assert.Equal(t, core.Quantity(17), levels[0].Quantity)
}

func TestMemoryBackend_BestTracksRemovalOfTopLevel(t *testing.T) {
	b := NewMemoryBackend()
	b.Insert(mustOrder(t, 1, core.Buy, 100, 1))
	b.Insert(mustOrder(t, 2, core.Buy, 110, 1))

	best, ok := b.Best(core.Buy)
	require.True(t, ok)
	assert.Equal(t, core.Price(110), best)

	b.Delete(2)

	best, ok = b.Best(core.Buy)
	require.True(t, ok)
	assert.Equal(t, core.Price(100), best)
}

func TestMemoryBackend_FrontUnknownLevel(t *testing.T) {
	b := NewMemoryBackend()
	_, ok := b.Front(core.Buy, 100)
	assert.False(t, ok)
}
