package core_test

import (
	"testing"

	"github.com/sjanney/orderbook/pkg/backend/memory"
	"github.com/sjanney/orderbook/pkg/core"
)

// BenchmarkAddOrderCrossing measures AddOrder when every incoming buy
// crosses a resting level and triggers the match loop.
func BenchmarkAddOrderCrossing(b *testing.B) {
	book := core.NewOrderBook(memory.NewMemoryBackend())

	for i := 0; i < 100; i++ {
		sell, _ := core.NewOrder(core.OrderId(1000+i), core.Sell, core.GoodTilCancel, core.Price(100+i), 1_000_000)
		book.AddOrder(sell)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buy, _ := core.NewOrder(core.OrderId(2_000_000+i), core.Buy, core.GoodTilCancel, core.Price(100+i%100), 3)
		book.AddOrder(buy)
	}
}

// BenchmarkAddOrderResting measures AddOrder when every incoming order
// rests without crossing, exercising only the sorted-level insertion
// path.
func BenchmarkAddOrderResting(b *testing.B) {
	book := core.NewOrderBook(memory.NewMemoryBackend())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		order, _ := core.NewOrder(core.OrderId(i), core.Buy, core.GoodTilCancel, core.Price(i%500), 10)
		book.AddOrder(order)
	}
}

// BenchmarkAddOrderFillAndKill measures the admission-check plus
// single-pass cleanup cost of FAK orders against a liquid book.
func BenchmarkAddOrderFillAndKill(b *testing.B) {
	book := core.NewOrderBook(memory.NewMemoryBackend())

	for i := 0; i < 200; i++ {
		sell, _ := core.NewOrder(core.OrderId(1000+i), core.Sell, core.GoodTilCancel, core.Price(100+i%50), 1_000_000)
		book.AddOrder(sell)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		order, _ := core.NewOrder(core.OrderId(2_000_000+i), core.Buy, core.FillAndKill, core.Price(100+i%50), 3)
		book.AddOrder(order)
	}
}

// BenchmarkCancelOrder measures cancellation cost against a book with a
// steady population of resting orders.
func BenchmarkCancelOrder(b *testing.B) {
	book := core.NewOrderBook(memory.NewMemoryBackend())

	const population = 1000
	for i := 0; i < population; i++ {
		order, _ := core.NewOrder(core.OrderId(i), core.Buy, core.GoodTilCancel, core.Price(i%100), 10)
		book.AddOrder(order)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		id := core.OrderId(i % population)
		book.CancelOrder(id)
		order, _ := core.NewOrder(id, core.Buy, core.GoodTilCancel, core.Price(i%100), 10)
		book.AddOrder(order)
	}
}
