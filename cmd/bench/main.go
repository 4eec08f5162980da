// Command bench measures AddOrder latency under synthetic crossing
// load and prints an HDR histogram percentile summary.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/fatih/color"

	"github.com/sjanney/orderbook/pkg/backend/memory"
	"github.com/sjanney/orderbook/pkg/core"
)

func main() {
	numOrders := flag.Int("orders", 200_000, "number of orders to submit")
	numLevels := flag.Int("levels", 200, "number of distinct price levels seeded on each side")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	book := core.NewOrderBook(memory.NewMemoryBackend())

	// Seed a liquid book so a large share of incoming orders cross
	// rather than rest, exercising the match loop.
	var nextID core.OrderId
	for i := 0; i < *numLevels; i++ {
		for _, side := range []core.Side{core.Buy, core.Sell} {
			price := seedPrice(side, i)
			order, _ := core.NewOrder(nextID, side, core.GoodTilCancel, price, 1_000_000)
			nextID++
			book.AddOrder(order)
		}
	}

	hist := hdrhistogram.New(1, 10_000_000, 3) // nanoseconds, up to 10ms

	start := time.Now()
	var trades, rejected int

	for i := 0; i < *numOrders; i++ {
		side := core.Buy
		if rng.Intn(2) == 0 {
			side = core.Sell
		}
		orderType := core.GoodTilCancel
		if rng.Intn(5) == 0 {
			orderType = core.FillAndKill
		}
		price := seedPrice(opposite(side), rng.Intn(*numLevels))
		qty := core.Quantity(1 + rng.Intn(20))

		order, err := core.NewOrder(nextID, side, orderType, price, qty)
		nextID++
		if err != nil {
			continue
		}

		sizeBefore := book.Size()
		t0 := time.Now()
		result := book.AddOrder(order)
		elapsed := time.Since(t0)

		_ = hist.RecordValue(elapsed.Nanoseconds())
		if result == nil && book.Size() == sizeBefore {
			rejected++
		} else {
			trades += len(result)
		}
	}

	total := time.Since(start)

	bold := color.New(color.Bold).SprintfFunc()
	cyan := color.New(color.FgCyan).SprintfFunc()

	fmt.Println(bold("AddOrder latency (ns)"))
	fmt.Printf("  %s %d\n", cyan("p50"), hist.ValueAtQuantile(50))
	fmt.Printf("  %s %d\n", cyan("p90"), hist.ValueAtQuantile(90))
	fmt.Printf("  %s %d\n", cyan("p99"), hist.ValueAtQuantile(99))
	fmt.Printf("  %s %d\n", cyan("p99.9"), hist.ValueAtQuantile(99.9))
	fmt.Printf("  %s %d\n", cyan("max"), hist.Max())
	fmt.Println()
	fmt.Printf("orders=%d trades=%d rejected=%d wall=%v throughput=%.0f orders/sec\n",
		*numOrders, trades, rejected, total, float64(*numOrders)/total.Seconds())
}

// seedPrice spreads levels symmetrically around a notional mid of 1000
// so bids and asks occupy disjoint price ranges at startup; subsequent
// random submissions are priced at an opposite-side level so they cross.
func seedPrice(side core.Side, level int) core.Price {
	if side == core.Buy {
		return core.Price(999 - level)
	}
	return core.Price(1001 + level)
}

func opposite(side core.Side) core.Side {
	if side == core.Buy {
		return core.Sell
	}
	return core.Buy
}
