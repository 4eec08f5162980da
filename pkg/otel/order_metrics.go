package otel

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	bookMetrics     *OrderBookMetrics
	bookMetricsOnce sync.Once
)

// OrderBookMetrics holds the instruments recorded across AddOrder,
// CancelOrder and ModifyOrder calls.
type OrderBookMetrics struct {
	ordersAdded     metric.Int64Counter
	ordersCanceled  metric.Int64Counter
	ordersRejected  metric.Int64Counter
	tradesExecuted  metric.Int64Counter
	matchedQuantity metric.Int64Counter
	restingOrders   metric.Int64UpDownCounter
}

func newOrderBookMetrics(meter metric.Meter) (*OrderBookMetrics, error) {
	ordersAdded, err := meter.Int64Counter(
		"orderbook.orders_added.total",
		metric.WithDescription("Total orders admitted via AddOrder"),
		metric.WithUnit("{order}"),
	)
	if err != nil {
		return nil, err
	}

	ordersCanceled, err := meter.Int64Counter(
		"orderbook.orders_canceled.total",
		metric.WithDescription("Total orders removed via CancelOrder"),
		metric.WithUnit("{order}"),
	)
	if err != nil {
		return nil, err
	}

	ordersRejected, err := meter.Int64Counter(
		"orderbook.orders_rejected.total",
		metric.WithDescription("Total orders silently rejected at admission (duplicate id, FAK no-cross)"),
		metric.WithUnit("{order}"),
	)
	if err != nil {
		return nil, err
	}

	tradesExecuted, err := meter.Int64Counter(
		"orderbook.trades.total",
		metric.WithDescription("Total trades produced by the match loop"),
		metric.WithUnit("{trade}"),
	)
	if err != nil {
		return nil, err
	}

	matchedQuantity, err := meter.Int64Counter(
		"orderbook.matched_quantity.total",
		metric.WithDescription("Total quantity exchanged across all trades"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, err
	}

	restingOrders, err := meter.Int64UpDownCounter(
		"orderbook.resting_orders",
		metric.WithDescription("Number of orders currently resting on the book"),
		metric.WithUnit("{order}"),
	)
	if err != nil {
		return nil, err
	}

	return &OrderBookMetrics{
		ordersAdded:     ordersAdded,
		ordersCanceled:  ordersCanceled,
		ordersRejected:  ordersRejected,
		tradesExecuted:  tradesExecuted,
		matchedQuantity: matchedQuantity,
		restingOrders:   restingOrders,
	}, nil
}

// GetOrderBookMetrics returns the package-level metrics singleton,
// creating it against the current meter on first use.
func GetOrderBookMetrics() *OrderBookMetrics {
	bookMetricsOnce.Do(func() {
		m, err := newOrderBookMetrics(Meter())
		if err != nil {
			bookMetrics = &OrderBookMetrics{}
			return
		}
		bookMetrics = m
	})
	return bookMetrics
}

// RecordAdmitted records an order that rested or matched immediately.
func (m *OrderBookMetrics) RecordAdmitted(ctx context.Context, side string) {
	if m.ordersAdded == nil {
		return
	}
	m.ordersAdded.Add(ctx, 1, metric.WithAttributes(attribute.String("order.side", side)))
	m.restingOrders.Add(ctx, 1)
}

// RecordRejected records a silent admission-time rejection.
func (m *OrderBookMetrics) RecordRejected(ctx context.Context, reason string) {
	if m.ordersRejected == nil {
		return
	}
	m.ordersRejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

// RecordCanceled records a successful cancellation.
func (m *OrderBookMetrics) RecordCanceled(ctx context.Context) {
	if m.ordersCanceled == nil {
		return
	}
	m.ordersCanceled.Add(ctx, 1)
	m.restingOrders.Add(ctx, -1)
}

// RecordTrades records the trades produced by one mutating call and
// lowers the resting order count by filledCount, the number of orders
// that left the book during that call (fully filled orders and any FAK
// residual removed by cleanup).
func (m *OrderBookMetrics) RecordTrades(ctx context.Context, trades int, quantity int64, filledCount int) {
	if m.tradesExecuted == nil {
		return
	}
	if trades > 0 {
		m.tradesExecuted.Add(ctx, int64(trades))
		m.matchedQuantity.Add(ctx, quantity)
	}
	if filledCount > 0 {
		m.restingOrders.Add(ctx, -int64(filledCount))
	}
}
