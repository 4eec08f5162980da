package otel

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// Span names, one per mutating operation.
	SpanAddOrder    = "add_order"
	SpanCancelOrder = "cancel_order"
	SpanModifyOrder = "modify_order"
	SpanMatchLoop   = "match_loop"

	// Attribute keys.
	AttributeOrderID           = "order.id"
	AttributeOrderSide         = "order.side"
	AttributeOrderType         = "order.type"
	AttributeOrderQuantity     = "order.quantity"
	AttributeOrderPrice        = "order.price"
	AttributeRemainingQuantity = "order.remaining_quantity"
	AttributeTradeCount        = "trade.count"
)

// StartOrderSpan starts a span for one of the order book's mutating
// operations.
func StartOrderSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return Tracer().Start(ctx, name, trace.WithAttributes(attrs...))
}

// AddAttributes adds attributes to a span, tolerating a nil span.
func AddAttributes(span trace.Span, attrs ...attribute.KeyValue) {
	if span == nil {
		return
	}
	span.SetAttributes(attrs...)
}
