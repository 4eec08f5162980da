package core

// Side represents the buy or sell side of an order.
type Side int

// Order sides.
const (
	Buy Side = iota
	Sell
)

// String returns side as a human-readable string.
func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// OrderType is the time-in-force behavior of an order.
type OrderType int

// Order types.
const (
	// GoodTilCancel rests on the book until filled or canceled.
	GoodTilCancel OrderType = iota
	// FillAndKill matches whatever liquidity is immediately available
	// and cancels any residual instead of resting.
	FillAndKill
)

// String returns the order type as a human-readable string.
func (t OrderType) String() string {
	switch t {
	case GoodTilCancel:
		return "GTC"
	case FillAndKill:
		return "FAK"
	default:
		return "UNKNOWN"
	}
}

// OrderId uniquely identifies an order, supplied by the caller.
type OrderId uint64

// Price is a signed tick. Signedness is load-bearing: it allows
// negative prices, e.g. for spread products.
type Price int32

// Quantity is an order size or residual size.
type Quantity uint64

// Order holds an immutable identity plus a mutable residual quantity.
//
// id, side, orderType, price and initial never change for the
// lifetime of the order; only remaining monotonically decreases.
type Order struct {
	id        OrderId
	side      Side
	orderType OrderType
	price     Price
	initial   Quantity
	remaining Quantity
}

// NewOrder constructs an Order. qty must be non-zero.
func NewOrder(id OrderId, side Side, orderType OrderType, price Price, qty Quantity) (*Order, error) {
	if qty == 0 {
		return nil, ErrInvalidQuantity
	}
	return &Order{
		id:        id,
		side:      side,
		orderType: orderType,
		price:     price,
		initial:   qty,
		remaining: qty,
	}, nil
}

// ID returns the order's id.
func (o *Order) ID() OrderId { return o.id }

// Side returns the order's side.
func (o *Order) Side() Side { return o.side }

// Type returns the order's time-in-force type.
func (o *Order) Type() OrderType { return o.orderType }

// Price returns the order's limit price.
func (o *Order) Price() Price { return o.price }

// InitialQuantity returns the quantity the order was created with.
func (o *Order) InitialQuantity() Quantity { return o.initial }

// RemainingQuantity returns the quantity still unfilled.
func (o *Order) RemainingQuantity() Quantity { return o.remaining }

// FilledQuantity returns the quantity already matched.
func (o *Order) FilledQuantity() Quantity { return o.initial - o.remaining }

// IsFilled reports whether the order has no quantity left.
func (o *Order) IsFilled() bool { return o.remaining == 0 }

// Fill decreases the remaining quantity by qty. Overfill is an
// invariant violation, not a routine error: the matcher must never
// construct a call where qty exceeds what remains.
func (o *Order) Fill(qty Quantity) {
	if qty > o.remaining {
		panicInvariant("overfill: order %d has %d remaining, fill requested %d", o.id, o.remaining, qty)
	}
	o.remaining -= qty
}
