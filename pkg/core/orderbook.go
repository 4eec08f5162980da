package core

// OrderBook implements price-time priority matching over a single
// instrument. It is not safe for concurrent mutation: a caller wanting
// concurrent access must serialize externally.
type OrderBook struct {
	backend Backend
}

// NewOrderBook creates an OrderBook driven by the given backend.
func NewOrderBook(backend Backend) *OrderBook {
	return &OrderBook{backend: backend}
}

// OrderModify describes a cancel-then-reinsert at a new side/price/
// quantity. The replacement order loses its original time priority.
type OrderModify struct {
	ID       OrderId
	Side     Side
	Price    Price
	Quantity Quantity
}

// AddOrder admits order into the book. Duplicate ids and FAK orders
// with no immediate counterparty are silent rejections: they return a
// nil trade slice with no state change, not an error.
func (ob *OrderBook) AddOrder(order *Order) []Trade {
	if _, exists := ob.backend.GetOrder(order.ID()); exists {
		return nil
	}

	if order.Type() == FillAndKill && !ob.canMatch(order.Side(), order.Price()) {
		return nil
	}

	ob.backend.Insert(order)
	trades := ob.runMatchLoop()
	ob.cleanupFillAndKill()

	return trades
}

// CancelOrder removes the order with the given id, if it is resting.
// Unknown ids are a silent no-op.
func (ob *OrderBook) CancelOrder(id OrderId) {
	ob.backend.Delete(id)
}

// ModifyOrder cancels the existing order and resubmits it with a new
// side/price/quantity, preserving its original OrderType but not its
// time priority. An unknown id returns no trades.
func (ob *OrderBook) ModifyOrder(mod OrderModify) []Trade {
	existing, exists := ob.backend.GetOrder(mod.ID)
	if !exists {
		return nil
	}

	orderType := existing.Type()
	ob.backend.Delete(mod.ID)

	replacement, err := NewOrder(mod.ID, mod.Side, orderType, mod.Price, mod.Quantity)
	if err != nil {
		return nil
	}

	return ob.AddOrder(replacement)
}

// Size returns the number of resting orders across both sides.
func (ob *OrderBook) Size() int {
	return ob.backend.Size()
}

// GetOrderInfos produces a read-only depth snapshot: (price, aggregate
// remaining quantity) per live level, bids high-to-low and asks
// low-to-high.
func (ob *OrderBook) GetOrderInfos() (bids, asks []LevelSnapshot) {
	return ob.backend.Levels(Buy), ob.backend.Levels(Sell)
}

// canMatch reports whether an order of side at price would find an
// immediate counterparty.
func (ob *OrderBook) canMatch(side Side, price Price) bool {
	if side == Buy {
		best, ok := ob.backend.Best(Sell)
		return ok && price >= best
	}
	best, ok := ob.backend.Best(Buy)
	return ok && price <= best
}

// runMatchLoop drains the best bid and best ask queues against each
// other in FIFO order, while the book stays crossed, until one queue
// (and therefore its level) empties.
func (ob *OrderBook) runMatchLoop() []Trade {
	var trades []Trade

	for {
		bidPrice, haveBid := ob.backend.Best(Buy)
		askPrice, haveAsk := ob.backend.Best(Sell)
		if !haveBid || !haveAsk || bidPrice < askPrice {
			break
		}

		for {
			bid, okBid := ob.backend.Front(Buy, bidPrice)
			ask, okAsk := ob.backend.Front(Sell, askPrice)
			if !okBid || !okAsk {
				break
			}

			qty := minQuantity(bid.RemainingQuantity(), ask.RemainingQuantity())
			bid.Fill(qty)
			ask.Fill(qty)

			trades = append(trades, newTrade(bid, ask, qty))

			if bid.IsFilled() {
				ob.backend.Delete(bid.ID())
			}
			if ask.IsFilled() {
				ob.backend.Delete(ask.ID())
			}
		}
	}

	return trades
}

// cleanupFillAndKill runs after the match loop: a FAK order can only
// still be resting if it is the aggressor of the call that just ran,
// in which case it sits at the head of the level it rests on (that
// level was drained down to it during matching). A single head check
// per side therefore suffices.
func (ob *OrderBook) cleanupFillAndKill() {
	if price, ok := ob.backend.Best(Buy); ok {
		if head, ok := ob.backend.Front(Buy, price); ok && head.Type() == FillAndKill {
			ob.backend.Delete(head.ID())
		}
	}
	if price, ok := ob.backend.Best(Sell); ok {
		if head, ok := ob.backend.Front(Sell, price); ok && head.Type() == FillAndKill {
			ob.backend.Delete(head.ID())
		}
	}
}

func minQuantity(a, b Quantity) Quantity {
	if a < b {
		return a
	}
	return b
}
