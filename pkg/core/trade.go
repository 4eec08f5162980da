package core

// TradeInfo is one leg of a Trade: the order that participated, the
// limit price it traded at (its own — not a single shared execution
// price), and the quantity exchanged.
type TradeInfo struct {
	OrderID  OrderId
	Price    Price
	Quantity Quantity
}

// Trade pairs the bid and ask legs of a single match. Both legs always
// carry the same Quantity; Price differs when the resting order's
// limit price differs from the aggressor's.
type Trade struct {
	Bid TradeInfo
	Ask TradeInfo
}

func newTrade(bid, ask *Order, qty Quantity) Trade {
	return Trade{
		Bid: TradeInfo{OrderID: bid.ID(), Price: bid.Price(), Quantity: qty},
		Ask: TradeInfo{OrderID: ask.ID(), Price: ask.Price(), Quantity: qty},
	}
}
