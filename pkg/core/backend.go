package core

// LevelSnapshot is one price level's aggregate resting quantity, as
// produced by Backend.Levels for depth queries.
type LevelSnapshot struct {
	Price    Price
	Quantity Quantity
}

// Backend is the pluggable book-index + order-directory implementation
// the matching engine drives. It owns both the per-side, price-sorted
// level structure and the id -> order directory; the two must be kept
// consistent by every method — the matching engine never touches
// either structure directly.
type Backend interface {
	// GetOrder looks up a resting order by id.
	GetOrder(id OrderId) (*Order, bool)

	// Size returns the number of resting orders across both sides.
	Size() int

	// Insert adds order to the directory and appends it to the tail
	// of the FIFO queue at its price level on its side, creating the
	// level if absent. The caller must not already hold an order with
	// this id.
	Insert(order *Order)

	// Delete removes the order with the given id from the directory
	// and from its level queue, dropping the level if it becomes
	// empty. Unknown ids are a no-op.
	Delete(id OrderId)

	// Best returns the best (highest bid / lowest ask) price on side,
	// and false if that side is empty.
	Best(side Side) (Price, bool)

	// Front returns the order at the head of the FIFO queue at price
	// on side — the next order time priority would match — and false
	// if that level does not exist.
	Front(side Side, price Price) (*Order, bool)

	// Levels returns (price, aggregate remaining quantity) for every
	// live level on side, sorted best-first.
	Levels(side Side) []LevelSnapshot
}
