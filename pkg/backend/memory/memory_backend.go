// Package memory provides an in-process, non-persistent core.Backend
// suitable for a single instrument driven by one goroutine at a time.
package memory

import (
	"container/list"

	"github.com/sjanney/orderbook/pkg/core"
)

// level is one price level on one side: a FIFO queue of resting orders
// plus its place in that side's best-first doubly-linked chain.
type level struct {
	price  core.Price
	orders *list.List // element type: *core.Order, front = oldest
	next   *level
	prev   *level
}

// entry is the order directory's record for a resting order: the order
// itself, which level it lives on, and the *list.Element that is its
// stable positional handle into that level's queue. The handle stays
// valid across insertions and removals of unrelated orders, including
// other orders at the same price.
type entry struct {
	order *core.Order
	lvl   *level
	elem  *list.Element
}

// side is one of the book's two price-sorted level chains: head is
// always the best price for that side (highest for bids, lowest for
// asks).
type side struct {
	head, tail *level
	byPrice    map[core.Price]*level
	isBuy      bool
}

func newSide(isBuy bool) *side {
	return &side{byPrice: make(map[core.Price]*level), isBuy: isBuy}
}

// better reports whether price a should sit ahead of price b on this
// side's chain.
func (s *side) better(a, b core.Price) bool {
	if s.isBuy {
		return a > b
	}
	return a < b
}

// levelFor returns the level at price, creating and linking it into
// the chain at its sorted position if it does not already exist.
func (s *side) levelFor(price core.Price) *level {
	if lvl, ok := s.byPrice[price]; ok {
		return lvl
	}

	lvl := &level{price: price, orders: list.New()}
	s.byPrice[price] = lvl

	if s.head == nil {
		s.head = lvl
		s.tail = lvl
		return lvl
	}

	if s.better(price, s.head.price) {
		lvl.next = s.head
		s.head.prev = lvl
		s.head = lvl
		return lvl
	}

	if !s.better(price, s.tail.price) {
		lvl.prev = s.tail
		s.tail.next = lvl
		s.tail = lvl
		return lvl
	}

	cur := s.head
	for cur.next != nil && s.better(cur.next.price, price) {
		cur = cur.next
	}
	lvl.next = cur.next
	lvl.prev = cur
	if cur.next != nil {
		cur.next.prev = lvl
	} else {
		s.tail = lvl
	}
	cur.next = lvl
	return lvl
}

// unlink removes lvl from the chain and from byPrice. It assumes lvl's
// order queue is already empty.
func (s *side) unlink(lvl *level) {
	delete(s.byPrice, lvl.price)

	if lvl.prev != nil {
		lvl.prev.next = lvl.next
	} else {
		s.head = lvl.next
	}
	if lvl.next != nil {
		lvl.next.prev = lvl.prev
	} else {
		s.tail = lvl.prev
	}
}

// MemoryBackend is an in-process core.Backend: a directory keyed by
// order id plus one sorted level chain per side.
type MemoryBackend struct {
	directory map[core.OrderId]*entry
	bids      *side
	asks      *side
}

// NewMemoryBackend returns an empty backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		directory: make(map[core.OrderId]*entry),
		bids:      newSide(true),
		asks:      newSide(false),
	}
}

func (b *MemoryBackend) sideFor(s core.Side) *side {
	if s == core.Buy {
		return b.bids
	}
	return b.asks
}

// GetOrder implements core.Backend.
func (b *MemoryBackend) GetOrder(id core.OrderId) (*core.Order, bool) {
	e, ok := b.directory[id]
	if !ok {
		return nil, false
	}
	return e.order, true
}

// Size implements core.Backend.
func (b *MemoryBackend) Size() int {
	return len(b.directory)
}

// Insert implements core.Backend.
func (b *MemoryBackend) Insert(order *core.Order) {
	s := b.sideFor(order.Side())
	lvl := s.levelFor(order.Price())
	elem := lvl.orders.PushBack(order)
	b.directory[order.ID()] = &entry{order: order, lvl: lvl, elem: elem}
}

// Delete implements core.Backend.
func (b *MemoryBackend) Delete(id core.OrderId) {
	e, ok := b.directory[id]
	if !ok {
		return
	}
	delete(b.directory, id)

	lvl := e.lvl
	lvl.orders.Remove(e.elem)
	if lvl.orders.Len() == 0 {
		b.sideFor(e.order.Side()).unlink(lvl)
	}
}

// Best implements core.Backend.
func (b *MemoryBackend) Best(s core.Side) (core.Price, bool) {
	head := b.sideFor(s).head
	if head == nil {
		return 0, false
	}
	return head.price, true
}

// Front implements core.Backend.
func (b *MemoryBackend) Front(s core.Side, price core.Price) (*core.Order, bool) {
	lvl, ok := b.sideFor(s).byPrice[price]
	if !ok {
		return nil, false
	}
	front := lvl.orders.Front()
	if front == nil {
		return nil, false
	}
	return front.Value.(*core.Order), true
}

// Levels implements core.Backend.
func (b *MemoryBackend) Levels(s core.Side) []core.LevelSnapshot {
	snap := make([]core.LevelSnapshot, 0)
	for lvl := b.sideFor(s).head; lvl != nil; lvl = lvl.next {
		var qty core.Quantity
		for e := lvl.orders.Front(); e != nil; e = e.Next() {
			qty += e.Value.(*core.Order).RemainingQuantity()
		}
		snap = append(snap, core.LevelSnapshot{Price: lvl.price, Quantity: qty})
	}
	return snap
}
