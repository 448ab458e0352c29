// Package cart holds the customer's pending purchase: one line per
// medication, quantities clamped to the stock seen when the catalog was last
// fetched.
package cart

import (
	"errors"

	"pharmacy/internal/domain"
)

var (
	ErrOutOfStock   = errors.New("medication is out of stock")
	ErrLineNotFound = errors.New("medication is not in the cart")
)

// Line is one medication pending purchase. Drug is the catalog snapshot the
// quantity was clamped against.
type Line struct {
	Drug     domain.Drug
	Quantity int
}

func (l Line) Subtotal() domain.Money {
	return l.Drug.Price.Mul(l.Quantity)
}

// Cart is not safe for concurrent use; Store serialises access per session.
type Cart struct {
	lines []Line
}

func New() *Cart { return &Cart{} }

func (c *Cart) index(id int64) int {
	for i, l := range c.lines {
		if l.Drug.ID == id {
			return i
		}
	}
	return -1
}

// Add appends d with quantity 1. Adding a medication already in the cart is a
// no-op.
func (c *Cart) Add(d domain.Drug) error {
	if c.index(d.ID) >= 0 {
		return nil
	}
	if d.StockQuantity < 1 {
		return ErrOutOfStock
	}
	c.lines = append(c.lines, Line{Drug: d, Quantity: 1})
	return nil
}

func (c *Cart) Remove(id int64) {
	i := c.index(id)
	if i < 0 {
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
}

// SetQuantity stores q clamped into [1, stock].
func (c *Cart) SetQuantity(id int64, q int) error {
	i := c.index(id)
	if i < 0 {
		return ErrLineNotFound
	}
	c.lines[i].Quantity = clamp(q, c.lines[i].Drug.StockQuantity)
	return nil
}

func clamp(q, stock int) int {
	return max(1, min(q, stock))
}

func (c *Cart) Quantity(id int64) (int, bool) {
	i := c.index(id)
	if i < 0 {
		return 0, false
	}
	return c.lines[i].Quantity, true
}

func (c *Cart) Contains(id int64) bool { return c.index(id) >= 0 }
func (c *Cart) Len() int               { return len(c.lines) }
func (c *Cart) Clear()                 { c.lines = nil }

// Lines returns a copy in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Total() domain.Money { return Sum(c.lines) }

// Sum is the total of lines, e.g. of a Store snapshot.
func Sum(lines []Line) domain.Money {
	var total domain.Money
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}

// Reconcile replaces each line's snapshot with the matching catalog entry and
// re-clamps its quantity. Lines whose medication is gone or out of stock are
// dropped and returned.
func (c *Cart) Reconcile(catalog []domain.Drug) []Line {
	byID := make(map[int64]domain.Drug, len(catalog))
	for _, d := range catalog {
		byID[d.ID] = d
	}
	var dropped []Line
	kept := c.lines[:0]
	for _, l := range c.lines {
		d, ok := byID[l.Drug.ID]
		if !ok || d.StockQuantity < 1 {
			dropped = append(dropped, l)
			continue
		}
		kept = append(kept, Line{Drug: d, Quantity: clamp(l.Quantity, d.StockQuantity)})
	}
	c.lines = kept
	return dropped
}
