package session

import (
	"timepiece-store/internal/domain"
)

// Cart is the per-session collection of pending purchase lines. Lines keep
// insertion order; there is at most one line per watch id. Mutations only
// touch memory — the owning handler persists through Store.SaveCart.
type Cart struct {
	lines []domain.CartLine
}

func NewCart(lines []domain.CartLine) *Cart {
	return &Cart{lines: lines}
}

// Add inserts a line or adjusts an existing one. With replace the stored
// quantity is overwritten, otherwise incremented. The price is captured when
// the line first appears and kept on later adjustments.
func (c *Cart) Add(watchID int64, quantity int, price int64, replace bool) {
	if quantity <= 0 {
		quantity = 1
	}
	for i := range c.lines {
		if c.lines[i].WatchID != watchID {
			continue
		}
		if replace {
			c.lines[i].Quantity = quantity
		} else {
			c.lines[i].Quantity += quantity
		}
		return
	}
	c.lines = append(c.lines, domain.CartLine{WatchID: watchID, Quantity: quantity, Price: price})
}

// Remove deletes the line for the watch if present. Absent ids are a no-op.
func (c *Cart) Remove(watchID int64) {
	for i := range c.lines {
		if c.lines[i].WatchID == watchID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() {
	c.lines = nil
}

// Len is the count of distinct lines, not the summed quantity.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Lines yields the cart contents in insertion order.
func (c *Cart) Lines() []domain.CartLine {
	return c.lines
}

// Total sums quantity×price over all lines using the captured prices.
func (c *Cart) Total() int64 {
	var total int64
	for _, l := range c.lines {
		total += int64(l.Quantity) * l.Price
	}
	return total
}
