// Package cart holds the session-scoped shopping cart.
package cart

import (
	"donerci/internal/pricing"

	"github.com/shopspring/decimal"
)

// Item is one catalog entry in the cart. Quantity is always at least 1.
type Item struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	UnitPrice      decimal.Decimal `json:"price"`
	Quantity       int             `json:"quantity"`
	ImageRef       string          `json:"image"`
	RestaurantID   string          `json:"restaurant_id,omitempty"`
	RestaurantName string          `json:"restaurant_name,omitempty"`
}

// Cart is an insertion-ordered set of items keyed by Item.ID.
type Cart struct {
	items []Item
}

func New() *Cart {
	return &Cart{}
}

func (c *Cart) indexOf(id string) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Add increments the quantity of an existing entry, keeping its original
// name, price and image. Unknown ids are appended with quantity 1.
func (c *Cart) Add(item Item) {
	if i := c.indexOf(item.ID); i >= 0 {
		c.items[i].Quantity++
		return
	}
	item.Quantity = 1
	c.items = append(c.items, item)
}

// Remove deletes the entry; absent ids are ignored.
func (c *Cart) Remove(id string) {
	i := c.indexOf(id)
	if i < 0 {
		return
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
}

// SetQuantity replaces the quantity of an entry. q < 1 is ignored and does
// not remove the entry; removal only happens through Remove.
func (c *Cart) SetQuantity(id string, q int) {
	if q < 1 {
		return
	}
	if i := c.indexOf(id); i >= 0 {
		c.items[i].Quantity = q
	}
}

func (c *Cart) Clear() {
	c.items = nil
}

// Items returns a copy of the entries in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Get(id string) (Item, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.items[i], true
	}
	return Item{}, false
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// TotalItemCount is the sum of all quantities.
func (c *Cart) TotalItemCount() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

func (c *Cart) Lines() []pricing.Line {
	lines := make([]pricing.Line, len(c.items))
	for i, it := range c.items {
		lines[i] = pricing.Line{UnitPrice: it.UnitPrice, Quantity: it.Quantity}
	}
	return lines
}

func (c *Cart) Subtotal() decimal.Decimal {
	return pricing.Subtotal(c.Lines())
}

func (c *Cart) Totals(calc pricing.Calculator) pricing.Totals {
	return calc.Compute(c.Lines())
}
