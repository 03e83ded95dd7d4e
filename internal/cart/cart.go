package cart

import (
	"github.com/casamaria/storefront-backend/internal/catalog"
	"github.com/casamaria/storefront-backend/pkg/money"
	"github.com/shopspring/decimal"
)

// Line is one cart entry. Item is copied by value when added, so later
// catalog edits do not change a cart that already holds the item.
type Line struct {
	Item     catalog.MenuItem `json:"item"`
	Quantity int              `json:"quantity"`
}

// Cart holds ordered lines, at most one per menu item. It is not safe for
// concurrent use; the Manager serializes access.
type Cart struct {
	lines []Line
}

// Add appends the item with quantity 1, or bumps the existing line.
func (c *Cart) Add(item catalog.MenuItem) {
	for i := range c.lines {
		if c.lines[i].Item.ID == item.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, Line{Item: item, Quantity: 1})
}

// SetQuantity sets the line quantity, clamped to a minimum of 1. Adjusting
// an item that is not in the cart is a no-op.
func (c *Cart) SetQuantity(itemID string, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.lines {
		if c.lines[i].Item.ID == itemID {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

// Remove drops the line for the item, keeping the order of the rest.
func (c *Cart) Remove(itemID string) {
	for i := range c.lines {
		if c.lines[i].Item.ID == itemID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// ItemCount returns the sum of line quantities.
func (c *Cart) ItemCount() int {
	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// Subtotal is the gross total, discounts ignored.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(money.GrossTotal(line.Item.Price, line.Quantity))
	}
	return total
}

// Total is the payable total with per-line discounts applied.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(money.LineTotal(line.Item.Price, line.Item.DiscountPercent, line.Quantity))
	}
	return total
}

// Savings is Subtotal minus Total. Zero when no line carries a discount.
func (c *Cart) Savings() decimal.Decimal {
	return c.Subtotal().Sub(c.Total())
}
