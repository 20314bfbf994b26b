package cart

import (
	"github.com/shopspring/decimal"

	"github.com/novamart/storefront-backend/internal/pricing"
)

// MinLineQuantity is the floor for a line quantity. Decrement never drops a
// line below it; removal is always an explicit action.
const MinLineQuantity = 1

// Line is one cart entry. Name, UnitPrice and ImageURL are display snapshots
// captured when the product was added; they are not re-synced against the
// catalog.
type Line struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
	ImageURL  string          `json:"image_url,omitempty"`
	Quantity  int             `json:"quantity"`
}

// Cart is an ordered sequence of lines with at most one line per product.
// It is a plain value: every operation mutates the receiver in place and the
// caller decides when to persist through a Store.
type Cart struct {
	lines  []Line
	maxQty int
}

// New returns an empty cart enforcing the given per-line quantity cap.
func New(maxQty int) *Cart {
	if maxQty < MinLineQuantity {
		maxQty = MinLineQuantity
	}
	return &Cart{maxQty: maxQty}
}

// FromLines builds a cart from raw lines, merging duplicate product ids
// (quantities summed) and clamping each quantity into [1, maxQty]. Lines
// with a non-positive product id are dropped.
func FromLines(lines []Line, maxQty int) *Cart {
	c := New(maxQty)
	for _, line := range lines {
		if line.ProductID <= 0 {
			continue
		}
		c.Add(line)
	}
	return c
}

// Add merges the line into the cart: an existing line for the same product
// has its quantity incremented, otherwise the line is appended. The
// resulting quantity is clamped to the cap.
func (c *Cart) Add(line Line) {
	if line.Quantity < MinLineQuantity {
		line.Quantity = MinLineQuantity
	}
	for i := range c.lines {
		if c.lines[i].ProductID == line.ProductID {
			c.lines[i].Quantity = c.clamp(c.lines[i].Quantity + line.Quantity)
			return
		}
	}
	line.Quantity = c.clamp(line.Quantity)
	c.lines = append(c.lines, line)
}

// SetQuantity sets the line's quantity, clamped into [1, maxQty]. Unknown
// product ids are ignored.
func (c *Cart) SetQuantity(productID int64, qty int) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = c.clamp(qty)
			return
		}
	}
}

// Increment bumps the line's quantity by one, capped.
func (c *Cart) Increment(productID int64) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = c.clamp(c.lines[i].Quantity + 1)
			return
		}
	}
}

// Decrement lowers the line's quantity by one but never below one. Dropping
// the line entirely requires an explicit Remove.
func (c *Cart) Decrement(productID int64) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = c.clamp(c.lines[i].Quantity - 1)
			return
		}
	}
}

// Remove deletes the line for the product, preserving the order of the rest.
func (c *Cart) Remove(productID int64) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart. Called after a successful order commit.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the cart's lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// TotalQuantity sums quantities across lines (the cart badge number).
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

// PricingLines converts the cart into the shape the pricing engine consumes.
func (c *Cart) PricingLines() []pricing.Line {
	out := make([]pricing.Line, 0, len(c.lines))
	for _, line := range c.lines {
		out = append(out, pricing.Line{UnitPrice: line.UnitPrice, Quantity: line.Quantity})
	}
	return out
}

func (c *Cart) clamp(qty int) int {
	if qty < MinLineQuantity {
		return MinLineQuantity
	}
	if qty > c.maxQty {
		return c.maxQty
	}
	return qty
}
