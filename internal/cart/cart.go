// Package cart implements the per-session shopping cart.
//
// A Cart holds at most one Line per product. Adding a product that is
// already present increments that line's quantity; the unit price of the
// first addition is kept.
package cart

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/pickles-ecom/internal/apperr"
)

type Line struct {
	Product   string          `json:"product"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// Subtotal is UnitPrice × Quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Cart struct {
	Lines []Line `json:"lines"`
}

// Add merges quantity of product into the cart.
func (c *Cart) Add(product string, unitPrice decimal.Decimal, quantity int) error {
	product = strings.TrimSpace(product)
	if product == "" {
		return apperr.Invalid("product", "is required")
	}
	if unitPrice.IsNegative() {
		return apperr.Invalid("price", "must not be negative")
	}
	if quantity < 1 {
		return apperr.Invalid("quantity", "must be at least 1")
	}

	for i := range c.Lines {
		if c.Lines[i].Product == product {
			c.Lines[i].Quantity += quantity
			return nil
		}
	}
	c.Lines = append(c.Lines, Line{Product: product, UnitPrice: unitPrice, Quantity: quantity})
	return nil
}

// Total returns Σ(unit_price × quantity).
func (c *Cart) Total() decimal.Decimal {
	return Sum(c.Lines)
}

func (c *Cart) Clear() { c.Lines = nil }

func (c *Cart) Empty() bool { return len(c.Lines) == 0 }

// Count is the number of units across all lines.
func (c *Cart) Count() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Snapshot returns a copy of the lines that later mutations of c do not affect.
func (c *Cart) Snapshot() []Line {
	return append([]Line(nil), c.Lines...)
}

// Sum is the total formula shared by carts and orders.
func Sum(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}
