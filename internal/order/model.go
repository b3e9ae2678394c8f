package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/pickles-ecom/internal/cart"
)

var ErrTotalMismatch = errors.New("order total does not match its line items")

// Order is written once at checkout and never modified.
type Order struct {
	ID        string          `json:"order_id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Address   string          `json:"address"`
	CreatedAt time.Time       `json:"order_time"`
	Items     []cart.Line     `json:"items"`
	Total     decimal.Decimal `json:"total"`
}

// Recompute sums the line items with the cart formula.
func (o *Order) Recompute() decimal.Decimal { return cart.Sum(o.Items) }

// Verify checks the stored total against the line items.
func (o *Order) Verify() error {
	if sum := o.Recompute(); !sum.Equal(o.Total) {
		return fmt.Errorf("%w: total=%s items=%s", ErrTotalMismatch, o.Total, sum)
	}
	return nil
}

// Summary is the plain-text body of the confirmation mail.
func (o *Order) Summary() string {
	return fmt.Sprintf("Order ID: %s\nName: %s\nTotal: ₹%s\n\nThank you for your order!",
		o.ID, o.Name, o.Total.StringFixed(2))
}
