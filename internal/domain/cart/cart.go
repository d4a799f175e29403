package cart

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/maritestore/pos/internal/domain/catalog"
)

// InvalidQuantityError indicates a requested quantity is non-positive or
// exceeds the item's current on-hand stock.
type InvalidQuantityError struct {
	ItemID    string
	Requested int
	Available int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %d for item %s (available: %d)", e.Requested, e.ItemID, e.Available)
}

// Line is a cart entry: a snapshot of the item taken at add time plus the
// requested quantity. The unit price is not re-read from the catalog after
// the snapshot.
type Line struct {
	ItemID    string
	Name      string
	Category  string
	UnitPrice decimal.Decimal
	Quantity  int
}

// Total returns quantity × unit price for the line.
func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the ordered set of lines for one staff session. It is cleared on
// commit or explicit clear and never touches the catalog itself: stock is
// checked at add time, not reserved.
type Cart struct {
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add validates the requested quantity against the item's current stock and
// records a line. Adding the same item again merges into the existing line
// without re-snapshotting the price.
func (c *Cart) Add(item catalog.Item, qty int) error {
	if qty <= 0 || qty > item.Quantity {
		return &InvalidQuantityError{ItemID: item.ID, Requested: qty, Available: item.Quantity}
	}
	for i := range c.lines {
		if c.lines[i].ItemID == item.ID {
			c.lines[i].Quantity += qty
			return nil
		}
	}
	c.lines = append(c.lines, Line{
		ItemID:    item.ID,
		Name:      item.Name,
		Category:  item.Category,
		UnitPrice: item.Price,
		Quantity:  qty,
	})
	return nil
}

// Aggregate returns one line per distinct item ID with quantities summed and
// the first-seen price, in first-add order. It is a pure function of the
// cart state and can be called any number of times.
func (c *Cart) Aggregate() []Line {
	index := make(map[string]int, len(c.lines))
	out := make([]Line, 0, len(c.lines))
	for _, ln := range c.lines {
		if i, ok := index[ln.ItemID]; ok {
			out[i].Quantity += ln.Quantity
			continue
		}
		index[ln.ItemID] = len(out)
		out = append(out, ln)
	}
	return out
}

// Subtotal returns the sum of quantity × price over the aggregated lines.
func (c *Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, ln := range c.Aggregate() {
		subtotal = subtotal.Add(ln.Total())
	}
	return subtotal
}

// Lines returns a copy of the raw cart lines in add order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Clear empties the cart. Idempotent.
func (c *Cart) Clear() {
	c.lines = c.lines[:0]
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Len reports the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.lines)
}
