package catalog

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Sentinel errors for catalog mutations.
var (
	ErrNotFound    = errors.New("item not found")
	ErrDuplicateID = errors.New("item ID already exists")
	ErrInvalidItem = errors.New("invalid item")
)

// Item represents one catalog entry available for sale.
type Item struct {
	ID       string
	Name     string
	Category string
	Quantity int
	Price    decimal.Decimal
}

// Repository defines persistence operations for the catalog file.
type Repository interface {
	Load(ctx context.Context) ([]Item, error)
	Save(ctx context.Context, items []Item) error
}

// Update is a partial item update. Nil fields keep the current value.
type Update struct {
	Name     *string
	Category *string
	Quantity *int
	Price    *decimal.Decimal
}

// Catalog is the in-memory working set of items for one session. It is the
// single owner of item records for the process lifetime of a run; all
// mutation goes through its methods so quantities can never go negative.
type Catalog struct {
	items []Item
}

// New builds a Catalog from previously loaded items, preserving order.
func New(items []Item) *Catalog {
	c := &Catalog{items: make([]Item, len(items))}
	copy(c.items, items)
	return c
}

// Items returns a copy of all items in insertion order.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len reports the number of items.
func (c *Catalog) Len() int { return len(c.items) }

// FindByID returns the item with the given identifier.
func (c *Catalog) FindByID(id string) (Item, bool) {
	for _, it := range c.items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// FindByIDOrName resolves an item by exact ID or exact display name,
// case-insensitively. This is the lookup behind the add-to-cart prompt.
func (c *Catalog) FindByIDOrName(q string) (Item, bool) {
	for _, it := range c.items {
		if strings.EqualFold(it.ID, q) || strings.EqualFold(it.Name, q) {
			return it, true
		}
	}
	return Item{}, false
}

// Search returns items whose ID matches exactly or whose name contains the
// query, case-insensitively.
func (c *Catalog) Search(q string) []Item {
	folded := strings.ToLower(q)
	var out []Item
	for _, it := range c.items {
		if strings.EqualFold(it.ID, q) || strings.Contains(strings.ToLower(it.Name), folded) {
			out = append(out, it)
		}
	}
	return out
}

// Categories returns the distinct category labels in first-seen order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]struct{}, len(c.items))
	var out []string
	for _, it := range c.items {
		key := strings.ToLower(it.Category)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, it.Category)
	}
	return out
}

// FilterByCategory returns the items belonging to the given category,
// case-insensitively.
func (c *Catalog) FilterByCategory(category string) []Item {
	var out []Item
	for _, it := range c.items {
		if strings.EqualFold(it.Category, category) {
			out = append(out, it)
		}
	}
	return out
}

// Add appends a new item after validating it. The identifier must be unique
// across the catalog.
func (c *Catalog) Add(item Item) error {
	if strings.TrimSpace(item.ID) == "" {
		return errors.Wrap(ErrInvalidItem, "ID must not be empty")
	}
	if strings.TrimSpace(item.Name) == "" {
		return errors.Wrap(ErrInvalidItem, "name must not be empty")
	}
	if strings.TrimSpace(item.Category) == "" {
		return errors.Wrap(ErrInvalidItem, "category must not be empty")
	}
	if item.Quantity < 0 {
		return errors.Wrap(ErrInvalidItem, "quantity must not be negative")
	}
	if item.Price.IsNegative() {
		return errors.Wrap(ErrInvalidItem, "price must not be negative")
	}
	if _, ok := c.FindByID(item.ID); ok {
		return ErrDuplicateID
	}
	c.items = append(c.items, item)
	return nil
}

// Update applies a partial update to the item with the given identifier.
func (c *Catalog) Update(id string, upd Update) error {
	for i := range c.items {
		if c.items[i].ID != id {
			continue
		}
		if upd.Name != nil && strings.TrimSpace(*upd.Name) != "" {
			c.items[i].Name = *upd.Name
		}
		if upd.Category != nil && strings.TrimSpace(*upd.Category) != "" {
			c.items[i].Category = *upd.Category
		}
		if upd.Quantity != nil {
			if *upd.Quantity < 0 {
				return errors.Wrap(ErrInvalidItem, "quantity must not be negative")
			}
			c.items[i].Quantity = *upd.Quantity
		}
		if upd.Price != nil {
			if upd.Price.IsNegative() {
				return errors.Wrap(ErrInvalidItem, "price must not be negative")
			}
			c.items[i].Price = *upd.Price
		}
		return nil
	}
	return ErrNotFound
}

// Delete removes the item with the given identifier.
func (c *Catalog) Delete(id string) error {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Decrement reduces an item's on-hand quantity. It refuses to drive the
// quantity below zero.
func (c *Catalog) Decrement(id string, qty int) error {
	for i := range c.items {
		if c.items[i].ID != id {
			continue
		}
		if qty > c.items[i].Quantity {
			return errors.Wrapf(ErrInvalidItem, "decrement %d exceeds stock %d", qty, c.items[i].Quantity)
		}
		c.items[i].Quantity -= qty
		return nil
	}
	return ErrNotFound
}

// Increment raises an item's on-hand quantity. Used by the transaction
// engine to revert decrements when a persist step fails.
func (c *Catalog) Increment(id string, qty int) error {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity += qty
			return nil
		}
	}
	return ErrNotFound
}
