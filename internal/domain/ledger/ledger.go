package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Period identifies one calendar-month reporting window, labelled YYYY_MM.
type Period string

// PeriodOf returns the reporting period containing t.
func PeriodOf(t time.Time) Period {
	return Period(t.Format("2006_01"))
}

// Entry holds the cumulative sales totals for one item name within a period.
type Entry struct {
	Name     string
	Quantity int
	Revenue  decimal.Decimal
}

// Entries is the ledger table for one period, keyed by item name.
type Entries map[string]Entry

// Apply accumulates a sale into the table, inserting the entry on the first
// sale of an item within the period. Apply is additive, not idempotent: the
// caller must apply each committed sale exactly once.
func (e Entries) Apply(name string, qty int, revenue decimal.Decimal) {
	cur, ok := e[name]
	if !ok {
		cur = Entry{Name: name, Revenue: decimal.Zero}
	}
	cur.Quantity += qty
	cur.Revenue = cur.Revenue.Add(revenue)
	e[name] = cur
}

// Names returns the entry names sorted alphabetically, for deterministic
// persistence and rendering.
func (e Entries) Names() []string {
	out := make([]string, 0, len(e))
	for name := range e {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Repository defines durable storage for per-period ledger tables. Load
// returns an empty table when no snapshot exists for the period; Save
// rewrites the whole period snapshot.
type Repository interface {
	Load(ctx context.Context, period Period) (Entries, error)
	Save(ctx context.Context, period Period, entries Entries) error
}
