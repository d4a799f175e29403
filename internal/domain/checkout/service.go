package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/maritestore/pos/internal/domain/cart"
	"github.com/maritestore/pos/internal/domain/catalog"
	"github.com/maritestore/pos/internal/domain/ledger"
)

// ErrEmptyCart is returned when checkout is attempted with no cart lines.
var ErrEmptyCart = errors.New("cart is empty")

// InsufficientTenderError indicates the tendered cash does not cover the
// subtotal. Nothing is mutated; the caller may re-prompt and retry.
type InsufficientTenderError struct {
	Subtotal decimal.Decimal
	Tendered decimal.Decimal
}

func (e *InsufficientTenderError) Error() string {
	return fmt.Sprintf("tendered %s is less than subtotal %s", e.Tendered.StringFixed(2), e.Subtotal.StringFixed(2))
}

// ItemMissingError indicates a cart line references an item that no longer
// exists in the catalog. The whole checkout aborts with zero mutation.
type ItemMissingError struct {
	ItemID string
}

func (e *ItemMissingError) Error() string {
	return fmt.Sprintf("item %s no longer exists in the catalog", e.ItemID)
}

// InsufficientStockError indicates an aggregated quantity exceeds the
// current stock, which can happen when the cart's add-time snapshot has gone
// stale. The whole checkout aborts with zero mutation.
type InsufficientStockError struct {
	ItemID    string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for item %s: requested %d, available %d", e.ItemID, e.Requested, e.Available)
}

// Transaction is the committed result of one checkout: the aggregated line
// set and the settled amounts. It exists transiently for receipt rendering
// and journaling.
type Transaction struct {
	ID        string
	Lines     []cart.Line
	Subtotal  decimal.Decimal
	Tendered  decimal.Decimal
	Change    decimal.Decimal
	CreatedAt time.Time
}

// Service is the transaction engine. It settles a cart against the catalog,
// persists the updated catalog, and merges the sale into the current
// period's ledger — all-or-nothing at the granularity of one Checkout call.
type Service struct {
	catalogs catalog.Repository
	ledgers  ledger.Repository
	now      func() time.Time
	newID    func() string
}

// NewService creates the transaction engine with its persistence
// collaborators injected.
func NewService(catalogs catalog.Repository, ledgers ledger.Repository) *Service {
	return &Service{
		catalogs: catalogs,
		ledgers:  ledgers,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

// Checkout settles the cart against the catalog with the given tendered
// amount. On success the catalog decrement and the ledger merge are durable,
// the cart is cleared, and the committed transaction is returned. On a
// validation or consistency failure the catalog and ledger are left exactly
// as before the call, and the cart is retained so the caller can retry or
// abandon. Storage failures surface wrapped; a failed catalog save also
// reverts the in-memory decrements.
//
// The ledger merge runs exactly once per committed transaction. Merging is
// not idempotent, so no other component may replay a transaction into it.
func (s *Service) Checkout(ctx context.Context, cat *catalog.Catalog, crt *cart.Cart, tendered decimal.Decimal) (*Transaction, error) {
	if crt.IsEmpty() {
		return nil, ErrEmptyCart
	}

	lines := crt.Aggregate()
	subtotal := decimal.Zero
	for _, ln := range lines {
		subtotal = subtotal.Add(ln.Total())
	}

	if tendered.LessThan(subtotal) {
		return nil, &InsufficientTenderError{Subtotal: subtotal, Tendered: tendered}
	}

	// Resolve and verify every line before touching anything, so a failure
	// partway through can never leave a partial decrement behind.
	for _, ln := range lines {
		item, ok := cat.FindByID(ln.ItemID)
		if !ok {
			return nil, &ItemMissingError{ItemID: ln.ItemID}
		}
		if ln.Quantity > item.Quantity {
			return nil, &InsufficientStockError{
				ItemID:    ln.ItemID,
				Requested: ln.Quantity,
				Available: item.Quantity,
			}
		}
	}

	for _, ln := range lines {
		if err := cat.Decrement(ln.ItemID, ln.Quantity); err != nil {
			// Unreachable after the verification pass in a single-threaded
			// run, but restore anything already applied before surfacing.
			s.revert(cat, lines, ln.ItemID)
			return nil, errors.Wrapf(err, "decrement item %s", ln.ItemID)
		}
	}

	if err := s.catalogs.Save(ctx, cat.Items()); err != nil {
		s.revert(cat, lines, "")
		return nil, errors.Wrap(err, "save catalog")
	}

	if err := s.mergeLedger(ctx, lines); err != nil {
		return nil, err
	}

	crt.Clear()

	return &Transaction{
		ID:        s.newID(),
		Lines:     lines,
		Subtotal:  subtotal,
		Tendered:  tendered,
		Change:    tendered.Sub(subtotal),
		CreatedAt: s.now(),
	}, nil
}

// mergeLedger loads the current period's table, accumulates each aggregated
// line keyed by item name, and rewrites the snapshot.
func (s *Service) mergeLedger(ctx context.Context, lines []cart.Line) error {
	period := ledger.PeriodOf(s.now())

	entries, err := s.ledgers.Load(ctx, period)
	if err != nil {
		return errors.Wrapf(err, "load ledger for period %s", period)
	}
	for _, ln := range lines {
		entries.Apply(ln.Name, ln.Quantity, ln.Total())
	}
	if err := s.ledgers.Save(ctx, period, entries); err != nil {
		return errors.Wrapf(err, "save ledger for period %s", period)
	}
	return nil
}

// revert restores in-memory decrements up to (not including) stopID, or all
// of them when stopID is empty.
func (s *Service) revert(cat *catalog.Catalog, lines []cart.Line, stopID string) {
	for _, ln := range lines {
		if ln.ItemID == stopID {
			return
		}
		_ = cat.Increment(ln.ItemID, ln.Quantity)
	}
}
