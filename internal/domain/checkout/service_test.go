package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maritestore/pos/internal/domain/cart"
	"github.com/maritestore/pos/internal/domain/catalog"
	"github.com/maritestore/pos/internal/domain/ledger"
)

// --- Mock implementations ---

type mockCatalogRepo struct {
	saved   [][]catalog.Item
	saveErr error
}

func (m *mockCatalogRepo) Load(_ context.Context) ([]catalog.Item, error) {
	return nil, nil
}

func (m *mockCatalogRepo) Save(_ context.Context, items []catalog.Item) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	snapshot := make([]catalog.Item, len(items))
	copy(snapshot, items)
	m.saved = append(m.saved, snapshot)
	return nil
}

type mockLedgerRepo struct {
	tables  map[ledger.Period]ledger.Entries
	loadErr error
	saveErr error
	saves   int
}

func newMockLedgerRepo() *mockLedgerRepo {
	return &mockLedgerRepo{tables: make(map[ledger.Period]ledger.Entries)}
}

func (m *mockLedgerRepo) Load(_ context.Context, period ledger.Period) (ledger.Entries, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make(ledger.Entries)
	for name, e := range m.tables[period] {
		out[name] = e
	}
	return out, nil
}

func (m *mockLedgerRepo) Save(_ context.Context, period ledger.Period, entries ledger.Entries) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	snapshot := make(ledger.Entries)
	for name, e := range entries {
		snapshot[name] = e
	}
	m.tables[period] = snapshot
	m.saves++
	return nil
}

// --- Helpers ---

var testNow = time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)

func newTestService(catalogs *mockCatalogRepo, ledgers *mockLedgerRepo) *Service {
	svc := NewService(catalogs, ledgers)
	svc.now = func() time.Time { return testNow }
	svc.newID = func() string { return "tx-1" }
	return svc
}

func riceCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Item{
		{ID: "P1", Name: "Rice 1kg", Category: "Grocery", Quantity: 10, Price: decimal.RequireFromString("55.00")},
		{ID: "P2", Name: "Milk 1L", Category: "Dairy", Quantity: 5, Price: decimal.RequireFromString("80.00")},
	})
}

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// --- Tests ---

func TestCheckout_EmptyCart(t *testing.T) {
	svc := newTestService(&mockCatalogRepo{}, newMockLedgerRepo())

	_, err := svc.Checkout(context.Background(), riceCatalog(), cart.New(), money("100"))
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckout_InsufficientTender(t *testing.T) {
	catalogs := &mockCatalogRepo{}
	ledgers := newMockLedgerRepo()
	svc := newTestService(catalogs, ledgers)
	cat := riceCatalog()

	crt := cart.New()
	rice, _ := cat.FindByID("P1")
	require.NoError(t, crt.Add(rice, 2)) // subtotal 110.00

	_, err := svc.Checkout(context.Background(), cat, crt, money("50.00"))

	var tender *InsufficientTenderError
	require.ErrorAs(t, err, &tender)
	assert.True(t, money("110.00").Equal(tender.Subtotal))
	assert.True(t, money("50.00").Equal(tender.Tendered))

	// Nothing mutated, cart retained for retry.
	item, _ := cat.FindByID("P1")
	assert.Equal(t, 10, item.Quantity)
	assert.Empty(t, catalogs.saved)
	assert.Zero(t, ledgers.saves)
	assert.False(t, crt.IsEmpty())
}

func TestCheckout_ItemMissing(t *testing.T) {
	catalogs := &mockCatalogRepo{}
	ledgers := newMockLedgerRepo()
	svc := newTestService(catalogs, ledgers)
	cat := riceCatalog()

	crt := cart.New()
	rice, _ := cat.FindByID("P1")
	milk, _ := cat.FindByID("P2")
	require.NoError(t, crt.Add(rice, 2))
	require.NoError(t, crt.Add(milk, 1))

	// Milk is deleted between add and checkout.
	require.NoError(t, cat.Delete("P2"))

	_, err := svc.Checkout(context.Background(), cat, crt, money("500.00"))

	var missing *ItemMissingError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "P2", missing.ItemID)

	// All-or-nothing: the resolvable line is untouched too.
	item, _ := cat.FindByID("P1")
	assert.Equal(t, 10, item.Quantity)
	assert.Empty(t, catalogs.saved)
	assert.Zero(t, ledgers.saves)
	assert.False(t, crt.IsEmpty())
}

func TestCheckout_InsufficientStock(t *testing.T) {
	catalogs := &mockCatalogRepo{}
	ledgers := newMockLedgerRepo()
	svc := newTestService(catalogs, ledgers)
	cat := riceCatalog()

	// Each add is within the then-current stock, but the aggregated total
	// exceeds it.
	crt := cart.New()
	rice, _ := cat.FindByID("P1")
	require.NoError(t, crt.Add(rice, 6))
	require.NoError(t, crt.Add(rice, 6))

	_, err := svc.Checkout(context.Background(), cat, crt, money("1000.00"))

	var stock *InsufficientStockError
	require.ErrorAs(t, err, &stock)
	assert.Equal(t, "P1", stock.ItemID)
	assert.Equal(t, 12, stock.Requested)
	assert.Equal(t, 10, stock.Available)

	item, _ := cat.FindByID("P1")
	assert.Equal(t, 10, item.Quantity)
	assert.Empty(t, catalogs.saved)
	assert.Zero(t, ledgers.saves)
}

func TestCheckout_Commit(t *testing.T) {
	catalogs := &mockCatalogRepo{}
	ledgers := newMockLedgerRepo()
	svc := newTestService(catalogs, ledgers)
	cat := riceCatalog()

	crt := cart.New()
	rice, _ := cat.FindByID("P1")
	require.NoError(t, crt.Add(rice, 3))

	tx, err := svc.Checkout(context.Background(), cat, crt, money("200.00"))
	require.NoError(t, err)

	assert.Equal(t, "tx-1", tx.ID)
	assert.Equal(t, testNow, tx.CreatedAt)
	assert.True(t, money("165.00").Equal(tx.Subtotal))
	assert.True(t, money("200.00").Equal(tx.Tendered))
	assert.True(t, money("35.00").Equal(tx.Change))
	require.Len(t, tx.Lines, 1)
	assert.Equal(t, 3, tx.Lines[0].Quantity)

	// Catalog decremented and persisted exactly once.
	item, _ := cat.FindByID("P1")
	assert.Equal(t, 7, item.Quantity)
	require.Len(t, catalogs.saved, 1)

	// Other items untouched.
	milk, _ := cat.FindByID("P2")
	assert.Equal(t, 5, milk.Quantity)

	// Ledger merged for the period.
	entry := ledgers.tables[ledger.Period("2026_09")]["Rice 1kg"]
	assert.Equal(t, 3, entry.Quantity)
	assert.True(t, money("165.00").Equal(entry.Revenue))
	assert.Equal(t, 1, ledgers.saves)

	// Cart cleared on commit.
	assert.True(t, crt.IsEmpty())
}

func TestCheckout_SequentialSalesAccumulate(t *testing.T) {
	catalogs := &mockCatalogRepo{}
	ledgers := newMockLedgerRepo()
	svc := newTestService(catalogs, ledgers)
	cat := riceCatalog()

	for i := 0; i < 2; i++ {
		crt := cart.New()
		rice, _ := cat.FindByID("P1")
		require.NoError(t, crt.Add(rice, 2))
		_, err := svc.Checkout(context.Background(), cat, crt, money("110.00"))
		require.NoError(t, err)
	}

	entry := ledgers.tables[ledger.Period("2026_09")]["Rice 1kg"]
	assert.Equal(t, 4, entry.Quantity)
	assert.True(t, money("220.00").Equal(entry.Revenue))

	item, _ := cat.FindByID("P1")
	assert.Equal(t, 6, item.Quantity)
}

func TestCheckout_CatalogSaveFailureReverts(t *testing.T) {
	catalogs := &mockCatalogRepo{saveErr: errors.New("disk full")}
	ledgers := newMockLedgerRepo()
	svc := newTestService(catalogs, ledgers)
	cat := riceCatalog()

	crt := cart.New()
	rice, _ := cat.FindByID("P1")
	require.NoError(t, crt.Add(rice, 3))

	_, err := svc.Checkout(context.Background(), cat, crt, money("200.00"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "save catalog")

	// In-memory decrements rolled back, ledger untouched, cart retained.
	item, _ := cat.FindByID("P1")
	assert.Equal(t, 10, item.Quantity)
	assert.Zero(t, ledgers.saves)
	assert.False(t, crt.IsEmpty())
}

func TestCheckout_LedgerLoadFailure(t *testing.T) {
	catalogs := &mockCatalogRepo{}
	ledgers := newMockLedgerRepo()
	ledgers.loadErr = errors.New("corrupt ledger")
	svc := newTestService(catalogs, ledgers)
	cat := riceCatalog()

	crt := cart.New()
	rice, _ := cat.FindByID("P1")
	require.NoError(t, crt.Add(rice, 1))

	_, err := svc.Checkout(context.Background(), cat, crt, money("55.00"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "load ledger")
	assert.Zero(t, ledgers.saves)
}

func TestCheckout_ExactTender(t *testing.T) {
	catalogs := &mockCatalogRepo{}
	ledgers := newMockLedgerRepo()
	svc := newTestService(catalogs, ledgers)
	cat := riceCatalog()

	crt := cart.New()
	rice, _ := cat.FindByID("P1")
	require.NoError(t, crt.Add(rice, 1))

	tx, err := svc.Checkout(context.Background(), cat, crt, money("55.00"))
	require.NoError(t, err)
	assert.True(t, tx.Change.IsZero())
}
