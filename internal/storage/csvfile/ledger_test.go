package csvfile

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maritestore/pos/internal/domain/ledger"
)

const testPeriod = ledger.Period("2026_09")

func TestLedger_RoundTrip(t *testing.T) {
	repo := NewLedgerRepository(t.TempDir())
	ctx := context.Background()

	entries := make(ledger.Entries)
	entries.Apply("Rice 1kg", 3, decimal.RequireFromString("165.00"))
	entries.Apply("Milk 1L", 2, decimal.RequireFromString("160.00"))
	require.NoError(t, repo.Save(ctx, testPeriod, entries))

	loaded, err := repo.Load(ctx, testPeriod)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	rice := loaded["Rice 1kg"]
	assert.Equal(t, 3, rice.Quantity)
	assert.True(t, decimal.RequireFromString("165.00").Equal(rice.Revenue))
}

func TestLedger_LoadMissingPeriod(t *testing.T) {
	repo := NewLedgerRepository(t.TempDir())

	entries, err := repo.Load(context.Background(), testPeriod)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLedger_SaveRewritesSnapshot(t *testing.T) {
	repo := NewLedgerRepository(t.TempDir())
	ctx := context.Background()

	first := make(ledger.Entries)
	first.Apply("Rice 1kg", 2, decimal.RequireFromString("110.00"))
	require.NoError(t, repo.Save(ctx, testPeriod, first))

	// Second snapshot replaces the first entirely.
	second := make(ledger.Entries)
	second.Apply("Rice 1kg", 4, decimal.RequireFromString("220.00"))
	require.NoError(t, repo.Save(ctx, testPeriod, second))

	loaded, err := repo.Load(ctx, testPeriod)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, 4, loaded["Rice 1kg"].Quantity)
}

func TestLedger_SkipsMalformedLines(t *testing.T) {
	repo := NewLedgerRepository(t.TempDir())

	content := "Rice 1kg|3|165.00\n" +
		"broken line without pipes\n" +
		"Milk 1L|x|80.00\n" +
		"Eggs|-1|6.00\n" +
		"Cheddar|2|240.00\n"
	require.NoError(t, os.WriteFile(repo.Path(testPeriod), []byte(content), 0o644))

	entries, err := repo.Load(context.Background(), testPeriod)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Contains(t, entries, "Rice 1kg")
	assert.Contains(t, entries, "Cheddar")
}

func TestLedger_FileFormat(t *testing.T) {
	repo := NewLedgerRepository(t.TempDir())
	ctx := context.Background()

	entries := make(ledger.Entries)
	entries.Apply("Rice 1kg", 3, decimal.RequireFromString("165.00"))
	entries.Apply("Milk 1L", 2, decimal.RequireFromString("160.00"))
	require.NoError(t, repo.Save(ctx, testPeriod, entries))

	data, err := os.ReadFile(repo.Path(testPeriod))
	require.NoError(t, err)

	// Entries are sorted by name, one Name|Qty|Revenue record per line.
	want := fmt.Sprintf("Milk 1L|2|%s\nRice 1kg|3|%s\n",
		entries["Milk 1L"].Revenue.String(), entries["Rice 1kg"].Revenue.String())
	assert.Equal(t, want, string(data))
}
