package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maritestore/pos/internal/domain/catalog"
)

func tempCatalogRepo(t *testing.T) (*CatalogRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inventory.csv")
	return NewCatalogRepository(path), path
}

func TestCatalog_RoundTrip(t *testing.T) {
	repo, _ := tempCatalogRepo(t)
	ctx := context.Background()

	items := []catalog.Item{
		{ID: "P1", Name: "Rice 1kg", Category: "Grocery", Quantity: 10, Price: decimal.RequireFromString("55.00")},
		{ID: "P2", Name: "Milk 1L", Category: "Dairy", Quantity: 5, Price: decimal.RequireFromString("80.5")},
	}
	require.NoError(t, repo.Save(ctx, items))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	for i := range items {
		assert.Equal(t, items[i].ID, loaded[i].ID)
		assert.Equal(t, items[i].Name, loaded[i].Name)
		assert.Equal(t, items[i].Category, loaded[i].Category)
		assert.Equal(t, items[i].Quantity, loaded[i].Quantity)
		assert.True(t, items[i].Price.Equal(loaded[i].Price))
	}
}

func TestCatalog_LoadMissingFile(t *testing.T) {
	repo, _ := tempCatalogRepo(t)

	items, report, err := repo.LoadWithReport(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, report.Loaded)
	assert.Empty(t, report.Skipped)
}

func TestCatalog_SkipsMalformedRecords(t *testing.T) {
	repo, path := tempCatalogRepo(t)

	content := "ID,Name,Category,Quantity,Price\n" +
		"P1,Rice 1kg,Grocery,10,55.00\n" +
		"P2,Milk 1L,Dairy,not-a-number,80.00\n" +
		"P3,Cheddar,Dairy,3\n" +
		"P4,Eggs,Dairy,-2,6.00\n" +
		"P5,Bread,Bakery,4,-1.00\n" +
		"P6,Sugar 1kg,Grocery,7,42.00\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	items, report, err := repo.LoadWithReport(context.Background())
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "P1", items[0].ID)
	assert.Equal(t, "P6", items[1].ID)
	assert.Equal(t, 2, report.Loaded)
	assert.Len(t, report.Skipped, 4)
}

func TestCatalog_SaveWritesHeader(t *testing.T) {
	repo, path := tempCatalogRepo(t)

	require.NoError(t, repo.Save(context.Background(), nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ID,Name,Category,Quantity,Price\n", string(data))
}

func TestDecodeItem(t *testing.T) {
	item, decodeErr := DecodeItem(2, []string{"P1", "Rice 1kg", "Grocery", "10", "55.00"})
	require.Nil(t, decodeErr)
	assert.Equal(t, "P1", item.ID)
	assert.Equal(t, 10, item.Quantity)
	assert.True(t, decimal.RequireFromString("55.00").Equal(item.Price))

	cases := []struct {
		name   string
		record []string
	}{
		{"too few fields", []string{"P1", "Rice", "Grocery", "10"}},
		{"bad quantity", []string{"P1", "Rice", "Grocery", "x", "55.00"}},
		{"negative quantity", []string{"P1", "Rice", "Grocery", "-1", "55.00"}},
		{"bad price", []string{"P1", "Rice", "Grocery", "10", "x"}},
		{"negative price", []string{"P1", "Rice", "Grocery", "10", "-5"}},
		{"blank id", []string{"", "Rice", "Grocery", "10", "55.00"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, decodeErr := DecodeItem(1, tc.record)
			require.NotNil(t, decodeErr)
			assert.Equal(t, 1, decodeErr.Line)
		})
	}
}
