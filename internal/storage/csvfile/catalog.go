// Package csvfile persists the catalog and the monthly sales ledger as flat
// delimited files, the single durable form of the system's state.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/maritestore/pos/internal/domain/catalog"
)

// CatalogHeader is the header row of the inventory CSV file.
var CatalogHeader = []string{"ID", "Name", "Category", "Quantity", "Price"}

// MalformedRecordError describes one persisted record that failed schema
// validation. Malformed records are skipped with a warning, never fatal.
type MalformedRecordError struct {
	Line   int
	Record string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record at line %d (%s): %q", e.Line, e.Reason, e.Record)
}

// LoadReport summarizes one load pass: how many records decoded cleanly and
// which were skipped.
type LoadReport struct {
	Loaded  int
	Skipped []*MalformedRecordError
}

var _ catalog.Repository = (*CatalogRepository)(nil)

// CatalogRepository implements catalog.Repository backed by a CSV file with
// an ID,Name,Category,Quantity,Price header row.
type CatalogRepository struct {
	path string
}

// NewCatalogRepository returns a CatalogRepository reading and rewriting the
// given file path.
func NewCatalogRepository(path string) *CatalogRepository {
	return &CatalogRepository{path: path}
}

// Load reads all items from the inventory file. A missing file yields an
// empty catalog; malformed rows are skipped with a logged warning.
func (r *CatalogRepository) Load(ctx context.Context) ([]catalog.Item, error) {
	items, _, err := r.LoadWithReport(ctx)
	return items, err
}

// LoadWithReport is Load plus the per-record skip report.
func (r *CatalogRepository) LoadWithReport(ctx context.Context) ([]catalog.Item, *LoadReport, error) {
	lg := zctx.From(ctx)
	report := &LoadReport{}

	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			lg.Info("No inventory file found, starting with an empty catalog", zap.String("path", r.path))
			return nil, report, nil
		}
		return nil, nil, errors.Wrap(err, "open inventory file")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, errors.Wrap(err, "read inventory file")
	}

	var items []catalog.Item
	for i, record := range records {
		if i == 0 && isCatalogHeader(record) {
			continue
		}
		item, decodeErr := DecodeItem(i+1, record)
		if decodeErr != nil {
			report.Skipped = append(report.Skipped, decodeErr)
			lg.Warn("Skipping malformed inventory record",
				zap.Int("line", decodeErr.Line),
				zap.String("record", decodeErr.Record),
				zap.String("reason", decodeErr.Reason),
			)
			continue
		}
		items = append(items, item)
		report.Loaded++
	}

	if len(report.Skipped) > 0 {
		lg.Warn("Inventory loaded with skipped records",
			zap.Int("loaded", report.Loaded),
			zap.Int("skipped", len(report.Skipped)),
		)
	}
	return items, report, nil
}

// Save rewrites the whole inventory file, header row included.
func (r *CatalogRepository) Save(_ context.Context, items []catalog.Item) error {
	f, err := os.Create(r.path)
	if err != nil {
		return errors.Wrap(err, "create inventory file")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(CatalogHeader); err != nil {
		return errors.Wrap(err, "write header")
	}
	for _, it := range items {
		record := []string{it.ID, it.Name, it.Category, strconv.Itoa(it.Quantity), it.Price.String()}
		if err := w.Write(record); err != nil {
			return errors.Wrapf(err, "write item %s", it.ID)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrap(err, "flush inventory file")
	}
	return nil
}

// DecodeItem validates one CSV record against the catalog schema. The line
// number is carried only for diagnostics.
func DecodeItem(line int, record []string) (catalog.Item, *MalformedRecordError) {
	raw := strings.Join(record, ",")
	fail := func(reason string) (catalog.Item, *MalformedRecordError) {
		return catalog.Item{}, &MalformedRecordError{Line: line, Record: raw, Reason: reason}
	}

	if len(record) != len(CatalogHeader) {
		return fail(fmt.Sprintf("expected %d fields, got %d", len(CatalogHeader), len(record)))
	}

	id := strings.TrimSpace(record[0])
	name := strings.TrimSpace(record[1])
	category := strings.TrimSpace(record[2])
	if id == "" || name == "" || category == "" {
		return fail("ID, name and category must not be empty")
	}

	qty, err := strconv.Atoi(strings.TrimSpace(record[3]))
	if err != nil {
		return fail("quantity is not an integer")
	}
	if qty < 0 {
		return fail("quantity is negative")
	}

	price, err := decimal.NewFromString(strings.TrimSpace(record[4]))
	if err != nil {
		return fail("price is not a decimal")
	}
	if price.IsNegative() {
		return fail("price is negative")
	}

	return catalog.Item{
		ID:       id,
		Name:     name,
		Category: category,
		Quantity: qty,
		Price:    price,
	}, nil
}

func isCatalogHeader(record []string) bool {
	return len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), CatalogHeader[0])
}
