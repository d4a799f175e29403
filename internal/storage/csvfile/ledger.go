package csvfile

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/maritestore/pos/internal/domain/ledger"
)

var _ ledger.Repository = (*LedgerRepository)(nil)

// LedgerRepository implements ledger.Repository with one pipe-delimited file
// per reporting period: Name|CumulativeQuantity|CumulativeRevenue, no header.
type LedgerRepository struct {
	dir string
}

// NewLedgerRepository returns a LedgerRepository storing period files under
// the given directory.
func NewLedgerRepository(dir string) *LedgerRepository {
	return &LedgerRepository{dir: dir}
}

// Path returns the file holding the given period's snapshot.
func (r *LedgerRepository) Path(period ledger.Period) string {
	return filepath.Join(r.dir, fmt.Sprintf("Monthly_Sales_Report_%s.txt", period))
}

// Load reads the period's cumulative entries. A missing file yields an empty
// table; malformed lines are skipped with a logged warning.
func (r *LedgerRepository) Load(ctx context.Context, period ledger.Period) (ledger.Entries, error) {
	lg := zctx.From(ctx)
	entries := make(ledger.Entries)

	f, err := os.Open(r.Path(period))
	if err != nil {
		if os.IsNotExist(err) {
			return entries, nil
		}
		return nil, errors.Wrap(err, "open ledger file")
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		entry, decodeErr := decodeEntry(lineNo, line)
		if decodeErr != nil {
			lg.Warn("Skipping malformed ledger record",
				zap.String("period", string(period)),
				zap.Int("line", decodeErr.Line),
				zap.String("record", decodeErr.Record),
				zap.String("reason", decodeErr.Reason),
			)
			continue
		}
		entries[entry.Name] = entry
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read ledger file")
	}
	return entries, nil
}

// Save rewrites the whole period snapshot, entries sorted by name.
func (r *LedgerRepository) Save(_ context.Context, period ledger.Period, entries ledger.Entries) error {
	var b strings.Builder
	for _, name := range entries.Names() {
		e := entries[name]
		fmt.Fprintf(&b, "%s|%d|%s\n", e.Name, e.Quantity, e.Revenue.String())
	}
	if err := os.WriteFile(r.Path(period), []byte(b.String()), 0o644); err != nil {
		return errors.Wrap(err, "write ledger file")
	}
	return nil
}

func decodeEntry(line int, raw string) (ledger.Entry, *MalformedRecordError) {
	fail := func(reason string) (ledger.Entry, *MalformedRecordError) {
		return ledger.Entry{}, &MalformedRecordError{Line: line, Record: raw, Reason: reason}
	}

	parts := strings.Split(raw, "|")
	if len(parts) != 3 {
		return fail(fmt.Sprintf("expected 3 fields, got %d", len(parts)))
	}

	name := strings.TrimSpace(parts[0])
	if name == "" {
		return fail("name must not be empty")
	}

	qty, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || qty < 0 {
		return fail("cumulative quantity is not a non-negative integer")
	}

	revenue, err := decimal.NewFromString(strings.TrimSpace(parts[2]))
	if err != nil {
		return fail("cumulative revenue is not a decimal")
	}
	if revenue.IsNegative() {
		return fail("cumulative revenue is negative")
	}

	return ledger.Entry{Name: name, Quantity: qty, Revenue: revenue}, nil
}
