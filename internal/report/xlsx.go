// Package report renders a period's cumulative sales ledger as a
// spreadsheet workbook.
package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"

	"github.com/maritestore/pos/internal/domain/ledger"
)

const sheet = "Sheet1"

// WriteMonthly writes the monthly sales report workbook for the given
// period from its ledger entries.
func WriteMonthly(path string, period ledger.Period, entries ledger.Entries) error {
	f := excelize.NewFile()
	defer f.Close()

	set := func(cell string, value any) {
		_ = f.SetCellValue(sheet, cell, value)
	}

	set("A1", "Monthly Sales Report")
	set("A2", "Period: "+strings.ReplaceAll(string(period), "_", "-"))

	set("A4", "Item Name")
	set("B4", "Quantity Sold")
	set("C4", "Revenue")

	row := 5
	for _, name := range entries.Names() {
		e := entries[name]
		set(fmt.Sprintf("A%d", row), e.Name)
		set(fmt.Sprintf("B%d", row), e.Quantity)
		set(fmt.Sprintf("C%d", row), e.Revenue.StringFixed(2))
		row++
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Wrap(err, "save report workbook")
	}
	return nil
}

// WorkbookPath returns the report workbook path next to the period's ledger
// file in the given directory.
func WorkbookPath(dir string, period ledger.Period) string {
	return filepath.Join(dir, fmt.Sprintf("Monthly_Sales_Report_%s.xlsx", period))
}
