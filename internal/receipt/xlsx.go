package receipt

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"

	"github.com/maritestore/pos/internal/domain/checkout"
)

const sheet = "Sheet1"

// WriteWorkbook writes the committed transaction as a spreadsheet receipt
// document at the given path.
func WriteWorkbook(path string, tx *checkout.Transaction, storeName, currency string) error {
	f := excelize.NewFile()
	defer f.Close()

	set := func(cell string, value any) {
		_ = f.SetCellValue(sheet, cell, value)
	}

	set("A1", storeName+" Receipt")
	set("A2", fmt.Sprintf("Date: %s Time: %s", tx.CreatedAt.Format("2006-01-02"), tx.CreatedAt.Format("15:04:05")))
	set("A3", "Receipt No: "+tx.ID)

	set("A5", "Item Name")
	set("B5", "Qty")
	set("C5", "Unit Price")
	set("D5", "Total")

	row := 6
	for _, ln := range tx.Lines {
		set(fmt.Sprintf("A%d", row), ln.Name)
		set(fmt.Sprintf("B%d", row), ln.Quantity)
		set(fmt.Sprintf("C%d", row), ln.UnitPrice.StringFixed(2))
		set(fmt.Sprintf("D%d", row), ln.Total().StringFixed(2))
		row++
	}

	row++
	set(fmt.Sprintf("C%d", row), "Subtotal:")
	set(fmt.Sprintf("D%d", row), tx.Subtotal.StringFixed(2)+" "+currency)
	row++
	set(fmt.Sprintf("C%d", row), "Cash:")
	set(fmt.Sprintf("D%d", row), tx.Tendered.StringFixed(2)+" "+currency)
	row++
	set(fmt.Sprintf("C%d", row), "Change:")
	set(fmt.Sprintf("D%d", row), tx.Change.StringFixed(2)+" "+currency)
	row += 2
	set(fmt.Sprintf("A%d", row), "Thank you for shopping with us!")

	if err := f.SaveAs(path); err != nil {
		return errors.Wrap(err, "save receipt workbook")
	}
	return nil
}
