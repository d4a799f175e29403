// Package receipt renders committed transactions as human-readable
// artifacts: a console receipt and a spreadsheet document.
package receipt

import (
	"fmt"
	"io"
	"strings"

	"github.com/maritestore/pos/internal/domain/checkout"
)

// RenderText writes a console receipt for the committed transaction.
func RenderText(w io.Writer, tx *checkout.Transaction, storeName, currency string) {
	banner := strings.Repeat("=", 35)
	rule := strings.Repeat("-", 35)

	fmt.Fprintln(w, banner)
	fmt.Fprintf(w, "%s\n", centered(strings.ToUpper(storeName)+" RECEIPT", 35))
	fmt.Fprintln(w, banner)
	fmt.Fprintf(w, "Date: %s Time: %s\n", tx.CreatedAt.Format("2006-01-02"), tx.CreatedAt.Format("15:04:05"))
	fmt.Fprintf(w, "Receipt No: %s\n", tx.ID)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-15s %-5s %-8s %8s\n", "Item Name", "Qty", "Unit", "Total")
	fmt.Fprintln(w, rule)
	for _, ln := range tx.Lines {
		fmt.Fprintf(w, "%-15s %-5d %-8s %8s\n",
			ln.Name, ln.Quantity, ln.UnitPrice.StringFixed(2), ln.Total().StringFixed(2))
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Subtotal: %20s %s\n", tx.Subtotal.StringFixed(2), currency)
	fmt.Fprintf(w, "Cash:     %20s %s\n", tx.Tendered.StringFixed(2), currency)
	fmt.Fprintf(w, "Change:   %20s %s\n", tx.Change.StringFixed(2), currency)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "Thank you for shopping with us!")
	fmt.Fprintln(w, banner)
}

func centered(s string, width int) string {
	if len(s) >= width {
		return s
	}
	pad := (width - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}
