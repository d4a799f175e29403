package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/maritestore/pos/internal/domain/cart"
	"github.com/maritestore/pos/internal/domain/catalog"
)

var tableHeader = []string{"ID", "Name", "Category", "Quantity", "Price"}

// renderItems prints catalog items as an aligned five-column table.
func renderItems(w io.Writer, items []catalog.Item) {
	rows := make([][]string, len(items))
	for i, it := range items {
		rows[i] = []string{it.ID, it.Name, it.Category, fmt.Sprintf("%d", it.Quantity), it.Price.StringFixed(2)}
	}
	renderTable(w, rows)
}

// renderLines prints cart lines in the same table layout as inventory.
func renderLines(w io.Writer, lines []cart.Line) {
	rows := make([][]string, len(lines))
	for i, ln := range lines {
		rows[i] = []string{ln.ItemID, ln.Name, ln.Category, fmt.Sprintf("%d", ln.Quantity), ln.UnitPrice.StringFixed(2)}
	}
	renderTable(w, rows)
}

func renderTable(w io.Writer, rows [][]string) {
	widths := []int{4, 10, 10, 8, 10}
	for i, h := range tableHeader {
		if len(h) > widths[i] {
			widths[i] = len(h)
		}
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	total := 1
	for _, width := range widths {
		total += width + 3
	}
	rule := strings.Repeat("-", total)

	fmt.Fprintln(w, rule)
	printRow(w, tableHeader, widths)
	fmt.Fprintln(w, rule)
	for _, row := range rows {
		printRow(w, row, widths)
	}
	fmt.Fprintln(w, rule)
}

func printRow(w io.Writer, row []string, widths []int) {
	// Quantity and price columns are right-aligned.
	fmt.Fprintf(w, "| %-*s | %-*s | %-*s | %*s | %*s |\n",
		widths[0], row[0], widths[1], row[1], widths[2], row[2], widths[3], row[3], widths[4], row[4])
}
