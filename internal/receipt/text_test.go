package receipt

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/maritestore/pos/internal/domain/cart"
	"github.com/maritestore/pos/internal/domain/checkout"
)

func TestRenderText(t *testing.T) {
	tx := &checkout.Transaction{
		ID: "tx-1",
		Lines: []cart.Line{
			{ItemID: "P1", Name: "Rice 1kg", Category: "Grocery", UnitPrice: decimal.RequireFromString("55.00"), Quantity: 3},
			{ItemID: "P2", Name: "Milk 1L", Category: "Dairy", UnitPrice: decimal.RequireFromString("80.00"), Quantity: 1},
		},
		Subtotal:  decimal.RequireFromString("245.00"),
		Tendered:  decimal.RequireFromString("300.00"),
		Change:    decimal.RequireFromString("55.00"),
		CreatedAt: time.Date(2026, time.September, 1, 10, 30, 0, 0, time.UTC),
	}

	var b strings.Builder
	RenderText(&b, tx, "Marites Store", "PHP")
	out := b.String()

	assert.Contains(t, out, "MARITES STORE RECEIPT")
	assert.Contains(t, out, "Date: 2026-09-01 Time: 10:30:00")
	assert.Contains(t, out, "Receipt No: tx-1")
	assert.Contains(t, out, "Rice 1kg")
	assert.Contains(t, out, "165.00")
	assert.Contains(t, out, "245.00 PHP")
	assert.Contains(t, out, "300.00 PHP")
	assert.Contains(t, out, "55.00 PHP")
	assert.Contains(t, out, "Thank you for shopping with us!")
}
