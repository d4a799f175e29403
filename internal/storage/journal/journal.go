// Package journal appends committed transactions to a JSON Lines audit
// file. The journal is an emitter artifact: it never participates in
// settlement and a write failure must not block a sale.
package journal

import (
	"context"
	"os"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/maritestore/pos/internal/domain/checkout"
)

// Writer appends one JSON object per committed transaction.
type Writer struct {
	path string
}

// NewWriter returns a Writer appending to the given file path.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Append encodes the committed transaction and appends it as one line.
func (w *Writer) Append(_ context.Context, tx *checkout.Transaction) error {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(tx.ID) })
		e.Field("created_at", func(e *jx.Encoder) { e.Str(tx.CreatedAt.Format(time.RFC3339)) })
		e.Field("lines", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, ln := range tx.Lines {
					e.Obj(func(e *jx.Encoder) {
						e.Field("item_id", func(e *jx.Encoder) { e.Str(ln.ItemID) })
						e.Field("name", func(e *jx.Encoder) { e.Str(ln.Name) })
						e.Field("quantity", func(e *jx.Encoder) { e.Int(ln.Quantity) })
						e.Field("unit_price", func(e *jx.Encoder) { e.Str(ln.UnitPrice.String()) })
						e.Field("total", func(e *jx.Encoder) { e.Str(ln.Total().String()) })
					})
				}
			})
		})
		e.Field("subtotal", func(e *jx.Encoder) { e.Str(tx.Subtotal.String()) })
		e.Field("tendered", func(e *jx.Encoder) { e.Str(tx.Tendered.String()) })
		e.Field("change", func(e *jx.Encoder) { e.Str(tx.Change.String()) })
	})

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(err, "open journal file")
	}
	defer f.Close()

	if _, err := f.Write(append(e.Bytes(), '\n')); err != nil {
		return errors.Wrap(err, "append journal record")
	}
	return nil
}
