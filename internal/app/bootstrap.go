package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/maritestore/pos/internal/storage/csvfile"
)

// Bootstrap creates the data, reports and receipts directories on first run
// and seeds the inventory file with its header row when absent.
func Bootstrap(ctx context.Context, cfg *Config) error {
	lg := zctx.From(ctx)

	dirs := []string{
		filepath.Dir(cfg.InventoryFile),
		cfg.ReportsDir,
		cfg.ReceiptsDir,
		filepath.Dir(cfg.JournalFile),
	}
	for _, dir := range dirs {
		if dir == "" || dir == "." {
			continue
		}
		if _, err := os.Stat(dir); err == nil {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create directory %s", dir)
		}
		lg.Info("Directory created", zap.String("dir", dir))
	}

	if _, err := os.Stat(cfg.InventoryFile); os.IsNotExist(err) {
		header := strings.Join(csvfile.CatalogHeader, ",") + "\n"
		if err := os.WriteFile(cfg.InventoryFile, []byte(header), 0o644); err != nil {
			return errors.Wrap(err, "seed inventory file")
		}
		lg.Info("Inventory file created with header", zap.String("path", cfg.InventoryFile))
	}
	return nil
}
