// Package app wires configuration, storage and domain services into one
// ready-to-use application handle for the CLI surface.
package app

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/maritestore/pos/internal/domain/catalog"
	"github.com/maritestore/pos/internal/domain/checkout"
	"github.com/maritestore/pos/internal/domain/ledger"
	"github.com/maritestore/pos/internal/storage/csvfile"
	"github.com/maritestore/pos/internal/storage/journal"
)

// App bundles the loaded catalog and the services one interactive session
// works with. It is the single wiring point for the application.
type App struct {
	Config   *Config
	Catalog  *catalog.Catalog
	Catalogs catalog.Repository
	Ledgers  ledger.Repository
	Checkout *checkout.Service
	Journal  *journal.Writer
}

// New bootstraps the on-disk layout, loads the catalog and constructs the
// domain services.
func New(ctx context.Context, cfg *Config) (*App, error) {
	lg := zctx.From(ctx)

	if err := Bootstrap(ctx, cfg); err != nil {
		return nil, errors.Wrap(err, "bootstrap")
	}

	catalogs := csvfile.NewCatalogRepository(cfg.InventoryFile)
	items, report, err := catalogs.LoadWithReport(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load catalog")
	}
	lg.Info("Catalog loaded",
		zap.Int("items", report.Loaded),
		zap.Int("skipped", len(report.Skipped)),
	)

	ledgers := csvfile.NewLedgerRepository(cfg.ReportsDir)

	return &App{
		Config:   cfg,
		Catalog:  catalog.New(items),
		Catalogs: catalogs,
		Ledgers:  ledgers,
		Checkout: checkout.NewService(catalogs, ledgers),
		Journal:  journal.NewWriter(cfg.JournalFile),
	}, nil
}
