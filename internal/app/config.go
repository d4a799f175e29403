package app

import (
	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete application configuration, loadable from
// environment variables (POS_ prefix) or a YAML config file.
type Config struct {
	InventoryFile   string `default:"data/inventory.csv" usage:"Catalog CSV file path" flag:"inventory-file"`
	ReportsDir      string `default:"reports" usage:"Directory for monthly sales ledgers and report workbooks" flag:"reports-dir"`
	ReceiptsDir     string `default:"receipts" usage:"Directory for receipt documents" flag:"receipts-dir"`
	JournalFile     string `default:"data/transactions.jsonl" usage:"Committed transaction journal path" flag:"journal-file"`
	StoreName       string `default:"Marites Store" usage:"Store name printed on receipts" flag:"store-name"`
	Currency        string `default:"PHP" usage:"Currency label shown next to money amounts"`
	ManagerPassword string `default:"admin" usage:"Password gating manager mode (POS_MANAGER_PASSWORD)" flag:"manager-password"`
}

// LoadConfig loads configuration from environment variables and the given
// YAML config file, if it exists. Flags are owned by the CLI layer.
func LoadConfig(file string) (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "POS",
		SkipFlags: true,
		Files:     []string{file},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	return &cfg, nil
}
