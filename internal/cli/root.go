// Package cli implements the interactive terminal surface. Every command is
// a thin caller into the domain services wired by internal/app.
package cli

import (
	"github.com/go-faster/sdk/zctx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/maritestore/pos/internal/app"
)

type options struct {
	cfgFile string
	verbose bool
	cfg     *app.Config
}

// New builds the root command with the staff, manager and report
// subcommands attached.
func New() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "pos",
		Short:         "Retail point-of-sale and inventory tracker",
		Long: `pos is a small retail point-of-sale and inventory tracker.

Staff browse catalog items by category, assemble a cart and check out;
managers create, edit and delete catalog entries. State persists as flat
delimited records on disk, and every checkout accumulates into a monthly
sales ledger.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			lg, err := newLogger(opts.verbose)
			if err != nil {
				return err
			}
			cfg, err := app.LoadConfig(opts.cfgFile)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			cmd.SetContext(zctx.Base(cmd.Context(), lg))
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "config.yaml", "path to the configuration file")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newStaffCmd(opts),
		newManagerCmd(opts),
		newReportCmd(opts),
	)
	return root
}

// newLogger builds a console logger on stderr. The default level is Warn so
// log output does not interleave with the interactive menus.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
