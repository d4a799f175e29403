package cli

import (
	"regexp"
	"time"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"

	"github.com/maritestore/pos/internal/app"
	"github.com/maritestore/pos/internal/domain/ledger"
	"github.com/maritestore/pos/internal/report"
)

var periodPattern = regexp.MustCompile(`^\d{4}_\d{2}$`)

func newReportCmd(opts *options) *cobra.Command {
	var periodLabel string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Regenerate the monthly sales report workbook for a period",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := app.New(ctx, opts.cfg)
			if err != nil {
				return err
			}

			period := ledger.PeriodOf(time.Now())
			if periodLabel != "" {
				if !periodPattern.MatchString(periodLabel) {
					return errors.Errorf("invalid period %q: expected YYYY_MM", periodLabel)
				}
				period = ledger.Period(periodLabel)
			}

			entries, err := a.Ledgers.Load(ctx, period)
			if err != nil {
				return errors.Wrap(err, "load ledger")
			}
			if len(entries) == 0 {
				cmd.Printf("No sales recorded for period %s.\n", period)
				return nil
			}

			path := report.WorkbookPath(opts.cfg.ReportsDir, period)
			if err := report.WriteMonthly(path, period, entries); err != nil {
				return err
			}
			cmd.Printf("Report written: %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&periodLabel, "period", "", "reporting period label (YYYY_MM, defaults to the current month)")
	return cmd
}
