package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/leap/balance-engine/engine"
)

var reportCumulative bool

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show expected vs. actual hours per day",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&reportCumulative, "cumulative", false, "Show running totals instead of daily values")
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx, cancel := contextWithTimeout()
	defer cancel()

	in, err := gather(ctx)
	if err != nil {
		return err
	}

	series, err := engine.DailySeries(in.rng.Start, in.rng.End, in.schedule, in.ledger, in.entries)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	if reportCumulative {
		fmt.Fprintln(w, "DATE\tCUM EXPECTED\tCUM ACTUAL")
		for _, p := range engine.CumulativeSeries(series) {
			fmt.Fprintf(w, "%s\t%s\t%s\n", p.Date, p.Expected, p.Actual)
		}
		return nil
	}

	fmt.Fprintln(w, "DATE\tEXPECTED\tACTUAL\tDELTA")
	for _, s := range series {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.Date, s.Expected, s.Actual, s.Actual.Sub(s.Expected))
	}
	return nil
}
