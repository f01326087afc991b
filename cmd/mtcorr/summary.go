package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mtcorr/mtcorr/internal/series"
)

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary <table>",
		Short: "Print per-column statistics of a stats table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := series.ReadFile(args[0])
			if err != nil {
				return err
			}
			stats := series.Summarize(table)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "contains %d timeseries, each with %d elements\n",
				table.Columns(), table.Rows())
			fmt.Fprintln(out, "index label units mean stddev")
			for i, label := range table.Labels {
				fmt.Fprintf(out, "%d %s %s %.6g %.6g\n",
					i, label, table.Units[i], stats[i].Mean(), stats[i].Stddev())
			}
			return nil
		},
	}
}
