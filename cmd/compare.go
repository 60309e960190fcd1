package cmd

import (
	"github.com/datakit/wefarm/core"
	"github.com/datakit/wefarm/internal/contract"
	"github.com/datakit/wefarm/internal/outwriter"
	"github.com/spf13/cobra"
)

// compareCmd compares two classification runs side by side.
var compareCmd = &cobra.Command{
	Use:   "compare [data-dir]",
	Short: "Compare two classification runs side by side.",
	Long: `Compare the summaries of two classification runs.

Reads two classify summary JSON files and prints a metric-by-metric
comparison: questions analyzed, processing time, throughput, cost and
the class distribution of each run. When --baseline is omitted the
summary from the last 'wefarm classify' run in <data-dir>/processed is
used.

Examples:
  # Compare the last run against an earlier snapshot
  wefarm compare --candidate runs/llm_summary.json

  # Compare two explicit snapshots
  wefarm compare --baseline runs/keyword.json --candidate runs/llm.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCompare(cfg, outwriter.NewOutWriter()); err != nil {
			contract.LogFatal("Cannot run strategy comparison", err)
		}
	},
}
