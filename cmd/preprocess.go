package cmd

import (
	"github.com/datakit/wefarm/core"
	"github.com/datakit/wefarm/internal/contract"
	"github.com/spf13/cobra"
)

// preprocessCmd cleans the question export and builds period aggregates.
var preprocessCmd = &cobra.Command{
	Use:   "preprocess [data-dir]",
	Short: "Clean the question export and build daily aggregates.",
	Long: `Clean the raw question export and aggregate it by period.

Reads <data-dir>/raw/wefarm_dataset.csv, removes duplicate rows and rows
with no content or timestamp, tags each question with matching topics,
and writes daily, weekly and monthly aggregate CSVs plus a metadata JSON
under <data-dir>/processed.

The daily aggregate is the input for the correlate stage.

Examples:
  # Preprocess the full export
  wefarm preprocess

  # Work on a sample while iterating
  wefarm preprocess --row-limit 100000

  # Also emit a Parquet copy of the daily aggregate
  wefarm preprocess --output parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePreprocess(cfg); err != nil {
			contract.LogFatal("Cannot run preprocessing", err)
		}
	},
}
