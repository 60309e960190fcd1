package cmd

import (
	"github.com/datakit/wefarm/core"
	"github.com/datakit/wefarm/internal/contract"
	"github.com/datakit/wefarm/internal/outwriter"
	"github.com/spf13/cobra"
)

// classifyCmd labels questions as crop-specific or general advice.
var classifyCmd = &cobra.Command{
	Use:   "classify [data-dir]",
	Short: "Classify questions as crop-specific or general advice.",
	Long: `Label each question by keyword matching against crop and
general-farming vocabularies.

Every question becomes crop_specific, general, mixed or unknown, and the
summary reports the class distribution, the most mentioned crops and
crosstabs by country and language. A classified sample CSV is written
under <data-dir>/processed for manual review, and the summary JSON feeds
the compare command.

Examples:
  # Classify the default 10k sample
  wefarm classify

  # Classify every question in the export
  wefarm classify --sample-limit 0

  # Emit a Parquet copy of the classified sample
  wefarm classify --output parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteClassify(cfg, outwriter.NewOutWriter()); err != nil {
			contract.LogFatal("Cannot run classification", err)
		}
	},
}
