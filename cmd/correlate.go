package cmd

import (
	"github.com/datakit/wefarm/core"
	"github.com/datakit/wefarm/internal/contract"
	"github.com/datakit/wefarm/internal/outwriter"
	"github.com/spf13/cobra"
)

// correlateCmd runs the full weather-to-questions analysis.
var correlateCmd = &cobra.Command{
	Use:   "correlate [data-dir]",
	Short: "Correlate question volume with weather observations.",
	Long: `Link daily question volume to weather and report what moves it.

Joins the daily question aggregates with the fetched weather series and
computes, in one pass:
- Zero-lag Pearson correlations with p-values for every pair
- A lag sweep that finds how many days weather leads question volume
- Extreme weather events (heavy rain, drought, heat waves, cold spells)
- Question volume before, during and after each event class, with a
  two-sample t-test on the during-versus-before shift

Requires 'wefarm fetch' and 'wefarm preprocess' to have run first.

Examples:
  # Full analysis with the default 28-day lag sweep
  wefarm correlate

  # Wider impact windows and a shorter sweep
  wefarm correlate --max-lag 14 --impact-window 10

  # Machine-readable report for downstream tooling
  wefarm correlate --output json --output-file report.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCorrelate(cfg, outwriter.NewOutWriter()); err != nil {
			contract.LogFatal("Cannot run correlation analysis", err)
		}
	},
}
