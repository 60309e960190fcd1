package cmd

import (
	"github.com/datakit/wefarm/core"
	"github.com/datakit/wefarm/internal/contract"
	"github.com/datakit/wefarm/internal/outwriter"
	"github.com/spf13/cobra"
)

// leadersCmd ranks the community members who answer the most questions.
var leadersCmd = &cobra.Command{
	Use:   "leaders [data-dir]",
	Short: "Rank the community members who answer the most questions.",
	Long: `Identify the responders who carry the peer-to-peer network.

Ranks users by the number of questions they have answered and reports
each leader's response style: average response length, favourite topics,
countries served and how many distinct askers they have helped. Also
summarizes repeat askers on the question side.

Examples:
  # Top 50 responders (default)
  wefarm leaders

  # A shorter leaderboard with a stricter repeat-asker cutoff
  wefarm leaders --leader-limit 10 --repeat-min 10

  # Export the board for a report
  wefarm leaders --output csv --output-file leaders.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteLeaders(cfg, outwriter.NewOutWriter()); err != nil {
			contract.LogFatal("Cannot run leaders analysis", err)
		}
	},
}
