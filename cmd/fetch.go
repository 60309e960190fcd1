package cmd

import (
	"github.com/datakit/wefarm/core"
	"github.com/datakit/wefarm/internal/contract"
	"github.com/datakit/wefarm/internal/iocache"
	"github.com/spf13/cobra"
)

// fetchCmd downloads daily weather observations for all study countries.
var fetchCmd = &cobra.Command{
	Use:   "fetch [data-dir]",
	Short: "Download daily weather data from the NASA POWER API.",
	Long: `Download daily weather observations for every study country.

Pulls temperature, precipitation, humidity and wind readings from the
NASA POWER service for a representative agricultural location in each
country, then writes one CSV per country under <data-dir>/raw.

Observations are cached locally, so repeated runs over the same window
skip the API entirely. Requests are paced to stay friendly to the
service.

Examples:
  # Fetch the default 2015-2022 window into ./data
  wefarm fetch

  # Fetch a shorter window with a longer pause between requests
  wefarm fetch --start 2019-01-01 --end 2020-12-31 --delay 5s

  # Keep the cache in MySQL instead of the default SQLite file
  wefarm fetch --cache-backend mysql --cache-db-connect "user:pass@tcp(host:3306)/wefarm"`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := iocache.NewObservationStore(cfg.CacheBackend, cfg.CacheDBConnect)
		if err != nil {
			contract.LogFatal("Cannot open observation cache", err)
		}
		defer func() { _ = store.Close() }()
		if err := core.ExecuteFetch(rootCtx, cfg, store); err != nil {
			contract.LogFatal("Cannot run weather fetch", err)
		}
	},
}
