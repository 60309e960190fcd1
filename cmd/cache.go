package cmd

import (
	"fmt"

	"github.com/datakit/wefarm/internal/contract"
	"github.com/datakit/wefarm/internal/iocache"
	"github.com/datakit/wefarm/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheStore is the observation store opened for cache subcommands.
var cacheStore contract.ObservationStore

// cacheSetup loads the minimal configuration needed for cache operations.
// Cache subcommands skip the full shared setup since they touch no data files.
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get cache-related config values
	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	connStr := viper.GetString("cache-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	store, err := iocache.NewObservationStore(backend, connStr)
	if err != nil {
		return fmt.Errorf("failed to open observation cache: %w", err)
	}
	cacheStore = store

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr

	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd focused on weather cache management.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the weather observation cache",
	Long: `Manage the cache of downloaded weather observations.

Wefarm stores every fetched POWER API reading locally so repeated runs
over the same window never hit the network.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None

Subcommands:
  status - Show cache statistics and connection info
  clear  - Remove all cached observations

Examples:
  # Check cache status
  wefarm cache status

  # Clear the cache before refetching a corrected window
  wefarm cache clear`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached weather observations",
	Long: `Delete every cached observation from the configured backend.

Use this when:
- The upstream POWER data was corrected for a fetched window
- The cache may be stale or corrupted
- Measuring fetch performance without cache

Examples:
  # Clear the SQLite cache (default)
  wefarm cache clear

  # Clear a MySQL cache (set connection string via env variable)
  WEFARM_CACHE_BACKEND=mysql WEFARM_CACHE_DB_CONNECT="..." wefarm cache clear`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		defer func() { _ = cacheStore.Close() }()
		if err := cacheStore.Clear(); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show detailed information about the weather observation cache.

Displays:
- Backend type and connection status
- Total number of cached observations and distinct countries
- Last and oldest entry timestamps
- Cache database size

Examples:
  # Check cache status
  wefarm cache status`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		defer func() { _ = cacheStore.Close() }()
		status, err := cacheStore.Status()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(status)
	},
}
