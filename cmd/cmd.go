// Package cmd defines the command-line interface for wefarm.
package cmd

import (
	"github.com/datakit/wefarm/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(preprocessCmd)
	rootCmd.AddCommand(correlateCmd)
	rootCmd.AddCommand(leadersCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("output", "text", "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("cache-backend", "sqlite", "Weather cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("start", contract.DefaultFetchStart, "First day of the analysis window (YYYYMMDD or YYYY-MM-DD)")
	rootCmd.PersistentFlags().String("end", contract.DefaultFetchEnd, "Last day of the analysis window (YYYYMMDD or YYYY-MM-DD)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of fetchCmd to Viper
	fetchCmd.Flags().String("delay", contract.DefaultFetchDelay.String(), "Pause between POWER API requests (e.g. 2s, 500ms)")
	if err := viper.BindPFlags(fetchCmd.Flags()); err != nil {
		contract.LogFatal("Error binding fetch flags", err)
	}

	// Bind all flags of preprocessCmd to Viper
	preprocessCmd.Flags().Int("row-limit", 0, "Maximum question rows to load (0 = all)")
	if err := viper.BindPFlags(preprocessCmd.Flags()); err != nil {
		contract.LogFatal("Error binding preprocess flags", err)
	}

	// Bind all flags of correlateCmd to Viper
	correlateCmd.Flags().Int("max-lag", contract.DefaultMaxLag, "Largest lag in days for the lag sweep")
	correlateCmd.Flags().Int("impact-window", contract.DefaultImpactWindow, "Days before and after each event for impact sampling")
	correlateCmd.Flags().Float64("rain-threshold", contract.DefaultRainThreshold, "Daily precipitation (mm) that counts as heavy rain")
	correlateCmd.Flags().Float64("drought-sum", contract.DefaultDroughtSum, "Rolling precipitation sum (mm) below which a drought is flagged")
	correlateCmd.Flags().Int("drought-window", contract.DefaultDroughtWindow, "Rolling window length in days for drought detection")
	correlateCmd.Flags().Float64("heat-threshold", contract.DefaultHeatThreshold, "Daily max temperature (degC) that counts toward a heat wave")
	correlateCmd.Flags().Float64("cold-threshold", contract.DefaultColdThreshold, "Daily min temperature (degC) that counts toward a cold spell")
	correlateCmd.Flags().Int("min-run", contract.DefaultMinRunLength, "Consecutive qualifying days before a run event is emitted")
	if err := viper.BindPFlags(correlateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding correlate flags", err)
	}

	// Bind all flags of leadersCmd to Viper
	leadersCmd.Flags().IntP("leader-limit", "l", contract.DefaultLeaderLimit, "Number of top responders to rank")
	leadersCmd.Flags().Int("repeat-min", contract.DefaultRepeatMin, "Questions a user must exceed to count as a repeat asker")
	if err := viper.BindPFlags(leadersCmd.Flags()); err != nil {
		contract.LogFatal("Error binding leaders flags", err)
	}

	// Bind all flags of classifyCmd to Viper
	classifyCmd.Flags().Int("sample-limit", contract.DefaultSampleLimit, "Maximum questions to classify (0 = all)")
	if err := viper.BindPFlags(classifyCmd.Flags()); err != nil {
		contract.LogFatal("Error binding classify flags", err)
	}

	// Bind all flags of compareCmd to Viper
	compareCmd.Flags().String("baseline", "", "Path to the baseline classify summary JSON")
	compareCmd.Flags().String("candidate", "", "Path to the candidate classify summary JSON")
	if err := viper.BindPFlags(compareCmd.Flags()); err != nil {
		contract.LogFatal("Error binding compare flags", err)
	}
}
