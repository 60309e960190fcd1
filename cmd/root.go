package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/datakit/wefarm/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "wefarm",
	Short:              "Analyze WeFarm question traffic against local weather.",
	Long:               `Wefarm links a farmer question corpus with daily weather observations to show what drives demand for agricultural advice.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Set config file name and paths
		viper.SetConfigName(".wefarm") // Name of config file (without extension)
		viper.SetConfigType("yaml")    // We'll use YAML format
		viper.AddConfigPath(".")       // Look in the current directory
		viper.AddConfigPath("$HOME")   // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("WEFARM")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("output", "text")
	viper.SetDefault("output-file", "")
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("color", "yes")
	viper.SetDefault("cache-backend", "sqlite")
	viper.SetDefault("cache-db-connect", "")
	viper.SetDefault("max-lag", contract.DefaultMaxLag)
	viper.SetDefault("impact-window", contract.DefaultImpactWindow)
	viper.SetDefault("rain-threshold", contract.DefaultRainThreshold)
	viper.SetDefault("drought-sum", contract.DefaultDroughtSum)
	viper.SetDefault("drought-window", contract.DefaultDroughtWindow)
	viper.SetDefault("heat-threshold", contract.DefaultHeatThreshold)
	viper.SetDefault("cold-threshold", contract.DefaultColdThreshold)
	viper.SetDefault("min-run", contract.DefaultMinRunLength)
	viper.SetDefault("start", contract.DefaultFetchStart)
	viper.SetDefault("end", contract.DefaultFetchEnd)
	viper.SetDefault("delay", contract.DefaultFetchDelay.String())
	viper.SetDefault("leader-limit", contract.DefaultLeaderLimit)
	viper.SetDefault("repeat-min", contract.DefaultRepeatMin)
	viper.SetDefault("row-limit", 0)
	viper.SetDefault("sample-limit", contract.DefaultSampleLimit)
	viper.SetDefault("baseline", "")
	viper.SetDefault("candidate", "")
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ context.Context, _ *cobra.Command, args []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	if len(args) == 1 {
		input.DataDirStr = args[0]
	} else {
		input.DataDirStr = "data"
	}

	// 4. Run all validation and complex parsing.
	// This function now populates the global 'cfg' from 'input'.
	return contract.ProcessAndValidate(cfg, input)
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	// Handle config file
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".wefarm")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	// Load config file if present
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
