package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/datakit/wefarm/schema"
)

// Config holds the runtime configuration for all analyses.
// This struct remains the "final, validated" config.
type Config struct {
	DataDir    string
	OutputFile string
	Output     schema.OutputMode
	Precision  int
	UseColors  bool

	// Correlation engine
	MaxLag       int
	ImpactWindow int

	// Event detector thresholds
	RainThreshold float64
	DroughtSum    float64
	DroughtWindow int
	HeatThreshold float64
	ColdThreshold float64
	MinRunLength  int

	// Fetch window and pacing
	FetchStart time.Time
	FetchEnd   time.Time
	FetchDelay time.Duration

	// Leaders / classify
	LeaderLimit int
	RepeatMin   int
	RowLimit    int // 0 means no row cap
	SampleLimit int

	// Compare inputs
	BaselineSummary  string
	CandidateSummary string

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	DataDirStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	OutputFile     string `mapstructure:"output-file"`
	Output         string `mapstructure:"output"`
	Precision      int    `mapstructure:"precision"`
	Color          string `mapstructure:"color"`
	CacheBackend   string `mapstructure:"cache-backend"`
	CacheDBConnect string `mapstructure:"cache-db-connect"`

	// --- Fields from correlateCmd.Flags() ---
	MaxLag        int     `mapstructure:"max-lag"`
	ImpactWindow  int     `mapstructure:"impact-window"`
	RainThreshold float64 `mapstructure:"rain-threshold"`
	DroughtSum    float64 `mapstructure:"drought-sum"`
	DroughtWindow int     `mapstructure:"drought-window"`
	HeatThreshold float64 `mapstructure:"heat-threshold"`
	ColdThreshold float64 `mapstructure:"cold-threshold"`
	MinRunLength  int     `mapstructure:"min-run"`

	// --- Fields from fetchCmd.Flags() ---
	Start string `mapstructure:"start"`
	End   string `mapstructure:"end"`
	Delay string `mapstructure:"delay"`

	// --- Fields from leadersCmd / classifyCmd ---
	LeaderLimit int `mapstructure:"leader-limit"`
	RepeatMin   int `mapstructure:"repeat-min"`
	RowLimit    int `mapstructure:"row-limit"`
	SampleLimit int `mapstructure:"sample-limit"`

	// --- Fields from compareCmd.Flags() ---
	Baseline  string `mapstructure:"baseline"`
	Candidate string `mapstructure:"candidate"`
}

// Clone returns a copy of the config for per-request overrides.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// RawDir returns the directory holding downloaded inputs.
func (c *Config) RawDir() string { return filepath.Join(c.DataDir, "raw") }

// ProcessedDir returns the directory holding derived outputs.
func (c *Config) ProcessedDir() string { return filepath.Join(c.DataDir, "processed") }

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processThresholds(cfg, input); err != nil {
		return err
	}
	if err := processFetchWindow(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates all non-threshold fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	dataDir := input.DataDirStr
	if dataDir == "" {
		dataDir = "data"
	}
	abs, err := filepath.Abs(dataDir)
	if err != nil {
		return fmt.Errorf("invalid data directory %q: %w", dataDir, err)
	}
	cfg.DataDir = abs

	cfg.OutputFile = input.OutputFile

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output mode '%s'. must be text, csv, json, parquet", input.Output)
	}

	cfg.Precision = input.Precision
	if cfg.Precision < 0 || cfg.Precision > 10 {
		return fmt.Errorf("precision must be between 0 and 10, got %d", cfg.Precision)
	}

	cfg.UseColors = strings.ToLower(input.Color) != "no"

	cfg.LeaderLimit = input.LeaderLimit
	if cfg.LeaderLimit < 1 {
		return fmt.Errorf("leader-limit must be at least 1, got %d", cfg.LeaderLimit)
	}
	cfg.RepeatMin = input.RepeatMin
	cfg.RowLimit = input.RowLimit
	if cfg.RowLimit < 0 {
		return fmt.Errorf("row-limit must not be negative, got %d", cfg.RowLimit)
	}
	cfg.SampleLimit = input.SampleLimit

	cfg.BaselineSummary = input.Baseline
	cfg.CandidateSummary = input.Candidate
	return nil
}

// processThresholds validates the correlation and detector parameters.
func processThresholds(cfg *Config, input *ConfigRawInput) error {
	cfg.MaxLag = input.MaxLag
	if cfg.MaxLag < 0 || cfg.MaxLag > MaxLagLimit {
		return fmt.Errorf("max-lag must be in [0, %d], got %d", MaxLagLimit, cfg.MaxLag)
	}
	cfg.ImpactWindow = input.ImpactWindow
	if cfg.ImpactWindow < 1 {
		return fmt.Errorf("impact-window must be at least 1 day, got %d", cfg.ImpactWindow)
	}
	cfg.RainThreshold = input.RainThreshold
	cfg.DroughtSum = input.DroughtSum
	cfg.DroughtWindow = input.DroughtWindow
	if cfg.DroughtWindow < 1 {
		return fmt.Errorf("drought-window must be at least 1 day, got %d", cfg.DroughtWindow)
	}
	cfg.HeatThreshold = input.HeatThreshold
	cfg.ColdThreshold = input.ColdThreshold
	cfg.MinRunLength = input.MinRunLength
	if cfg.MinRunLength < 1 {
		return fmt.Errorf("min-run must be at least 1 day, got %d", cfg.MinRunLength)
	}
	return nil
}

// processFetchWindow parses the fetch date range and request pacing.
func processFetchWindow(cfg *Config, input *ConfigRawInput) error {
	start, err := ParseDay(input.Start)
	if err != nil {
		return fmt.Errorf("invalid start date %q: %w", input.Start, err)
	}
	end, err := ParseDay(input.End)
	if err != nil {
		return fmt.Errorf("invalid end date %q: %w", input.End, err)
	}
	if end.Before(start) {
		return fmt.Errorf("fetch end %s precedes start %s", input.End, input.Start)
	}
	cfg.FetchStart = start
	cfg.FetchEnd = end

	delay, err := time.ParseDuration(input.Delay)
	if err != nil || delay < 0 {
		return fmt.Errorf("invalid fetch delay %q", input.Delay)
	}
	cfg.FetchDelay = delay
	return nil
}

// validateBackendConfig validates the weather cache backend selection.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	return ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect)
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// GetCacheDBFilePath returns the default SQLite path for the weather cache.
func GetCacheDBFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wefarm-cache.db"
	}
	return filepath.Join(home, ".wefarm-cache.db")
}
