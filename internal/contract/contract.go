// Package contract defines the validated runtime configuration and the small
// shared helpers every command depends on.
package contract

import "time"

// Default values for configuration.
const (
	DefaultMaxLag       = 28
	DefaultImpactWindow = 7
	DefaultLeaderLimit  = 50
	DefaultRepeatMin    = 5
	DefaultSampleLimit  = 10000
	DefaultPrecision    = 3
	DefaultFetchDelay   = 2 * time.Second
	DefaultFetchStart   = "20150101"
	DefaultFetchEnd     = "20221231"
	MaxLagLimit         = 365
	SignificanceLevel   = 0.05
)

// Default detector thresholds. All are plain configuration constants,
// never derived from the data.
const (
	DefaultRainThreshold = 50.0 // mm in one day
	DefaultDroughtSum    = 10.0 // mm over the rolling window
	DefaultDroughtWindow = 30   // days
	DefaultHeatThreshold = 35.0 // degC daily max
	DefaultColdThreshold = 10.0 // degC daily min
	DefaultMinRunLength  = 3    // consecutive days
)

// DateTimeFormat is the timestamp representation stamped into outputs.
const DateTimeFormat = time.RFC3339
