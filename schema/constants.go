package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the weather cache.
	DatabaseBackend string

	// EventCategory represents a weather event rule.
	EventCategory string

	// Classification represents the outcome of the keyword classifier.
	Classification string

	// WeatherParameter is a NASA POWER daily parameter name.
	WeatherParameter string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All weather event categories supported.
const (
	HeavyRain EventCategory = "heavy_rain"
	Drought   EventCategory = "drought"
	HeatWave  EventCategory = "heat_wave"
	ColdSpell EventCategory = "cold_spell"
)

// Keyword classifier outcomes. The four variants are mutually exclusive:
// crop matches only -> CropSpecific, general matches only -> General,
// both -> Mixed, neither -> Unknown.
const (
	CropSpecific Classification = "crop_specific"
	General      Classification = "general"
	Mixed        Classification = "mixed"
	Unknown      Classification = "unknown"
)

// Daily parameters requested from the NASA POWER agroclimatology community.
const (
	TempMean      WeatherParameter = "T2M"         // Temperature at 2 meters (degC)
	TempMax       WeatherParameter = "T2M_MAX"     // Daily maximum temperature (degC)
	TempMin       WeatherParameter = "T2M_MIN"     // Daily minimum temperature (degC)
	Precipitation WeatherParameter = "PRECTOTCORR" // Corrected precipitation (mm/day)
	Humidity      WeatherParameter = "RH2M"        // Relative humidity at 2 meters (%)
	WindSpeed     WeatherParameter = "WS2M"        // Wind speed at 2 meters (m/s)
)

// AllEventCategories returns a list of all supported event categories.
var AllEventCategories = []EventCategory{HeavyRain, Drought, HeatWave, ColdSpell}

// AllClassifications returns a list of all classifier outcomes.
var AllClassifications = []Classification{CropSpecific, General, Mixed, Unknown}

// AllWeatherParameters lists every parameter fetched and analyzed.
var AllWeatherParameters = []WeatherParameter{
	TempMean, TempMax, TempMin, Precipitation, Humidity, WindSpeed,
}

// LagSweepParameters lists the subset of parameters used in the lag sweep.
var LagSweepParameters = []WeatherParameter{TempMean, Precipitation, Humidity}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid cache backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
