package contract

import (
	"time"

	"github.com/datakit/wefarm/schema"
)

// ObservationStore is the durable cache of fetched weather readings, keyed
// by (country, date, parameter).
type ObservationStore interface {
	// PutSeries upserts every observation of a series for one country and
	// parameter. NaN readings persist as NULL.
	PutSeries(country string, param schema.WeatherParameter, series schema.TimeSeries) error

	// GetSeries reads the cached observations for one country and parameter
	// inside [start, end]. ok is false when nothing was cached.
	GetSeries(country string, param schema.WeatherParameter, start, end time.Time) (schema.TimeSeries, bool, error)

	// Status summarizes the cache contents.
	Status() (schema.CacheStatus, error)

	// Clear drops every cached observation.
	Clear() error

	Close() error
}
