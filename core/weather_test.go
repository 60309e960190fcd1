package core

import (
	"math"
	"testing"

	"github.com/datakit/wefarm/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMergeWeatherAverages checks the per-day mean across countries.
func TestMergeWeatherAverages(t *testing.T) {
	byCountry := map[string]map[schema.WeatherParameter]schema.TimeSeries{
		"kenya": {
			schema.TempMean: seriesFrom(0, 20, 22),
		},
		"uganda": {
			schema.TempMean: seriesFrom(0, 30, 24),
		},
	}

	merged := MergeWeather(byCountry)
	require.Contains(t, merged, schema.TempMean)
	s := merged[schema.TempMean]
	require.Equal(t, 2, s.Len())

	v, ok := s.At(baseDay)
	require.True(t, ok)
	assert.InDelta(t, 25.0, v, 0.001)

	v, ok = s.At(baseDay.AddDate(0, 0, 1))
	require.True(t, ok)
	assert.InDelta(t, 23.0, v, 0.001)
}

// TestMergeWeatherSkipsNaN ensures a missing reading in one country leaves
// the other country's value untouched instead of dragging in NaN.
func TestMergeWeatherSkipsNaN(t *testing.T) {
	byCountry := map[string]map[schema.WeatherParameter]schema.TimeSeries{
		"kenya": {
			schema.Precipitation: seriesFrom(0, math.NaN(), 4),
		},
		"tanzania": {
			schema.Precipitation: seriesFrom(0, 6, 8),
		},
	}

	s := MergeWeather(byCountry)[schema.Precipitation]
	v, ok := s.At(baseDay)
	require.True(t, ok)
	assert.InDelta(t, 6.0, v, 0.001)

	v, ok = s.At(baseDay.AddDate(0, 0, 1))
	require.True(t, ok)
	assert.InDelta(t, 6.0, v, 0.001)
}

// TestMergeWeatherDisjointParameters keeps parameters fetched for only some
// countries.
func TestMergeWeatherDisjointParameters(t *testing.T) {
	byCountry := map[string]map[schema.WeatherParameter]schema.TimeSeries{
		"kenya": {
			schema.TempMax: seriesFrom(0, 31),
		},
		"uganda": {
			schema.Humidity: seriesFrom(0, 70),
		},
	}

	merged := MergeWeather(byCountry)
	assert.Contains(t, merged, schema.TempMax)
	assert.Contains(t, merged, schema.Humidity)
	assert.Len(t, merged, 2)
}
