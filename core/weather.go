package core

import (
	"math"
	"time"

	"github.com/datakit/wefarm/schema"
)

// MergeWeather averages per-country series into one regional series per
// parameter. A day's mean uses whichever countries reported that day.
func MergeWeather(byCountry map[string]map[schema.WeatherParameter]schema.TimeSeries) map[schema.WeatherParameter]schema.TimeSeries {
	sums := make(map[schema.WeatherParameter]map[int64]float64)
	counts := make(map[schema.WeatherParameter]map[int64]int)
	for _, series := range byCountry {
		for param, s := range series {
			if sums[param] == nil {
				sums[param] = make(map[int64]float64)
				counts[param] = make(map[int64]int)
			}
			for _, obs := range s.Points() {
				if math.IsNaN(obs.Value) {
					continue
				}
				key := obs.Date.Unix()
				sums[param][key] += obs.Value
				counts[param][key]++
			}
		}
	}

	out := make(map[schema.WeatherParameter]schema.TimeSeries, len(sums))
	for param, byDay := range sums {
		obs := make([]schema.Observation, 0, len(byDay))
		for key, sum := range byDay {
			obs = append(obs, schema.Observation{
				Date:  schema.Midnight(time.Unix(key, 0).UTC()),
				Value: sum / float64(counts[param][key]),
			})
		}
		out[param] = schema.NewTimeSeries(obs)
	}
	return out
}
