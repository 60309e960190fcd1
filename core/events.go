package core

import (
	"math"
	"sort"

	"github.com/datakit/wefarm/schema"
)

// DetectorConfig holds the thresholds for the weather event detector.
type DetectorConfig struct {
	RainThreshold float64 // mm per day for heavy rain
	DroughtSum    float64 // mm ceiling for the rolling precipitation sum
	DroughtWindow int     // trailing days in the rolling sum
	HeatThreshold float64 // degrees C floor for a heat wave day
	ColdThreshold float64 // degrees C ceiling for a cold spell day
	MinRunLength  int     // consecutive qualifying days for a run event
}

// DetectEvents scans the weather series and returns every event, sorted by
// date and then category for a stable ordering.
//
// heavy_rain fires per day above the rain threshold. drought fires per day
// whose trailing rolling precipitation sum falls under the ceiling; the sum
// needs a full window of observations, so the first window-1 rows can never
// qualify. heat_wave and cold_spell fire per day from the day a qualifying
// run reaches the minimum length onward. A missing or NaN day never
// qualifies and breaks any open run.
func DetectEvents(weather map[schema.WeatherParameter]schema.TimeSeries, cfg DetectorConfig) []schema.WeatherEvent {
	var events []schema.WeatherEvent

	if precip, ok := weather[schema.Precipitation]; ok {
		events = append(events, detectHeavyRain(precip, cfg.RainThreshold)...)
		events = append(events, detectDrought(precip, cfg.DroughtSum, cfg.DroughtWindow)...)
	}
	if tmax, ok := weather[schema.TempMax]; ok {
		above := func(v float64) bool { return v > cfg.HeatThreshold }
		events = append(events, detectRuns(tmax, schema.HeatWave, above, cfg.MinRunLength)...)
	}
	if tmin, ok := weather[schema.TempMin]; ok {
		below := func(v float64) bool { return v < cfg.ColdThreshold }
		events = append(events, detectRuns(tmin, schema.ColdSpell, below, cfg.MinRunLength)...)
	}

	sort.Slice(events, func(i, j int) bool {
		if !events[i].Date.Equal(events[j].Date) {
			return events[i].Date.Before(events[j].Date)
		}
		return events[i].Category < events[j].Category
	})
	return events
}

// CountEvents tallies events per category, with every category present even
// when its count is zero.
func CountEvents(events []schema.WeatherEvent) map[schema.EventCategory]int {
	counts := make(map[schema.EventCategory]int, len(schema.AllEventCategories))
	for _, cat := range schema.AllEventCategories {
		counts[cat] = 0
	}
	for _, ev := range events {
		counts[ev.Category]++
	}
	return counts
}

func detectHeavyRain(precip schema.TimeSeries, threshold float64) []schema.WeatherEvent {
	var events []schema.WeatherEvent
	for _, obs := range precip.Points() {
		if obs.Value > threshold {
			events = append(events, schema.WeatherEvent{
				Date:     obs.Date,
				Category: schema.HeavyRain,
				Value:    obs.Value,
			})
		}
	}
	return events
}

// detectDrought computes the trailing rolling sum over the observation rows.
// A NaN anywhere in the window poisons the sum, so such days cannot qualify.
func detectDrought(precip schema.TimeSeries, ceiling float64, window int) []schema.WeatherEvent {
	points := precip.Points()
	if window < 1 || len(points) < window {
		return nil
	}
	var events []schema.WeatherEvent
	for i := window - 1; i < len(points); i++ {
		var sum float64
		for j := i - window + 1; j <= i; j++ {
			sum += points[j].Value
		}
		if !math.IsNaN(sum) && sum < ceiling {
			events = append(events, schema.WeatherEvent{
				Date:     points[i].Date,
				Category: schema.Drought,
				Value:    sum,
			})
		}
	}
	return events
}

// detectRuns emits one event per day once a run of qualifying consecutive
// days reaches minRun. A gap in the date axis resets the run.
func detectRuns(series schema.TimeSeries, cat schema.EventCategory, qualifies func(float64) bool, minRun int) []schema.WeatherEvent {
	if minRun < 1 {
		return nil
	}
	var events []schema.WeatherEvent
	run := 0
	var prev schema.Observation
	for i, obs := range series.Points() {
		if i > 0 && !prev.Date.AddDate(0, 0, 1).Equal(obs.Date) {
			run = 0
		}
		prev = obs
		if math.IsNaN(obs.Value) || !qualifies(obs.Value) {
			run = 0
			continue
		}
		run++
		if run >= minRun {
			events = append(events, schema.WeatherEvent{
				Date:     obs.Date,
				Category: cat,
				Value:    obs.Value,
			})
		}
	}
	return events
}
