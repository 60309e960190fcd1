// Package schema has configs, models and global variables for all parts of wefarm.
package schema

import (
	"math"
	"sort"
	"time"
)

// Observation is a single dated reading. Missing readings carry NaN.
type Observation struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// TimeSeries is an ordered sequence of daily observations with unique dates.
// Dates are normalized to UTC midnight on construction; gaps between dates
// are allowed and represent days with no reading at all.
type TimeSeries struct {
	points []Observation
}

// NewTimeSeries builds a series from observations in any order.
// Duplicate dates keep the last value seen.
func NewTimeSeries(obs []Observation) TimeSeries {
	byDate := make(map[time.Time]float64, len(obs))
	for _, o := range obs {
		byDate[Midnight(o.Date)] = o.Value
	}
	points := make([]Observation, 0, len(byDate))
	for d, v := range byDate {
		points = append(points, Observation{Date: d, Value: v})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return TimeSeries{points: points}
}

// Midnight truncates a timestamp to its calendar day in UTC.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Len returns the number of observations, including NaN placeholders.
func (ts TimeSeries) Len() int { return len(ts.points) }

// Points returns the ordered observations.
func (ts TimeSeries) Points() []Observation { return ts.points }

// At returns the value recorded for the given calendar day.
// The second return is false when the day is absent from the series;
// a present-but-NaN reading still reports true.
func (ts TimeSeries) At(t time.Time) (float64, bool) {
	d := Midnight(t)
	i := sort.Search(len(ts.points), func(i int) bool { return !ts.points[i].Date.Before(d) })
	if i < len(ts.points) && ts.points[i].Date.Equal(d) {
		return ts.points[i].Value, true
	}
	return math.NaN(), false
}

// Start returns the first date in the series.
func (ts TimeSeries) Start() time.Time {
	if len(ts.points) == 0 {
		return time.Time{}
	}
	return ts.points[0].Date
}

// End returns the last date in the series.
func (ts TimeSeries) End() time.Time {
	if len(ts.points) == 0 {
		return time.Time{}
	}
	return ts.points[len(ts.points)-1].Date
}

// CommonRange returns the overlapping date range of two series.
// ok is false when the ranges do not intersect or either series is empty.
func (ts TimeSeries) CommonRange(other TimeSeries) (start, end time.Time, ok bool) {
	if ts.Len() == 0 || other.Len() == 0 {
		return time.Time{}, time.Time{}, false
	}
	start = ts.Start()
	if other.Start().After(start) {
		start = other.Start()
	}
	end = ts.End()
	if other.End().Before(end) {
		end = other.End()
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
