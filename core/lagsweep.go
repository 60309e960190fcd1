package core

import (
	"math"
	"time"

	"github.com/datakit/wefarm/schema"
)

// LagSweep correlates a question series against a weather series at every
// lag from 0 to maxLag days, where lag k pairs question activity on day t
// with weather on day t-k. The optimal lag is the one with the largest
// absolute correlation; ties go to the smallest lag.
//
// Both series are first expanded onto a continuous daily axis over their
// common date range. Days with no question observation count as zero
// activity, while weather gaps carry the last seen value forward.
func LagSweep(questions, weather schema.TimeSeries, maxLag int) schema.LagSweepResult {
	var qs, ws []float64
	if start, end, ok := questions.CommonRange(weather); ok {
		qs = fillDailyZero(questions, start, end)
		ws = fillDailyForward(weather, start, end)
	}

	res := schema.LagSweepResult{
		Lags:         make([]int, 0, maxLag+1),
		Correlations: make([]schema.Float, 0, maxLag+1),
		PValues:      make([]schema.Float, 0, maxLag+1),
	}

	best := schema.CorrelationResult{R: schema.Float(math.NaN()), P: schema.Float(math.NaN())}
	bestAbs := math.Inf(-1)

	for lag := 0; lag <= maxLag; lag++ {
		cur := lagCorrelation(qs, ws, lag)
		res.Lags = append(res.Lags, cur.Lag)
		res.Correlations = append(res.Correlations, cur.R)
		res.PValues = append(res.PValues, cur.P)

		abs := 0.0
		if !cur.Undefined() {
			abs = math.Abs(float64(cur.R))
		}
		if abs > bestAbs {
			bestAbs = abs
			best = cur
		}
	}

	res.OptimalLag = best.Lag
	res.OptimalCorrelation = best.R
	res.OptimalPValue = best.P
	return res
}

// lagCorrelation computes one point of the sweep: question activity from day
// lag onward against weather shifted back by lag days. A lag longer than the
// overlap yields an undefined result.
func lagCorrelation(qs, ws []float64, lag int) schema.CorrelationResult {
	r, p, n := math.NaN(), math.NaN(), 0
	if lag < len(qs) {
		r, p, n = pearson(qs[lag:], ws[:len(ws)-lag])
	}
	return schema.CorrelationResult{Lag: lag, R: schema.Float(r), P: schema.Float(p), N: n}
}

// LagSweepMatrix runs the lag sweep for every question series against the
// lag sweep weather parameters that are present.
func LagSweepMatrix(
	questions map[string]schema.TimeSeries,
	weather map[schema.WeatherParameter]schema.TimeSeries,
	maxLag int,
) map[string]map[string]schema.LagSweepResult {
	out := make(map[string]map[string]schema.LagSweepResult, len(questions))
	for _, qName := range sortedKeys(questions) {
		row := make(map[string]schema.LagSweepResult)
		for _, wParam := range schema.LagSweepParameters {
			ws, ok := weather[wParam]
			if !ok {
				continue
			}
			row[string(wParam)] = LagSweep(questions[qName], ws, maxLag)
		}
		out[qName] = row
	}
	return out
}

// fillDailyZero expands a series onto every day of [start, end], writing
// zero for missing days and NaN values.
func fillDailyZero(s schema.TimeSeries, start, end time.Time) []float64 {
	var vals []float64
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		v, ok := s.At(d)
		if !ok || math.IsNaN(v) {
			v = 0
		}
		vals = append(vals, v)
	}
	return vals
}

// fillDailyForward expands a series onto every day of [start, end], carrying
// the last seen value across gaps. Days before the first observation stay NaN.
func fillDailyForward(s schema.TimeSeries, start, end time.Time) []float64 {
	var vals []float64
	last := math.NaN()
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if v, ok := s.At(d); ok && !math.IsNaN(v) {
			last = v
		}
		vals = append(vals, last)
	}
	return vals
}
