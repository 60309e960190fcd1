package core

import (
	"math"
	"sort"

	"github.com/datakit/wefarm/internal/contract"
	"github.com/datakit/wefarm/schema"
)

// PearsonMatrix computes the zero-lag correlation between every question
// series and every weather series. Each pair is inner-joined on date and
// rows with a missing or NaN value on either side are dropped before the
// correlation is taken.
func PearsonMatrix(
	questions map[string]schema.TimeSeries,
	weather map[schema.WeatherParameter]schema.TimeSeries,
) map[string]map[string]schema.PairCorrelation {
	out := make(map[string]map[string]schema.PairCorrelation, len(questions))
	for _, qName := range sortedKeys(questions) {
		row := make(map[string]schema.PairCorrelation, len(weather))
		for _, wParam := range sortedParams(weather) {
			qs, ws := innerJoin(questions[qName], weather[wParam])
			r, p, n := pearson(qs, ws)
			row[string(wParam)] = schema.PairCorrelation{
				Correlation: schema.Float(r),
				PValue:      schema.Float(p),
				Significant: !math.IsNaN(p) && p < contract.SignificanceLevel,
				N:           n,
			}
		}
		out[qName] = row
	}
	return out
}

// innerJoin pairs up values for dates present in both series.
func innerJoin(a, b schema.TimeSeries) (av, bv []float64) {
	for _, obs := range a.Points() {
		v, ok := b.At(obs.Date)
		if !ok {
			continue
		}
		av = append(av, obs.Value)
		bv = append(bv, v)
	}
	return av, bv
}

func sortedKeys(m map[string]schema.TimeSeries) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedParams(m map[schema.WeatherParameter]schema.TimeSeries) []schema.WeatherParameter {
	keys := make([]schema.WeatherParameter, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
