package core

import (
	"math"

	"github.com/datakit/wefarm/internal/contract"
	"github.com/datakit/wefarm/schema"
)

// AnalyzeImpact compares question activity around each category of weather
// event. For every event day d it samples activity at d-window (before), d
// (during) and d+window (after), pools the samples per category, and runs a
// two-sample t-test of during against before. Empty groups are left out of
// the summary, and the t-test is only attached when both of its groups have
// samples.
func AnalyzeImpact(
	questions schema.TimeSeries,
	events []schema.WeatherEvent,
	window int,
) map[schema.EventCategory]schema.ImpactSummary {
	byCat := make(map[schema.EventCategory][]schema.WeatherEvent)
	for _, ev := range events {
		byCat[ev.Category] = append(byCat[ev.Category], ev)
	}

	out := make(map[schema.EventCategory]schema.ImpactSummary, len(byCat))
	for cat, evs := range byCat {
		var before, during, after []float64
		for _, ev := range evs {
			if v, ok := questions.At(ev.Date.AddDate(0, 0, -window)); ok && !math.IsNaN(v) {
				before = append(before, v)
			}
			if v, ok := questions.At(ev.Date); ok && !math.IsNaN(v) {
				during = append(during, v)
			}
			if v, ok := questions.At(ev.Date.AddDate(0, 0, window)); ok && !math.IsNaN(v) {
				after = append(after, v)
			}
		}

		summary := schema.ImpactSummary{
			Before: groupStats(before),
			During: groupStats(during),
			After:  groupStats(after),
		}
		if len(during) > 0 && len(before) > 0 {
			t, p := tTestInd(during, before)
			summary.TTestBefore = &schema.TTestResult{
				TStatistic:  schema.Float(t),
				PValue:      schema.Float(p),
				Significant: !math.IsNaN(p) && p < contract.SignificanceLevel,
			}
		}
		out[cat] = summary
	}
	return out
}

func groupStats(vals []float64) *schema.GroupStats {
	if len(vals) == 0 {
		return nil
	}
	mean, std := meanStd(vals)
	return &schema.GroupStats{
		Mean:  schema.Float(mean),
		Std:   schema.Float(std),
		Count: len(vals),
	}
}
