package core

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/datakit/wefarm/schema"
)

// ClassifyText buckets a question as crop-specific, general, mixed or
// unknown by keyword matching. A keyword listed under several categories
// counts once per category. The returned crop names are unique and sorted.
func ClassifyText(text string) (class schema.Classification, cropCount, generalCount int, crops []string) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return schema.Unknown, 0, 0, nil
	}
	lower := strings.ToLower(trimmed)

	cropSet := make(map[string]struct{})
	for _, keywords := range schema.CropKeywords() {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				cropCount++
				cropSet[kw] = struct{}{}
			}
		}
	}
	for _, keywords := range schema.GeneralKeywords() {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				generalCount++
			}
		}
	}

	switch {
	case cropCount > 0 && generalCount == 0:
		class = schema.CropSpecific
	case generalCount > 0 && cropCount == 0:
		class = schema.General
	case cropCount > 0 && generalCount > 0:
		class = schema.Mixed
	default:
		class = schema.Unknown
	}

	for kw := range cropSet {
		crops = append(crops, kw)
	}
	sort.Strings(crops)
	return class, cropCount, generalCount, crops
}

// ClassifyAll classifies every record and builds the run summary, timing
// the classification pass itself. At most sampleLimit classified rows are
// returned for export; zero keeps them all.
func ClassifyAll(records []schema.QuestionRecord, sampleLimit int) ([]schema.ClassifiedQuestion, schema.ClassifySummary) {
	start := time.Now()
	dist := make(map[schema.Classification]int, len(schema.AllClassifications))
	for _, c := range schema.AllClassifications {
		dist[c] = 0
	}
	cropMentions := make(map[string]int)
	cropCategories := make(map[string]int)
	byCountry := make(map[string]map[schema.Classification]int)
	byLanguage := make(map[string]map[schema.Classification]int)

	var sample []schema.ClassifiedQuestion
	for _, rec := range records {
		class, nCrop, nGen, crops := ClassifyText(rec.Content)
		dist[class]++
		if class == schema.CropSpecific || class == schema.Mixed {
			for _, crop := range crops {
				cropMentions[crop]++
				if cat := cropCategory(crop); cat != "" {
					cropCategories[cat]++
				}
			}
		}
		bump(byCountry, rec.CountryCode, class)
		bump(byLanguage, rec.Language, class)

		if sampleLimit <= 0 || len(sample) < sampleLimit {
			sample = append(sample, schema.ClassifiedQuestion{
				Text:           rec.Content,
				Class:          class,
				CropMatches:    nCrop,
				GeneralMatches: nGen,
				Crops:          crops,
				Country:        rec.CountryCode,
				Language:       rec.Language,
			})
		}
	}

	total := len(records)
	elapsed := time.Since(start)
	summary := schema.ClassifySummary{
		Strategy:       "keyword",
		TotalQuestions: total,
		ElapsedSeconds: elapsed.Seconds(),
		Distribution:   dist,
		Percentages:    percentages(dist, total),
		TopCrops:       topN(cropMentions, 20),
		CropCategories: cropCategories,
		ByCountry:      crosstab(byCountry),
		ByLanguage:     crosstab(byLanguage),
	}
	if elapsed > 0 {
		summary.PerSecond = float64(total) / elapsed.Seconds()
	}
	return sample, summary
}

// CompareStrategies lines two run summaries up metric by metric.
func CompareStrategies(a, b schema.ClassifySummary, aLabel, bLabel string) schema.StrategyComparison {
	rows := []schema.ComparisonRow{
		{Metric: "Questions Analyzed", A: fmt.Sprintf("%d", a.TotalQuestions), B: fmt.Sprintf("%d", b.TotalQuestions)},
		{Metric: "Processing Time (seconds)", A: fmt.Sprintf("%.2f", a.ElapsedSeconds), B: fmt.Sprintf("%.2f", b.ElapsedSeconds)},
		{Metric: "Speed (questions/sec)", A: fmt.Sprintf("%.0f", a.PerSecond), B: fmt.Sprintf("%.1f", b.PerSecond)},
		{Metric: "Cost (USD)", A: fmt.Sprintf("$%.2f", a.EstimatedCostUSD), B: fmt.Sprintf("$%.2f", b.EstimatedCostUSD)},
	}
	for _, class := range schema.AllClassifications {
		rows = append(rows, schema.ComparisonRow{
			Metric: fmt.Sprintf("%s (%%)", string(class)),
			A:      fmt.Sprintf("%.1f%%", a.Percentages[class]),
			B:      fmt.Sprintf("%.1f%%", b.Percentages[class]),
		})
	}
	return schema.StrategyComparison{ALabel: aLabel, BLabel: bLabel, Rows: rows}
}

// cropCategory maps a crop keyword back to its category; ties go to the
// first category in name order.
func cropCategory(crop string) string {
	cats := make([]string, 0, len(schema.CropKeywords()))
	for cat := range schema.CropKeywords() {
		cats = append(cats, cat)
	}
	sort.Strings(cats)
	for _, cat := range cats {
		for _, kw := range schema.CropKeywords()[cat] {
			if kw == crop {
				return cat
			}
		}
	}
	return ""
}

func bump(m map[string]map[schema.Classification]int, key string, class schema.Classification) {
	if key == "" {
		return
	}
	if m[key] == nil {
		m[key] = make(map[schema.Classification]int)
	}
	m[key][class]++
}

func percentages(dist map[schema.Classification]int, total int) map[schema.Classification]float64 {
	out := make(map[schema.Classification]float64, len(dist))
	for class, n := range dist {
		if total > 0 {
			out[class] = 100 * float64(n) / float64(total)
		} else {
			out[class] = 0
		}
	}
	return out
}

// crosstab normalizes per-key class counts into row percentages.
func crosstab(m map[string]map[schema.Classification]int) map[string]map[schema.Classification]float64 {
	out := make(map[string]map[schema.Classification]float64, len(m))
	for key, counts := range m {
		total := 0
		for _, n := range counts {
			total += n
		}
		row := make(map[schema.Classification]float64, len(counts))
		for class, n := range counts {
			row[class] = 100 * float64(n) / float64(total)
		}
		out[key] = row
	}
	return out
}

func topN(counts map[string]int, n int) map[string]int {
	type kv struct {
		k string
		v int
	}
	all := make([]kv, 0, len(counts))
	for k, v := range counts {
		all = append(all, kv{k, v})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].v != all[j].v {
			return all[i].v > all[j].v
		}
		return all[i].k < all[j].k
	})
	if len(all) > n {
		all = all[:n]
	}
	out := make(map[string]int, len(all))
	for _, e := range all {
		out[e.k] = e.v
	}
	return out
}
