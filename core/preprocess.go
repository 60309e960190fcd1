package core

import (
	"sort"
	"strings"
	"time"

	"github.com/datakit/wefarm/internal/contract"
	"github.com/datakit/wefarm/schema"
)

// CleanQuestions removes exact duplicate rows and rows missing a timestamp
// or question text, preserving input order.
func CleanQuestions(records []schema.QuestionRecord) (kept []schema.QuestionRecord, dups, missing int) {
	seen := make(map[schema.QuestionRecord]struct{}, len(records))
	for _, rec := range records {
		if _, ok := seen[rec]; ok {
			dups++
			continue
		}
		seen[rec] = struct{}{}
		if rec.Sent.IsZero() || strings.TrimSpace(rec.Content) == "" {
			missing++
			continue
		}
		kept = append(kept, rec)
	}
	return kept, dups, missing
}

// Topics returns the topic groups whose keywords appear in the text,
// sorted by topic name. Matching is case-insensitive substring search.
func Topics(text string) []string {
	lower := strings.ToLower(text)
	var matched []string
	for topic, keywords := range schema.TopicKeywords() {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				matched = append(matched, topic)
				break
			}
		}
	}
	sort.Strings(matched)
	return matched
}

// Preprocess cleans the raw records, categorizes every question and builds
// the daily, weekly and monthly aggregations.
func Preprocess(records []schema.QuestionRecord) schema.PreprocessResult {
	kept, dups, missing := CleanQuestions(records)

	topicHits := make(map[string]int, len(schema.TopicKeywords()))
	for topic := range schema.TopicKeywords() {
		topicHits[topic] = 0
	}
	uncategorized := 0
	topicsByIdx := make([][]string, len(kept))
	for i, rec := range kept {
		topics := Topics(rec.Content)
		topicsByIdx[i] = topics
		if len(topics) == 0 {
			uncategorized++
		}
		for _, t := range topics {
			topicHits[t]++
		}
	}

	res := schema.PreprocessResult{
		Records:   kept,
		Daily:     aggregate(kept, topicsByIdx, dayLabel),
		Weekly:    aggregate(kept, topicsByIdx, weekLabel),
		Monthly:   aggregate(kept, topicsByIdx, monthLabel),
		TopicHits: topicHits,
	}
	res.Metadata = schema.PreprocessMeta{
		Timestamp:         time.Now().UTC().Format(contract.DateTimeFormat),
		TotalQuestions:    len(kept),
		DuplicatesRemoved: dups,
		MissingRemoved:    missing,
		Uncategorized:     uncategorized,
	}
	if len(kept) > 0 {
		start, end := kept[0].Sent, kept[0].Sent
		for _, rec := range kept[1:] {
			if rec.Sent.Before(start) {
				start = rec.Sent
			}
			if rec.Sent.After(end) {
				end = rec.Sent
			}
		}
		res.Metadata.DateStart = start.Format(contract.ISODay)
		res.Metadata.DateEnd = end.Format(contract.ISODay)
	}
	return res
}

// aggregate buckets questions by the period label and counts totals plus
// per-topic hits, returning rows sorted by label.
func aggregate(records []schema.QuestionRecord, topicsByIdx [][]string, label func(time.Time) string) []schema.AggregateRow {
	byPeriod := make(map[string]*schema.AggregateRow)
	for i, rec := range records {
		key := label(rec.Sent)
		row, ok := byPeriod[key]
		if !ok {
			row = &schema.AggregateRow{Period: key, TopicCounts: make(map[string]int)}
			byPeriod[key] = row
		}
		row.QuestionCount++
		for _, t := range topicsByIdx[i] {
			row.TopicCounts[t]++
		}
	}

	rows := make([]schema.AggregateRow, 0, len(byPeriod))
	for _, row := range byPeriod {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Period < rows[j].Period })
	return rows
}

func dayLabel(t time.Time) string { return t.Format(contract.ISODay) }

func weekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return contract.FormatISOWeek(year, week)
}

func monthLabel(t time.Time) string { return t.Format("2006-01") }
