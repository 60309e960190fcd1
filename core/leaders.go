package core

import (
	"sort"

	"github.com/datakit/wefarm/schema"
)

// AnalyzeLeaders ranks responders by volume, builds per-leader metrics for
// the top limit of them, and finds users who asked more than repeatMin
// questions.
func AnalyzeLeaders(records []schema.QuestionRecord, limit, repeatMin int) schema.LeadersResult {
	byResponder := make(map[string][]schema.QuestionRecord)
	totalResponses := 0
	for _, rec := range records {
		if rec.ResponseUserID == "" {
			continue
		}
		byResponder[rec.ResponseUserID] = append(byResponder[rec.ResponseUserID], rec)
		totalResponses++
	}

	ranked := make([]string, 0, len(byResponder))
	for id := range byResponder {
		ranked = append(ranked, id)
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := len(byResponder[ranked[i]]), len(byResponder[ranked[j]])
		if a != b {
			return a > b
		}
		return ranked[i] < ranked[j]
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	leaders := make([]schema.LeaderMetrics, 0, len(ranked))
	topResponses := 0
	var sumLen, sumTopics, sumAskers float64
	for _, id := range ranked {
		m := leaderMetrics(id, byResponder[id])
		leaders = append(leaders, m)
		topResponses += m.TotalResponses
		sumLen += m.AvgResponseLength
		sumTopics += float64(m.UniqueTopics)
		sumAskers += float64(m.UniqueAskers)
	}

	repeat := repeatAskers(records, repeatMin)

	summary := schema.LeadersSummary{
		TotalResponders:  len(byResponder),
		TotalResponses:   totalResponses,
		RepeatAskerCount: len(repeat),
	}
	if totalResponses > 0 {
		summary.TopShare = 100 * float64(topResponses) / float64(totalResponses)
	}
	if len(leaders) > 0 {
		n := float64(len(leaders))
		summary.AvgResponseLen = sumLen / n
		summary.AvgTopicsEach = sumTopics / n
		summary.AvgAskersHelped = sumAskers / n
	}

	return schema.LeadersResult{Leaders: leaders, RepeatAskers: repeat, Summary: summary}
}

func leaderMetrics(id string, responses []schema.QuestionRecord) schema.LeaderMetrics {
	var totalLen int
	topics := make(map[string]int)
	countries := make(map[string]int)
	askers := make(map[string]struct{})
	gender := ""
	for _, rec := range responses {
		totalLen += len(rec.ResponseContent)
		if rec.ResponseTopic != "" {
			topics[rec.ResponseTopic]++
		}
		if rec.ResponseCountry != "" {
			countries[rec.ResponseCountry]++
		}
		if rec.UserID != "" {
			askers[rec.UserID] = struct{}{}
		}
		if gender == "" {
			gender = rec.ResponseGender
		}
	}

	return schema.LeaderMetrics{
		UserID:            id,
		TotalResponses:    len(responses),
		AvgResponseLength: float64(totalLen) / float64(len(responses)),
		UniqueTopics:      len(topics),
		PrimaryTopic:      mode(topics),
		UniqueCountries:   len(countries),
		PrimaryCountry:    mode(countries),
		UniqueAskers:      len(askers),
		Gender:            gender,
	}
}

func repeatAskers(records []schema.QuestionRecord, repeatMin int) []schema.RepeatAsker {
	counts := make(map[string]int)
	topics := make(map[string]map[string]int)
	for _, rec := range records {
		if rec.UserID == "" {
			continue
		}
		counts[rec.UserID]++
		if rec.Topic != "" {
			if topics[rec.UserID] == nil {
				topics[rec.UserID] = make(map[string]int)
			}
			topics[rec.UserID][rec.Topic]++
		}
	}

	var out []schema.RepeatAsker
	for id, n := range counts {
		if n > repeatMin {
			out = append(out, schema.RepeatAsker{
				UserID:       id,
				Questions:    n,
				PrimaryTopic: mode(topics[id]),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Questions != out[j].Questions {
			return out[i].Questions > out[j].Questions
		}
		return out[i].UserID < out[j].UserID
	})
	return out
}

// mode returns the most frequent key, breaking ties toward the smaller key.
func mode(counts map[string]int) string {
	best, bestN := "", 0
	for k, n := range counts {
		if n > bestN || (n == bestN && (best == "" || k < best)) {
			best, bestN = k, n
		}
	}
	return best
}
