package schema

import "time"

// WeatherEvent is a single day flagged by a detector rule.
// A day belongs to exactly one category per detector; run-based detectors
// (heat wave, cold spell) only flag days once the run reaches its minimum
// length, so the first two days of a three-day heat wave are not events.
type WeatherEvent struct {
	Date     time.Time     `json:"date"`
	Category EventCategory `json:"category"`
	Value    float64       `json:"value"` // the reading that triggered the rule
}

// GroupStats summarizes one of the before/during/after sample groups.
type GroupStats struct {
	Mean  Float `json:"mean"`
	Std   Float `json:"std"`
	Count int   `json:"count"`
}

// TTestResult is an independent two-sample t-test between the during-event
// and before-event question counts.
type TTestResult struct {
	TStatistic  Float `json:"t_statistic"`
	PValue      Float `json:"p_value"`
	Significant bool  `json:"significant"`
}

// ImpactSummary aggregates question volume around all events of one category.
// Groups that collected no samples are omitted entirely, as is the t-test
// when either of its input groups is empty.
type ImpactSummary struct {
	Before      *GroupStats  `json:"before,omitempty"`
	During      *GroupStats  `json:"during,omitempty"`
	After       *GroupStats  `json:"after,omitempty"`
	TTestBefore *TTestResult `json:"ttest_before,omitempty"`
}
