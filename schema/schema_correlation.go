package schema

// PairCorrelation is the zero-lag Pearson result for one
// (question variable, weather variable) pair.
type PairCorrelation struct {
	Correlation Float `json:"correlation"`
	PValue      Float `json:"p_value"`
	Significant bool  `json:"significant"`
	N           int   `json:"n"`
}

// CorrelationResult is a single point of a lag sweep: the Pearson correlation
// between the question series at day t and the weather series at day t-lag.
type CorrelationResult struct {
	Lag int   `json:"lag"`
	R   Float `json:"r"`
	P   Float `json:"p"`
	N   int   `json:"n"`
}

// Undefined reports whether the correlation could not be computed
// (overlap shorter than two points or zero variance in either segment).
func (c CorrelationResult) Undefined() bool { return !c.R.IsDefined() }

// LagSweepResult holds one CorrelationResult per lag in [0, L] plus the
// selected optimal lag. The optimal lag maximizes |r| with undefined
// correlations counted as magnitude 0; ties break toward the smaller lag.
type LagSweepResult struct {
	Lags               []int   `json:"lags"`
	Correlations       []Float `json:"correlations"`
	PValues            []Float `json:"p_values"`
	OptimalLag         int     `json:"optimal_lag"`
	OptimalCorrelation Float   `json:"optimal_correlation"`
	OptimalPValue      Float   `json:"optimal_p_value"`
}

// CorrelationReport is the combined correlate output document.
// The nesting is question variable -> weather variable -> result.
type CorrelationReport struct {
	PearsonCorrelations map[string]map[string]PairCorrelation `json:"pearson_correlations"`
	LagCorrelations     map[string]map[string]LagSweepResult  `json:"lag_correlations"`
	WeatherEvents       map[EventCategory]int                 `json:"weather_events"`
	EventImpact         map[EventCategory]ImpactSummary       `json:"event_impact"`
	AnalysisTimestamp   string                                `json:"analysis_timestamp"`
}
