package schema

// ClassifiedQuestion is one question after keyword classification.
type ClassifiedQuestion struct {
	Text           string         `json:"question_content"`
	Class          Classification `json:"classification"`
	CropMatches    int            `json:"crop_match_count"`
	GeneralMatches int            `json:"general_match_count"`
	Crops          []string       `json:"specific_crops"`
	Country        string         `json:"question_user_country_code"`
	Language       string         `json:"question_language"`
}

// ClassifySummary is the summary-stats document written after a classify run.
// The compare command consumes two of these, one per strategy.
type ClassifySummary struct {
	Strategy         string                                `json:"strategy"`
	TotalQuestions   int                                   `json:"total_questions"`
	ElapsedSeconds   float64                               `json:"classification_time_seconds"`
	PerSecond        float64                               `json:"speed_questions_per_second"`
	EstimatedCostUSD float64                               `json:"estimated_cost_usd"`
	Distribution     map[Classification]int                `json:"classification_distribution"`
	Percentages      map[Classification]float64            `json:"classification_percentages"`
	TopCrops         map[string]int                        `json:"top_crops"`
	CropCategories   map[string]int                        `json:"crop_category_distribution"`
	ByCountry        map[string]map[Classification]float64 `json:"by_country"`
	ByLanguage       map[string]map[Classification]float64 `json:"by_language"`
}

// ComparisonRow is one metric line in the strategy comparison table.
type ComparisonRow struct {
	Metric string `json:"metric"`
	A      string `json:"option_a"`
	B      string `json:"option_b"`
}

// StrategyComparison holds the head-to-head view of two classify summaries.
type StrategyComparison struct {
	ALabel string          `json:"option_a_label"`
	BLabel string          `json:"option_b_label"`
	Rows   []ComparisonRow `json:"rows"`
}
