package schema

// LeaderMetrics describes one high-volume responder.
type LeaderMetrics struct {
	UserID            string  `json:"user_id"`
	TotalResponses    int     `json:"total_responses"`
	AvgResponseLength float64 `json:"avg_response_length"`
	UniqueTopics      int     `json:"unique_topics"`
	PrimaryTopic      string  `json:"primary_topic"`
	UniqueCountries   int     `json:"unique_countries"`
	PrimaryCountry    string  `json:"primary_country"`
	UniqueAskers      int     `json:"unique_askers_helped"`
	Gender            string  `json:"user_gender"`
}

// RepeatAsker is a user who asked more than the repeat threshold of questions.
type RepeatAsker struct {
	UserID       string `json:"user_id"`
	Questions    int    `json:"num_questions"`
	PrimaryTopic string `json:"question_topic"`
}

// LeadersSummary carries corpus-level statistics for the leaders run.
type LeadersSummary struct {
	TotalResponders  int     `json:"total_responders"`
	TotalResponses   int     `json:"total_responses"`
	TopShare         float64 `json:"top_response_share"` // percent of all responses by the ranked leaders
	AvgResponseLen   float64 `json:"avg_response_length"`
	AvgTopicsEach    float64 `json:"avg_topics_per_leader"`
	AvgAskersHelped  float64 `json:"avg_farmers_helped"`
	RepeatAskerCount int     `json:"repeat_askers"`
}

// LeadersResult is the full community-leader analysis output.
type LeadersResult struct {
	Leaders      []LeaderMetrics `json:"leaders"`
	RepeatAskers []RepeatAsker   `json:"repeat_askers"`
	Summary      LeadersSummary  `json:"summary"`
}
