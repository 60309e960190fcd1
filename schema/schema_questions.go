package schema

import "time"

// QuestionRecord is one row of the raw question dataset. Field names follow
// the dataset's column headers.
type QuestionRecord struct {
	QuestionID      string
	UserID          string
	Content         string
	Topic           string
	Language        string
	CountryCode     string
	Sent            time.Time
	ResponseUserID  string
	ResponseContent string
	ResponseTopic   string
	ResponseCountry string
	ResponseGender  string
}

// AggregateRow is one period of the question aggregation. TopicCounts holds
// a count per topic keyword group, keyed by topic name.
type AggregateRow struct {
	Period        string         `json:"period" parquet:"period"`
	QuestionCount int            `json:"question_count" parquet:"question_count"`
	TopicCounts   map[string]int `json:"topic_counts" parquet:"-"`
}

// PreprocessResult is everything the preprocessing stage produces: the
// cleaned records, the three time aggregations and run metadata.
type PreprocessResult struct {
	Records   []QuestionRecord `json:"-"`
	Daily     []AggregateRow   `json:"-"`
	Weekly    []AggregateRow   `json:"-"`
	Monthly   []AggregateRow   `json:"-"`
	Metadata  PreprocessMeta   `json:"metadata"`
	TopicHits map[string]int   `json:"questions_per_topic"`
}

// PreprocessMeta is the metadata JSON written next to the aggregate CSVs.
type PreprocessMeta struct {
	Timestamp         string `json:"preprocessing_timestamp"`
	TotalQuestions    int    `json:"total_questions"`
	DuplicatesRemoved int    `json:"duplicates_removed"`
	MissingRemoved    int    `json:"missing_removed"`
	Uncategorized     int    `json:"uncategorized"`
	DateStart         string `json:"date_range_start"`
	DateEnd           string `json:"date_range_end"`
}
