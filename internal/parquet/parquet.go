// Package parquet provides data structures and functions for exporting
// classified questions and question aggregates to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"strings"

	"github.com/datakit/wefarm/schema"
	"github.com/parquet-go/parquet-go"
)

// ClassifiedRow is one classified question in the export.
type ClassifiedRow struct {
	// QuestionContent is the raw question text
	QuestionContent string `parquet:"question_content,snappy"`

	// Classification is the assigned class name
	Classification string `parquet:"classification,snappy"`

	// CropMatchCount is the number of crop keyword hits
	CropMatchCount int32 `parquet:"crop_match_count,snappy"`

	// GeneralMatchCount is the number of general keyword hits
	GeneralMatchCount int32 `parquet:"general_match_count,snappy"`

	// SpecificCrops is the semicolon-joined crop keyword list (nullable)
	SpecificCrops *string `parquet:"specific_crops,optional,snappy"`

	// CountryCode is the asker's country code (nullable)
	CountryCode *string `parquet:"question_user_country_code,optional,snappy"`

	// Language is the question language (nullable)
	Language *string `parquet:"question_language,optional,snappy"`
}

// AggregateRow is one period of the question aggregation in the export.
type AggregateRow struct {
	// Period is the day, ISO week or month label
	Period string `parquet:"period,snappy"`

	// QuestionCount is the total questions in the period
	QuestionCount int32 `parquet:"question_count,snappy"`

	// Topic is one topic keyword group
	Topic string `parquet:"topic,snappy"`

	// TopicCount is the questions matching the topic in the period
	TopicCount int32 `parquet:"topic_count,snappy"`
}

// WriteClassifiedParquet writes classified questions to a Parquet file.
func WriteClassifiedParquet(sample []schema.ClassifiedQuestion, outputPath string) error {
	rows := make([]ClassifiedRow, 0, len(sample))
	for _, q := range sample {
		row := ClassifiedRow{
			QuestionContent:   q.Text,
			Classification:    string(q.Class),
			CropMatchCount:    int32(q.CropMatches),
			GeneralMatchCount: int32(q.GeneralMatches),
		}
		if len(q.Crops) > 0 {
			crops := strings.Join(q.Crops, ";")
			row.SpecificCrops = &crops
		}
		if q.Country != "" {
			country := q.Country
			row.CountryCode = &country
		}
		if q.Language != "" {
			lang := q.Language
			row.Language = &lang
		}
		rows = append(rows, row)
	}
	return writeRows(rows, outputPath)
}

// WriteAggregatesParquet writes aggregate rows to a Parquet file, one
// record per (period, topic) pair.
func WriteAggregatesParquet(aggregates []schema.AggregateRow, outputPath string) error {
	var rows []AggregateRow
	for _, agg := range aggregates {
		if len(agg.TopicCounts) == 0 {
			rows = append(rows, AggregateRow{
				Period:        agg.Period,
				QuestionCount: int32(agg.QuestionCount),
			})
			continue
		}
		for topic, count := range agg.TopicCounts {
			rows = append(rows, AggregateRow{
				Period:        agg.Period,
				QuestionCount: int32(agg.QuestionCount),
				Topic:         topic,
				TopicCount:    int32(count),
			})
		}
	}
	return writeRows(rows, outputPath)
}

// writeRows writes any record slice using struct schema inference.
func writeRows[T any](rows []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}
