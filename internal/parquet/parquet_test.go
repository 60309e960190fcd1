package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/datakit/wefarm/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifiedRowStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	pqSchema := parquet.SchemaOf(new(ClassifiedRow))
	require.NotNil(t, pqSchema)

	expectedColumns := []string{
		"question_content",
		"classification",
		"crop_match_count",
		"general_match_count",
		"specific_crops",
		"question_user_country_code",
		"question_language",
	}

	for _, colName := range expectedColumns {
		col, ok := pqSchema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestAggregateRowStructTags(t *testing.T) {
	pqSchema := parquet.SchemaOf(new(AggregateRow))
	require.NotNil(t, pqSchema)

	expectedColumns := []string{
		"period",
		"question_count",
		"topic",
		"topic_count",
	}

	for _, colName := range expectedColumns {
		col, ok := pqSchema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestWriteClassifiedParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "classified_sample.parquet")

	sample := []schema.ClassifiedQuestion{
		{
			Text:        "My maize seedlings look pale",
			Class:       schema.CropSpecific,
			CropMatches: 1,
			Crops:       []string{"maize"},
			Country:     "ke",
			Language:    "en",
		},
		{
			Text:           "What is the best irrigation schedule?",
			Class:          schema.General,
			GeneralMatches: 1,
		},
	}

	err := WriteClassifiedParquet(sample, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	// Read back and verify data
	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[ClassifiedRow](file)
	defer reader.Close()

	readData := make([]ClassifiedRow, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	require.Equal(t, len(sample), n, "Should read all records")

	assert.Equal(t, "crop_specific", readData[0].Classification)
	require.NotNil(t, readData[0].SpecificCrops)
	assert.Equal(t, "maize", *readData[0].SpecificCrops)
	assert.Equal(t, "general", readData[1].Classification)
	assert.Nil(t, readData[1].SpecificCrops, "Empty crop list should stay null")
	assert.Nil(t, readData[1].CountryCode, "Blank country should stay null")
}

func TestWriteAggregatesParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "questions_daily.parquet")

	aggregates := []schema.AggregateRow{
		{Period: "2016-05-02", QuestionCount: 3, TopicCounts: map[string]int{"pest": 2, "water": 1}},
		{Period: "2016-05-03", QuestionCount: 1},
	}

	err := WriteAggregatesParquet(aggregates, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[AggregateRow](file)
	defer reader.Close()

	readData := make([]AggregateRow, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	// One record per (period, topic) pair plus one for the topicless period.
	require.Equal(t, 3, n, "Should read all records")

	byTopic := make(map[string]AggregateRow)
	for _, row := range readData[:n] {
		byTopic[row.Period+"/"+row.Topic] = row
	}
	assert.Equal(t, int32(2), byTopic["2016-05-02/pest"].TopicCount)
	assert.Equal(t, int32(1), byTopic["2016-05-02/water"].TopicCount)
	assert.Equal(t, int32(1), byTopic["2016-05-03/"].QuestionCount)
}
