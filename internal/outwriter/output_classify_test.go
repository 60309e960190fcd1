package outwriter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/datakit/wefarm/internal/contract"
	"github.com/datakit/wefarm/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleClassifySummary() schema.ClassifySummary {
	return schema.ClassifySummary{
		Strategy:       "keyword",
		TotalQuestions: 100,
		ElapsedSeconds: 0.5,
		PerSecond:      200,
		Distribution: map[schema.Classification]int{
			schema.CropSpecific: 40,
			schema.General:      30,
			schema.Mixed:        10,
			schema.Unknown:      20,
		},
		Percentages: map[schema.Classification]float64{
			schema.CropSpecific: 40,
			schema.General:      30,
			schema.Mixed:        10,
			schema.Unknown:      20,
		},
		TopCrops: map[string]int{"maize": 25, "beans": 25, "tomato": 5},
	}
}

// TestWriteClassifySummaryCSV emits one row per class in declaration order.
func TestWriteClassifySummaryCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classify.csv")
	cfg := &contract.Config{Output: schema.CSVOut, OutputFile: path, Precision: 1}

	require.NoError(t, WriteClassifySummary(sampleClassifySummary(), cfg, 0))

	rows := readCSV(t, path)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"classification", "count", "percent"}, rows[0])
	assert.Equal(t, []string{"crop_specific", "40", "40.0"}, rows[1])
	assert.Equal(t, []string{"unknown", "20", "20.0"}, rows[4])
}

// TestWriteClassifySummaryText sorts top crops by count then name.
func TestWriteClassifySummaryText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classify.txt")
	cfg := &contract.Config{Output: schema.TextOut, OutputFile: path, Precision: 1}

	require.NoError(t, WriteClassifySummary(sampleClassifySummary(), cfg, 0))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	beansIdx := strings.Index(text, "beans: 25")
	maizeIdx := strings.Index(text, "maize: 25")
	tomatoIdx := strings.Index(text, "tomato: 5")
	require.GreaterOrEqual(t, beansIdx, 0)
	assert.Less(t, beansIdx, maizeIdx, "equal counts order by name")
	assert.Less(t, maizeIdx, tomatoIdx, "higher counts come first")
	assert.Contains(t, text, "Classified 100 questions in 0.5s (200.0 q/s)")
}

// TestWriteStrategyComparison covers the CSV and JSON renderings.
func TestWriteStrategyComparison(t *testing.T) {
	comparison := schema.StrategyComparison{
		ALabel: "keyword",
		BLabel: "llm",
		Rows: []schema.ComparisonRow{
			{Metric: "Questions Analyzed", A: "100", B: "100"},
			{Metric: "Cost (USD)", A: "$0.00", B: "$1.25"},
		},
	}

	csvPath := filepath.Join(t.TempDir(), "compare.csv")
	cfg := &contract.Config{Output: schema.CSVOut, OutputFile: csvPath}
	require.NoError(t, WriteStrategyComparison(comparison, cfg))

	rows := readCSV(t, csvPath)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"metric", "keyword", "llm"}, rows[0])
	assert.Equal(t, []string{"Cost (USD)", "$0.00", "$1.25"}, rows[2])

	jsonPath := filepath.Join(t.TempDir(), "compare.json")
	cfg = &contract.Config{Output: schema.JSONOut, OutputFile: jsonPath}
	require.NoError(t, WriteStrategyComparison(comparison, cfg))

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"option_a_label": "keyword"`)
}
