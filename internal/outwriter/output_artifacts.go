package outwriter

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/datakit/wefarm/internal/contract"
	"github.com/datakit/wefarm/schema"
)

// Artifact writers for the pipeline's intermediate files. These are not
// dispatched on the output mode: downstream stages read them back in a
// fixed format.

// WriteWeatherCSV writes one country's weather series to
// weather_<country>.csv under dir. Missing readings stay blank.
func WriteWeatherCSV(dir, country string, series map[schema.WeatherParameter]schema.TimeSeries, loc schema.Location) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("weather_%s.csv", country))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create weather file: %w", err)
	}
	defer func() { _ = f.Close() }()

	params := make([]schema.WeatherParameter, 0, len(series))
	for p := range series {
		params = append(params, p)
	}
	sort.Slice(params, func(i, j int) bool { return params[i] < params[j] })

	header := []string{"date"}
	for _, p := range params {
		header = append(header, string(p))
	}
	header = append(header, "latitude", "longitude")

	days := unionDays(series)
	err = writeCSVWithHeader(f, header, func(csvWriter *csv.Writer) error {
		for _, day := range days {
			record := []string{day}
			for _, p := range params {
				cell := ""
				if d, err := contract.ParseDay(day); err == nil {
					if v, ok := series[p].At(d); ok && !math.IsNaN(v) {
						cell = strconv.FormatFloat(v, 'g', -1, 64)
					}
				}
				record = append(record, cell)
			}
			record = append(record,
				strconv.FormatFloat(loc.Latitude, 'g', -1, 64),
				strconv.FormatFloat(loc.Longitude, 'g', -1, 64))
			if err := csvWriter.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

// unionDays collects every day present in any series, sorted ascending.
func unionDays(series map[schema.WeatherParameter]schema.TimeSeries) []string {
	seen := make(map[string]struct{})
	for _, s := range series {
		for _, obs := range s.Points() {
			seen[contract.FormatDay(obs.Date)] = struct{}{}
		}
	}
	days := make([]string, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Strings(days)
	return days
}

// WriteAggregateCSV writes one period aggregation to path. Topic columns
// come out as <topic>_count in sorted topic order.
func WriteAggregateCSV(path string, rows []schema.AggregateRow, topics []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create aggregate file: %w", err)
	}
	defer func() { _ = f.Close() }()

	sorted := make([]string, len(topics))
	copy(sorted, topics)
	sort.Strings(sorted)

	header := []string{"date", "question_count"}
	for _, topic := range sorted {
		header = append(header, topic+"_count")
	}

	return writeCSVWithHeader(f, header, func(csvWriter *csv.Writer) error {
		for _, row := range rows {
			record := []string{row.Period, strconv.Itoa(row.QuestionCount)}
			for _, topic := range sorted {
				record = append(record, strconv.Itoa(row.TopicCounts[topic]))
			}
			if err := csvWriter.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}

// WriteMetadataJSON writes a metadata document next to a data artifact.
func WriteMetadataJSON(path string, data any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create metadata file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return writeJSON(f, data)
}

// WriteClassifiedSampleCSV writes the classified sample rows to path.
func WriteClassifiedSampleCSV(path string, sample []schema.ClassifiedQuestion) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create sample file: %w", err)
	}
	defer func() { _ = f.Close() }()

	header := []string{"question_content", "classification", "specific_crops", "question_user_country_code", "question_language"}
	return writeCSVWithHeader(f, header, func(csvWriter *csv.Writer) error {
		for _, q := range sample {
			record := []string{
				q.Text,
				string(q.Class),
				strings.Join(q.Crops, ";"),
				q.Country,
				q.Language,
			}
			if err := csvWriter.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}
