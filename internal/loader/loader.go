// Package loader reads the flat-file inputs of the pipeline: raw question
// exports, per-country weather CSVs and the daily aggregate CSVs written by
// the preprocessing stage. Unparseable numerics and the -999 sentinel become
// missing values here, before any statistic sees them.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/datakit/wefarm/internal/contract"
	"github.com/datakit/wefarm/schema"
)

// missingSentinel marks absent readings in the POWER exports.
const missingSentinel = -999

// MissingInputError is returned when a required input file is absent. It
// names the command that produces the file.
type MissingInputError struct {
	Path         string
	Prerequisite string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing input file %s: run %q first", e.Path, e.Prerequisite)
}

// LoadDailyAggregates reads the daily question aggregate CSV into one series
// per count column. The first column is the day, every other column becomes
// a series named after its header.
func LoadDailyAggregates(path string) (map[string]schema.TimeSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingInputError{Path: path, Prerequisite: "wefarm preprocess"}
		}
		return nil, fmt.Errorf("open daily aggregates: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read daily aggregates header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("daily aggregates %s: want a date column plus count columns", path)
	}

	obs := make(map[string][]schema.Observation, len(header)-1)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read daily aggregates row: %w", err)
		}
		day, err := contract.ParseDay(row[0])
		if err != nil {
			continue
		}
		for i := 1; i < len(row) && i < len(header); i++ {
			v, ok := parseValue(row[i])
			if !ok {
				continue
			}
			name := header[i]
			obs[name] = append(obs[name], schema.Observation{Date: day, Value: v})
		}
	}

	out := make(map[string]schema.TimeSeries, len(obs))
	for name, points := range obs {
		out[name] = schema.NewTimeSeries(points)
	}
	return out, nil
}

// LoadWeatherCSV reads one country's weather CSV into one series per
// parameter column. Sentinel and unparseable readings are dropped.
func LoadWeatherCSV(path string) (map[schema.WeatherParameter]schema.TimeSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingInputError{Path: path, Prerequisite: "wefarm fetch"}
		}
		return nil, fmt.Errorf("open weather file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read weather header: %w", err)
	}

	known := make(map[int]schema.WeatherParameter)
	for i, name := range header {
		for _, p := range schema.AllWeatherParameters {
			if name == string(p) {
				known[i] = p
			}
		}
	}
	if len(known) == 0 {
		return nil, fmt.Errorf("weather file %s: no recognized parameter columns", path)
	}

	obs := make(map[schema.WeatherParameter][]schema.Observation, len(known))
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read weather row: %w", err)
		}
		day, err := contract.ParseDay(row[0])
		if err != nil {
			continue
		}
		for i, p := range known {
			if i >= len(row) {
				continue
			}
			v, ok := parseValue(row[i])
			if !ok {
				continue
			}
			obs[p] = append(obs[p], schema.Observation{Date: day, Value: v})
		}
	}

	out := make(map[schema.WeatherParameter]schema.TimeSeries, len(obs))
	for p, points := range obs {
		out[p] = schema.NewTimeSeries(points)
	}
	return out, nil
}

// LoadWeatherDir loads every weather_<country>.csv under dir, keyed by
// country. Metadata JSON files are ignored.
func LoadWeatherDir(dir string) (map[string]map[schema.WeatherParameter]schema.TimeSeries, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "weather_*.csv"))
	if err != nil {
		return nil, fmt.Errorf("scan weather dir: %w", err)
	}
	sort.Strings(matches)

	out := make(map[string]map[schema.WeatherParameter]schema.TimeSeries)
	for _, path := range matches {
		base := strings.TrimSuffix(filepath.Base(path), ".csv")
		country := strings.TrimPrefix(base, "weather_")
		if strings.Contains(country, "metadata") {
			continue
		}
		series, err := LoadWeatherCSV(path)
		if err != nil {
			return nil, err
		}
		out[country] = series
	}
	if len(out) == 0 {
		return nil, &MissingInputError{
			Path:         filepath.Join(dir, "weather_*.csv"),
			Prerequisite: "wefarm fetch",
		}
	}
	return out, nil
}

// LoadQuestions reads the raw question export. Columns are matched by
// header name, so extra columns and arbitrary order are fine. rowLimit
// bounds the rows read; zero reads everything. Rows whose timestamp does
// not parse keep a zero Sent and are dropped during cleaning.
func LoadQuestions(path string, rowLimit int) ([]schema.QuestionRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingInputError{Path: path, Prerequisite: "download the question dataset"}
		}
		return nil, fmt.Errorf("open question file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read question header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"question_content", "question_sent"} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("question file %s: missing column %q", path, required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []schema.QuestionRecord
	for {
		if rowLimit > 0 && len(records) >= rowLimit {
			break
		}
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read question row: %w", err)
		}
		rec := schema.QuestionRecord{
			QuestionID:      field(row, "question_id"),
			UserID:          field(row, "question_user_id"),
			Content:         field(row, "question_content"),
			Topic:           field(row, "question_topic"),
			Language:        field(row, "question_language"),
			CountryCode:     field(row, "question_user_country_code"),
			ResponseUserID:  field(row, "response_user_id"),
			ResponseContent: field(row, "response_content"),
			ResponseTopic:   field(row, "response_topic"),
			ResponseCountry: field(row, "response_user_country_code"),
			ResponseGender:  field(row, "response_user_gender"),
		}
		if raw := field(row, "question_sent"); raw != "" {
			if t, err := contract.ParseTimestamp(raw); err == nil {
				rec.Sent = t
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// parseValue parses a numeric cell, reporting false for blanks, the missing
// sentinel, NaN and anything unparseable.
func parseValue(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || v == missingSentinel {
		return 0, false
	}
	return v, true
}
