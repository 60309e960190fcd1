//go:build basic

// Package integration contains integration tests for wefarm.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writePipelineFixtures lays out a small raw data directory: a question
// export plus one fetched weather CSV covering the same date range.
func writePipelineFixtures(t *testing.T, dataDir string) {
	t.Helper()
	rawDir := filepath.Join(dataDir, "raw")
	require.NoError(t, os.MkdirAll(rawDir, 0o755))

	texts := []string{
		"My maize has armyworm damage",
		"How much water does my shamba need",
		"Best price for beans at the market",
		"Hello my friend how are you",
	}
	var dataset strings.Builder
	dataset.WriteString("question_id,question_user_id,question_content,question_sent,question_topic,question_language,question_user_country_code\n")
	base := time.Date(2020, time.January, 1, 8, 0, 0, 0, time.UTC)
	for i := range 60 {
		sent := base.AddDate(0, 0, i%40).Format("2006-01-02 15:04:05")
		fmt.Fprintf(&dataset, "q%03d,u%02d,%s,%s,farming,en,ke\n", i, i%7, texts[i%len(texts)], sent)
	}
	require.NoError(t, os.WriteFile(filepath.Join(rawDir, "wefarm_dataset.csv"), []byte(dataset.String()), 0o644))

	var weather strings.Builder
	weather.WriteString("date,T2M,T2M_MAX,T2M_MIN,PRECTOTCORR,RH2M,latitude,longitude\n")
	for i := range 40 {
		day := base.AddDate(0, 0, i).Format("2006-01-02")
		tmax := 30.0
		if i >= 10 && i <= 14 {
			tmax = 37.0 // a five day heat wave
		}
		rain := 2.0
		if i == 20 {
			rain = 62.5 // one heavy rain day
		}
		fmt.Fprintf(&weather, "%s,%.1f,%.1f,%.1f,%.1f,%.1f,-1.2921,36.8219\n",
			day, 22.0+float64(i%5), tmax, 14.0+float64(i%3), rain, 65.0)
	}
	require.NoError(t, os.WriteFile(filepath.Join(rawDir, "weather_kenya.csv"), []byte(weather.String()), 0o644))
}

// TestWefarmPipeline runs preprocess and correlate end to end and checks
// the report document shape.
func TestWefarmPipeline(t *testing.T) {
	dataDir := t.TempDir()
	writePipelineFixtures(t, dataDir)

	err := runWefarmCommand(t, dataDir, "preprocess", dataDir, "--cache-backend", "none")
	require.NoError(t, err)

	// Preprocess leaves the three period aggregations behind.
	for _, name := range []string{"questions_daily.csv", "questions_weekly.csv", "questions_monthly.csv"} {
		_, err := os.Stat(filepath.Join(dataDir, "processed", name))
		assert.NoError(t, err, "%s should exist after preprocess", name)
	}

	reportPath := filepath.Join(dataDir, "report.json")
	err = runWefarmCommand(t, dataDir, "correlate", dataDir,
		"--cache-backend", "none", "--output", "json", "--output-file", reportPath)
	require.NoError(t, err)

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)

	var report map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &report))
	for _, key := range []string{
		"pearson_correlations",
		"lag_correlations",
		"weather_events",
		"event_impact",
		"analysis_timestamp",
	} {
		assert.Contains(t, report, key)
	}

	// The fixtures contain one heavy rain day and one heat wave.
	var counts map[string]int
	require.NoError(t, json.Unmarshal(report["weather_events"], &counts))
	assert.Equal(t, 1, counts["heavy_rain"])
	assert.Greater(t, counts["heat_wave"], 0)
}

// TestWefarmClassifyAndLeaders runs the question-only stages.
func TestWefarmClassifyAndLeaders(t *testing.T) {
	dataDir := t.TempDir()
	writePipelineFixtures(t, dataDir)

	err := runWefarmCommand(t, dataDir, "classify", dataDir, "--cache-backend", "none")
	require.NoError(t, err)
	for _, name := range []string{"classify_summary.json", "classified_sample.csv"} {
		_, err := os.Stat(filepath.Join(dataDir, "processed", name))
		assert.NoError(t, err, "%s should exist after classify", name)
	}

	err = runWefarmCommand(t, dataDir, "leaders", dataDir, "--cache-backend", "none", "--leader-limit", "5")
	require.NoError(t, err)
}
