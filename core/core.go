// Package core has the numeric pipeline and the per-command executors.
package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/datakit/wefarm/internal/contract"
	"github.com/datakit/wefarm/internal/loader"
	"github.com/datakit/wefarm/internal/nasapower"
	"github.com/datakit/wefarm/internal/outwriter"
	"github.com/datakit/wefarm/internal/parquet"
	"github.com/datakit/wefarm/schema"
)

// questionDatasetFile is the raw export every question stage reads.
const questionDatasetFile = "wefarm_dataset.csv"

// fetchTimeout bounds one POWER API request.
const fetchTimeout = 60 * time.Second

// ExecuteFetch downloads daily weather for every configured location,
// writing per-country CSVs plus metadata. Ranges already in the observation
// cache skip the API; fetched ranges are cached for the next run.
func ExecuteFetch(ctx context.Context, cfg *contract.Config, store contract.ObservationStore) error {
	outwriter.LogStageHeader("fetch", cfg)
	if err := os.MkdirAll(cfg.RawDir(), 0o755); err != nil {
		return fmt.Errorf("create raw dir: %w", err)
	}

	client := nasapower.NewClient(fetchTimeout)
	locations := schema.FetchLocations()
	for i, loc := range locations {
		series, fromCache, err := fetchCountry(ctx, cfg, client, store, loc)
		if err != nil {
			return err
		}

		path, err := outwriter.WriteWeatherCSV(cfg.RawDir(), loc.Country, series, loc)
		if err != nil {
			return err
		}
		days := 0
		for _, s := range series {
			if s.Len() > days {
				days = s.Len()
			}
		}
		source := "api"
		if fromCache {
			source = "cache"
		}
		outwriter.LogStep("⬇️  %s (%s): %d days from %s → %s", loc.Country, loc.Place, days, source, path)

		meta := map[string]any{
			"country":            loc.Country,
			"location":           loc.Place,
			"latitude":           loc.Latitude,
			"longitude":          loc.Longitude,
			"start_date":         cfg.FetchStart.Format(contract.CompactDay),
			"end_date":           cfg.FetchEnd.Format(contract.CompactDay),
			"parameters":         schema.AllWeatherParameters,
			"source":             source,
			"download_timestamp": time.Now().Format(contract.DateTimeFormat),
			"total_days":         days,
		}
		metaPath := filepath.Join(cfg.RawDir(), fmt.Sprintf("weather_%s_metadata.json", loc.Country))
		if err := outwriter.WriteMetadataJSON(metaPath, meta); err != nil {
			return err
		}

		// The API asks for a fixed delay between point requests.
		if !fromCache && i < len(locations)-1 {
			select {
			case <-time.After(cfg.FetchDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return nil
}

// fetchCountry returns one country's series, from cache when every
// parameter is already present for the window.
func fetchCountry(ctx context.Context, cfg *contract.Config, client *nasapower.Client, store contract.ObservationStore, loc schema.Location) (map[schema.WeatherParameter]schema.TimeSeries, bool, error) {
	cached := make(map[schema.WeatherParameter]schema.TimeSeries, len(schema.AllWeatherParameters))
	complete := store != nil
	if store != nil {
		for _, param := range schema.AllWeatherParameters {
			s, ok, err := store.GetSeries(loc.Country, param, cfg.FetchStart, cfg.FetchEnd)
			if err != nil {
				return nil, false, err
			}
			if !ok {
				complete = false
				break
			}
			cached[param] = s
		}
	}
	if complete && len(cached) == len(schema.AllWeatherParameters) {
		return cached, true, nil
	}

	series, err := client.Daily(ctx, loc, cfg.FetchStart, cfg.FetchEnd, schema.AllWeatherParameters)
	if err != nil {
		return nil, false, err
	}
	if store != nil {
		for param, s := range series {
			if err := store.PutSeries(loc.Country, param, s); err != nil {
				contract.LogWarn("Cache write failed", err)
				break
			}
		}
	}
	return series, false, nil
}

// ExecutePreprocess cleans the raw question export, categorizes it and
// writes the daily, weekly and monthly aggregate CSVs plus metadata.
func ExecutePreprocess(cfg *contract.Config) error {
	outwriter.LogStageHeader("preprocess", cfg)

	records, err := loader.LoadQuestions(filepath.Join(cfg.RawDir(), questionDatasetFile), cfg.RowLimit)
	if err != nil {
		return err
	}
	outwriter.LogStep("📥 Loaded %d question rows", len(records))

	result := Preprocess(records)
	outwriter.LogStep("🧹 Kept %d questions (%d duplicates, %d missing fields removed)",
		result.Metadata.TotalQuestions, result.Metadata.DuplicatesRemoved, result.Metadata.MissingRemoved)
	outwriter.LogStep("🏷️  Uncategorized: %d", result.Metadata.Uncategorized)

	if err := os.MkdirAll(cfg.ProcessedDir(), 0o755); err != nil {
		return fmt.Errorf("create processed dir: %w", err)
	}

	topics := make([]string, 0, len(result.TopicHits))
	for topic := range result.TopicHits {
		topics = append(topics, topic)
	}
	for period, rows := range map[string][]schema.AggregateRow{
		"daily":   result.Daily,
		"weekly":  result.Weekly,
		"monthly": result.Monthly,
	} {
		path := filepath.Join(cfg.ProcessedDir(), fmt.Sprintf("questions_%s.csv", period))
		if err := outwriter.WriteAggregateCSV(path, rows, topics); err != nil {
			return err
		}
		outwriter.LogStep("🗓️  %s: %d periods → %s", period, len(rows), path)
	}

	if cfg.Output == schema.ParquetOut {
		path := filepath.Join(cfg.ProcessedDir(), "questions_daily.parquet")
		if err := parquet.WriteAggregatesParquet(result.Daily, path); err != nil {
			return err
		}
		outwriter.LogStep("🧱 Parquet export → %s", path)
	}

	metaPath := filepath.Join(cfg.ProcessedDir(), "preprocess_metadata.json")
	return outwriter.WriteMetadataJSON(metaPath, result.Metadata)
}

// BuildCorrelationReport loads the processed inputs and runs the full
// correlation pipeline: zero-lag matrix, lag sweep, event detection and
// impact analysis.
func BuildCorrelationReport(cfg *contract.Config) (schema.CorrelationReport, error) {
	var report schema.CorrelationReport

	questions, err := loader.LoadDailyAggregates(filepath.Join(cfg.ProcessedDir(), "questions_daily.csv"))
	if err != nil {
		return report, err
	}
	byCountry, err := loader.LoadWeatherDir(cfg.RawDir())
	if err != nil {
		return report, err
	}
	weather := MergeWeather(byCountry)
	outwriter.LogStep("📥 Loaded %d question series and weather for %d countries", len(questions), len(byCountry))

	report.PearsonCorrelations = PearsonMatrix(questions, weather)
	outwriter.LogStep("📈 Zero-lag Pearson matrix: %d question variables", len(report.PearsonCorrelations))

	report.LagCorrelations = LagSweepMatrix(questions, weather, cfg.MaxLag)
	outwriter.LogStep("🔁 Lag sweep complete (0..%d days)", cfg.MaxLag)

	events := DetectEvents(weather, DetectorConfig{
		RainThreshold: cfg.RainThreshold,
		DroughtSum:    cfg.DroughtSum,
		DroughtWindow: cfg.DroughtWindow,
		HeatThreshold: cfg.HeatThreshold,
		ColdThreshold: cfg.ColdThreshold,
		MinRunLength:  cfg.MinRunLength,
	})
	report.WeatherEvents = CountEvents(events)
	outwriter.LogStep("🌩️  Detected %d weather event days", len(events))

	report.EventImpact = AnalyzeImpact(questions["question_count"], events, cfg.ImpactWindow)
	outwriter.LogStep("🧮 Impact analysis across ±%d day windows", cfg.ImpactWindow)

	report.AnalysisTimestamp = time.Now().Format(contract.DateTimeFormat)
	return report, nil
}

// ExecuteCorrelate runs the correlation pipeline and prints the report.
func ExecuteCorrelate(cfg *contract.Config, ow *outwriter.OutWriter) error {
	start := time.Now()
	outwriter.LogStageHeader("correlate", cfg)

	report, err := BuildCorrelationReport(cfg)
	if err != nil {
		return err
	}
	return ow.WriteCorrelation(report, cfg, time.Since(start))
}

// ExecuteLeaders runs the community-leader analysis and prints the results.
func ExecuteLeaders(cfg *contract.Config, ow *outwriter.OutWriter) error {
	start := time.Now()
	outwriter.LogStageHeader("leaders", cfg)

	records, err := loader.LoadQuestions(filepath.Join(cfg.RawDir(), questionDatasetFile), cfg.RowLimit)
	if err != nil {
		return err
	}
	outwriter.LogStep("📥 Loaded %d question rows", len(records))

	result := AnalyzeLeaders(records, cfg.LeaderLimit, cfg.RepeatMin)
	outwriter.LogStep("🏆 Ranked %d leaders out of %d responders",
		len(result.Leaders), result.Summary.TotalResponders)
	return ow.WriteLeaders(result, cfg, time.Since(start))
}

// ExecuteClassify classifies every question by keyword, persists the
// summary and sample artifacts, and prints the summary.
func ExecuteClassify(cfg *contract.Config, ow *outwriter.OutWriter) error {
	start := time.Now()
	outwriter.LogStageHeader("classify", cfg)

	records, err := loader.LoadQuestions(filepath.Join(cfg.RawDir(), questionDatasetFile), cfg.RowLimit)
	if err != nil {
		return err
	}
	outwriter.LogStep("📥 Loaded %d question rows", len(records))

	sample, summary := ClassifyAll(records, cfg.SampleLimit)
	outwriter.LogStep("🔖 Classified %d questions in %.2fs", summary.TotalQuestions, summary.ElapsedSeconds)

	if err := os.MkdirAll(cfg.ProcessedDir(), 0o755); err != nil {
		return fmt.Errorf("create processed dir: %w", err)
	}
	summaryPath := filepath.Join(cfg.ProcessedDir(), "classify_summary.json")
	if err := outwriter.WriteMetadataJSON(summaryPath, summary); err != nil {
		return err
	}
	samplePath := filepath.Join(cfg.ProcessedDir(), "classified_sample.csv")
	if err := outwriter.WriteClassifiedSampleCSV(samplePath, sample); err != nil {
		return err
	}
	outwriter.LogStep("💾 Summary → %s, sample (%d rows) → %s", summaryPath, len(sample), samplePath)

	if cfg.Output == schema.ParquetOut {
		path := filepath.Join(cfg.ProcessedDir(), "classified_sample.parquet")
		if err := parquet.WriteClassifiedParquet(sample, path); err != nil {
			return err
		}
		outwriter.LogStep("🧱 Parquet export → %s", path)
	}

	return ow.WriteClassify(summary, cfg, time.Since(start))
}

// ExecuteCompare loads two classify summaries and prints the head-to-head
// comparison.
func ExecuteCompare(cfg *contract.Config, ow *outwriter.OutWriter) error {
	outwriter.LogStageHeader("compare", cfg)

	baseline, err := loader.LoadClassifySummary(cfg.BaselineSummary)
	if err != nil {
		return err
	}
	candidate, err := loader.LoadClassifySummary(cfg.CandidateSummary)
	if err != nil {
		return err
	}

	aLabel := labelForStrategy(baseline.Strategy, "Baseline")
	bLabel := labelForStrategy(candidate.Strategy, "Candidate")
	comparison := CompareStrategies(baseline, candidate, aLabel, bLabel)
	return ow.WriteComparison(comparison, cfg)
}

func labelForStrategy(strategy, fallback string) string {
	if strategy == "" {
		return fallback
	}
	return strategy
}
