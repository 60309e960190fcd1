package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/datakit/wefarm/internal/contract"
	"github.com/datakit/wefarm/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteCorrelationReport outputs the combined correlation results,
// dispatching based on the output format configured.
func WriteCorrelationReport(report schema.CorrelationReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFloatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCorrelationCSV(w, report, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCorrelationTables(w, report, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

// writeCorrelationCSV flattens the zero-lag and optimal-lag results into one
// row per variable pair.
func writeCorrelationCSV(w io.Writer, report schema.CorrelationReport, fmtFloat func(float64) string) error {
	header := []string{"kind", "question_variable", "weather_variable", "lag", "correlation", "p_value", "n", "significant"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, qVar := range sortedMapKeys(report.PearsonCorrelations) {
			row := report.PearsonCorrelations[qVar]
			for _, wVar := range sortedMapKeys(row) {
				pair := row[wVar]
				record := []string{
					"pearson", qVar, wVar, "0",
					fmtFloat(float64(pair.Correlation)),
					fmtFloat(float64(pair.PValue)),
					strconv.Itoa(pair.N),
					strconv.FormatBool(pair.Significant),
				}
				if err := csvWriter.Write(record); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
		}
		for _, qVar := range sortedMapKeys(report.LagCorrelations) {
			row := report.LagCorrelations[qVar]
			for _, wVar := range sortedMapKeys(row) {
				sweep := row[wVar]
				record := []string{
					"optimal_lag", qVar, wVar,
					strconv.Itoa(sweep.OptimalLag),
					fmtFloat(float64(sweep.OptimalCorrelation)),
					fmtFloat(float64(sweep.OptimalPValue)),
					"", "",
				}
				if err := csvWriter.Write(record); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
		}
		return nil
	})
}

// writeCorrelationTables renders the human-readable view: the zero-lag
// matrix, the optimal lags, event counts and the impact summary.
func writeCorrelationTables(w io.Writer, report schema.CorrelationReport, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	label := contract.GetPlainLabel
	if cfg.UseColors {
		label = contract.GetColorLabel
	}

	fmt.Fprintln(w, "Zero-lag Pearson correlations:")
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Question", "Weather", "R", "P-Value", "N", "Label"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})
	var data [][]string
	for _, qVar := range sortedMapKeys(report.PearsonCorrelations) {
		row := report.PearsonCorrelations[qVar]
		for _, wVar := range sortedMapKeys(row) {
			pair := row[wVar]
			data = append(data, []string{
				qVar, wVar,
				fmtFloat(float64(pair.Correlation)),
				fmtFloat(float64(pair.PValue)),
				strconv.Itoa(pair.N),
				label(float64(pair.PValue)),
			})
		}
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintln(w, "Optimal lags:")
	lagTable := tablewriter.NewWriter(w)
	lagTable.Header([]string{"Question", "Weather", "Lag", "R", "P-Value", "Label"})
	lagTable.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})
	data = data[:0]
	for _, qVar := range sortedMapKeys(report.LagCorrelations) {
		row := report.LagCorrelations[qVar]
		for _, wVar := range sortedMapKeys(row) {
			sweep := row[wVar]
			data = append(data, []string{
				qVar, wVar,
				strconv.Itoa(sweep.OptimalLag),
				fmtFloat(float64(sweep.OptimalCorrelation)),
				fmtFloat(float64(sweep.OptimalPValue)),
				label(float64(sweep.OptimalPValue)),
			})
		}
	}
	if err := lagTable.Bulk(data); err != nil {
		return err
	}
	if err := lagTable.Render(); err != nil {
		return err
	}

	fmt.Fprintln(w, "Weather events:")
	for _, cat := range schema.AllEventCategories {
		fmt.Fprintf(w, "  %s: %d\n", cat, report.WeatherEvents[cat])
	}

	fmt.Fprintln(w, "Event impact on question volume:")
	for _, cat := range sortedCategories(report.EventImpact) {
		impact := report.EventImpact[cat]
		fmt.Fprintf(w, "  %s:\n", cat)
		writeGroupLine(w, "before", impact.Before, fmtFloat)
		writeGroupLine(w, "during", impact.During, fmtFloat)
		writeGroupLine(w, "after", impact.After, fmtFloat)
		if tt := impact.TTestBefore; tt != nil {
			fmt.Fprintf(w, "    t-test during vs before: t=%s p=%s (%s)\n",
				fmtFloat(float64(tt.TStatistic)), fmtFloat(float64(tt.PValue)), label(float64(tt.PValue)))
		}
	}

	fmt.Fprintf(w, "Analysis completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend)
	return nil
}

func writeGroupLine(w io.Writer, name string, stats *schema.GroupStats, fmtFloat func(float64) string) {
	if stats == nil {
		return
	}
	fmt.Fprintf(w, "    %s: mean=%s std=%s n=%d\n",
		name, fmtFloat(float64(stats.Mean)), fmtFloat(float64(stats.Std)), stats.Count)
}

func sortedMapKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedCategories(m map[schema.EventCategory]schema.ImpactSummary) []schema.EventCategory {
	keys := make([]schema.EventCategory, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
