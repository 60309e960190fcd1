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

// WriteClassifySummary outputs the classification run summary, dispatching
// based on the output format configured.
func WriteClassifySummary(summary schema.ClassifySummary, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFloatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, summary)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeClassifyCSV(w, summary, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeClassifyTable(w, summary, fmtFloat, duration)
		}, "Wrote table")
	}
}

// writeClassifyCSV writes the class distribution, one class per row.
func writeClassifyCSV(w io.Writer, summary schema.ClassifySummary, fmtFloat func(float64) string) error {
	header := []string{"classification", "count", "percent"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, class := range schema.AllClassifications {
			record := []string{
				string(class),
				strconv.Itoa(summary.Distribution[class]),
				fmtFloat(summary.Percentages[class]),
			}
			if err := csvWriter.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}

// writeClassifyTable renders the distribution plus top crops.
func writeClassifyTable(w io.Writer, summary schema.ClassifySummary, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Classification", "Count", "Percent"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, class := range schema.AllClassifications {
		data = append(data, []string{
			string(class),
			strconv.Itoa(summary.Distribution[class]),
			fmtFloat(summary.Percentages[class]) + "%",
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintln(w, "Top crops mentioned:")
	for _, crop := range sortedByCount(summary.TopCrops) {
		fmt.Fprintf(w, "  %s: %d\n", crop, summary.TopCrops[crop])
	}

	fmt.Fprintf(w, "Classified %d questions in %ss (%s q/s)\n",
		summary.TotalQuestions, fmtFloat(summary.ElapsedSeconds), fmtFloat(summary.PerSecond))
	fmt.Fprintf(w, "Run completed in %v\n", duration)
	return nil
}

// sortedByCount orders keys by descending count, then name.
func sortedByCount(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if m[keys[i]] != m[keys[j]] {
			return m[keys[i]] > m[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}

// WriteStrategyComparison outputs the head-to-head comparison table.
func WriteStrategyComparison(comparison schema.StrategyComparison, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, comparison)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"metric", comparison.ALabel, comparison.BLabel}
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				for _, row := range comparison.Rows {
					if err := csvWriter.Write([]string{row.Metric, row.A, row.B}); err != nil {
						return fmt.Errorf("failed to write CSV row: %w", err)
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			table := tablewriter.NewWriter(w)
			table.Header([]string{"Metric", comparison.ALabel, comparison.BLabel})
			var data [][]string
			for _, row := range comparison.Rows {
				data = append(data, []string{row.Metric, row.A, row.B})
			}
			if err := table.Bulk(data); err != nil {
				return err
			}
			return table.Render()
		}, "Wrote table")
	}
}
