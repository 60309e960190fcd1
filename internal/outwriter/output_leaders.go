package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/datakit/wefarm/internal/contract"
	"github.com/datakit/wefarm/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteLeadersResult outputs the community-leader analysis, dispatching
// based on the output format configured.
func WriteLeadersResult(result schema.LeadersResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFloatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeLeadersCSV(w, result, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeLeadersTable(w, result, fmtFloat, duration)
		}, "Wrote table")
	}
}

// writeLeadersCSV writes the leaderboard, one responder per row.
func writeLeadersCSV(w io.Writer, result schema.LeadersResult, fmtFloat func(float64) string) error {
	header := []string{
		"rank", "user_id", "total_responses", "avg_response_length",
		"unique_topics", "primary_topic", "unique_countries", "primary_country",
		"unique_askers_helped", "user_gender",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, leader := range result.Leaders {
			record := []string{
				strconv.Itoa(i + 1),
				leader.UserID,
				strconv.Itoa(leader.TotalResponses),
				fmtFloat(leader.AvgResponseLength),
				strconv.Itoa(leader.UniqueTopics),
				leader.PrimaryTopic,
				strconv.Itoa(leader.UniqueCountries),
				leader.PrimaryCountry,
				strconv.Itoa(leader.UniqueAskers),
				leader.Gender,
			}
			if err := csvWriter.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}

// writeLeadersTable renders the human-readable leaderboard plus summary.
func writeLeadersTable(w io.Writer, result schema.LeadersResult, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "User", "Responses", "Avg Len", "Topics", "Primary Topic", "Askers Helped"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	maxText := getMaxTableTextWidth()
	for i, leader := range result.Leaders {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			leader.UserID,
			strconv.Itoa(leader.TotalResponses),
			fmtFloat(leader.AvgResponseLength),
			strconv.Itoa(leader.UniqueTopics),
			contract.TruncateText(leader.PrimaryTopic, maxText),
			strconv.Itoa(leader.UniqueAskers),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	s := result.Summary
	fmt.Fprintf(w, "Showing top %d of %d responders (%s%% of %d responses)\n",
		len(result.Leaders), s.TotalResponders, fmtFloat(s.TopShare), s.TotalResponses)
	fmt.Fprintf(w, "Repeat askers above threshold: %d\n", s.RepeatAskerCount)
	fmt.Fprintf(w, "Analysis completed in %v\n", duration)
	return nil
}
