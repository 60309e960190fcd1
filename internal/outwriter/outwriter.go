// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"time"

	"github.com/datakit/wefarm/internal/contract"
	"github.com/datakit/wefarm/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteCorrelation prints the correlation report using the configured output format.
func (ow *OutWriter) WriteCorrelation(report schema.CorrelationReport, cfg *contract.Config, duration time.Duration) error {
	return WriteCorrelationReport(report, cfg, duration)
}

// WriteLeaders prints community-leader results using the configured output format.
func (ow *OutWriter) WriteLeaders(result schema.LeadersResult, cfg *contract.Config, duration time.Duration) error {
	return WriteLeadersResult(result, cfg, duration)
}

// WriteClassify prints the classification summary using the configured output format.
func (ow *OutWriter) WriteClassify(summary schema.ClassifySummary, cfg *contract.Config, duration time.Duration) error {
	return WriteClassifySummary(summary, cfg, duration)
}

// WriteComparison prints the strategy comparison using the configured output format.
func (ow *OutWriter) WriteComparison(comparison schema.StrategyComparison, cfg *contract.Config) error {
	return WriteStrategyComparison(comparison, cfg)
}

// LogStageHeader prints a concise, 2-line header for each pipeline stage.
func LogStageHeader(stage string, cfg *contract.Config) {
	fmt.Printf("🌦️  Stage: %s (data dir: %s)\n", stage, cfg.DataDir)
	fmt.Printf("📅 Window: %s → %s\n",
		cfg.FetchStart.Format(contract.ISODay), cfg.FetchEnd.Format(contract.ISODay))
}

// LogStep prints one progress line from a pipeline stage.
func LogStep(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
}
