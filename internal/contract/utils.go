package contract

import (
	"fmt"
	"math"
	"os"

	"github.com/fatih/color"
)

// Significance label constants.
const (
	StrongValue      = "Strong"      // p < 0.01
	SignificantValue = "Significant" // p < 0.05
	WeakValue        = "Weak"        // p < 0.10
	NoneValue        = "None"        // everything else, including undefined
)

// Color variables for console output.
var (
	StrongColor      = color.New(color.FgGreen, color.Bold) // strong evidence against the null
	SignificantColor = color.New(color.FgGreen)             // conventional significance
	WeakColor        = color.New(color.FgYellow)            // suggestive only
	NoneColor        = color.New(color.FgWhite)             // no evidence / undefined
)

// GetPlainLabel returns a plain text significance label for a p-value.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(p float64) string {
	switch {
	case math.IsNaN(p):
		return NoneValue
	case p < 0.01:
		return StrongValue
	case p < SignificanceLevel:
		return SignificantValue
	case p < 0.10:
		return WeakValue
	default:
		return NoneValue
	}
}

// GetColorLabel returns a colored significance label for console output.
// It uses GetPlainLabel to determine the string, and then applies the color.
func GetColorLabel(p float64) string {
	text := GetPlainLabel(p)
	switch text {
	case StrongValue:
		return StrongColor.Sprint(text)
	case SignificantValue:
		return SignificantColor.Sprint(text)
	case WeakValue:
		return WeakColor.Sprint(text)
	default:
		return NoneColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// TruncateText shortens free text for table cells, preserving a trailing
// ellipsis marker when the text was cut.
func TruncateText(s string, maxLen int) string {
	if maxLen <= 3 || len(s) <= maxLen {
		if len(s) <= maxLen {
			return s
		}
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warning %s: %v\n", msg, err)
}
