// Package report renders the analysis summary in its fixed plain-text
// layout and persists it to disk.
package report

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/tallyware/tally/internal/dataset"
)

const (
	heavyRule = "=================================================="
	lightRule = "--------------------------------------------------"

	// Performance verdicts for the average against the threshold.
	VerdictHigh             = "High Performance"
	VerdictNeedsImprovement = "Needs Improvement"
)

// Verdict classifies an average against a threshold. Only a strictly
// greater average counts as high performance; equality is not.
func Verdict(average, threshold float64) string {
	if average > threshold {
		return VerdictHigh
	}

	return VerdictNeedsImprovement
}

// Render returns the report text written to the report file.
func Render(ds *dataset.Dataset) string {
	return render(ds, "DATASET ANALYSIS REPORT")
}

// RenderConsole returns the same summary with the console banner used after
// an interactive run.
func RenderConsole(ds *dataset.Dataset) string {
	return render(ds, "DATASET ANALYSIS RESULTS")
}

func render(ds *dataset.Dataset, title string) string {
	st := ds.Statistics()
	if st == nil {
		// Callers are expected to compute first; render zeros rather than
		// panic if they did not.
		st = &dataset.Statistics{}
	}

	average := formatAverage(st.Average)
	threshold := formatNumber(ds.Threshold())
	categories := ds.Categories()

	var b strings.Builder
	b.WriteString(heavyRule + "\n")
	b.WriteString(title + "\n")
	b.WriteString(heavyRule + "\n\n")

	b.WriteString("NUMERICAL DATA STATISTICS\n")
	b.WriteString(lightRule + "\n")
	fmt.Fprintf(&b, "Data file: %s\n", ds.DataPath())
	fmt.Fprintf(&b, "Total data points: %d\n", st.Count)
	fmt.Fprintf(&b, "Total: %s\n", formatNumber(st.Total))
	fmt.Fprintf(&b, "Average: %s\n", average)
	fmt.Fprintf(&b, "Minimum: %s\n", formatNumber(st.Minimum))
	fmt.Fprintf(&b, "Maximum: %s\n\n", formatNumber(st.Maximum))

	fmt.Fprintf(&b, "Performance: %s\n", Verdict(st.Average, ds.Threshold()))
	if st.Average > ds.Threshold() {
		fmt.Fprintf(&b, "(Average %s is above threshold %s)\n\n", average, threshold)
	} else {
		fmt.Fprintf(&b, "(Average %s is below threshold %s)\n\n", average, threshold)
	}

	b.WriteString("CATEGORICAL DATA ANALYSIS\n")
	b.WriteString(lightRule + "\n")
	fmt.Fprintf(&b, "Categories file: %s\n", ds.CategoryPath())
	fmt.Fprintf(&b, "Total unique categories: %d\n", len(categories))
	fmt.Fprintf(&b, "Unique categories: %s\n", strings.Join(categories, ", "))
	b.WriteString(heavyRule + "\n")

	return b.String()
}

// Write renders the report and overwrites the file at path. The caller
// decides what to do with a failure; the orchestration layer treats this
// operation as best-effort.
func Write(ds *dataset.Dataset, path string) error {
	if err := os.WriteFile(path, []byte(Render(ds)), 0o644); err != nil {
		return fmt.Errorf("writing report to %s: %w", path, err)
	}

	log.Info().Str("file", path).Msg("report written")

	return nil
}

// formatNumber prints a value in its shortest exact form, so whole-number
// totals and extremes render without trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// formatAverage always carries two decimals, matching the report contract.
func formatAverage(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
