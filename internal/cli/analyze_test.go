package cli

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyware/tally/internal/dataset"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

// executeAnalyze runs the analyze command against the given fixture files
// and returns the captured command output and the report path.
func executeAnalyze(t *testing.T, dataContent, categoriesContent string, extraArgs ...string) (string, string) {
	t.Helper()

	dir := t.TempDir()
	dataPath := writeFixture(t, dir, "student_marks.csv", dataContent)

	categoriesPath := filepath.Join(dir, "courses.csv")
	if categoriesContent != "" {
		writeFixture(t, dir, "courses.csv", categoriesContent)
	}

	reportPath := filepath.Join(dir, "analysis_report.txt")

	args := []string{
		"analyze",
		"--data", dataPath,
		"--categories", categoriesPath,
		"--report", reportPath,
		"--threshold", "85",
		"--quiet",
		"--output", "text",
	}
	args = append(args, extraArgs...)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())

	return buf.String(), reportPath
}

func TestAnalyzeEndToEndHighPerformance(t *testing.T) {
	out, reportPath := executeAnalyze(t, "90\n80\n95\n", "math\nscience\nmath\n")

	assert.Contains(t, out, "DATASET ANALYSIS RESULTS")

	content, err := os.ReadFile(reportPath)
	require.NoError(t, err)

	report := string(content)
	assert.Contains(t, report, "DATASET ANALYSIS REPORT")
	assert.Contains(t, report, "Total data points: 3")
	assert.Contains(t, report, "Total: 265")
	assert.Contains(t, report, "Average: 88.33")
	assert.Contains(t, report, "Minimum: 80")
	assert.Contains(t, report, "Maximum: 95")
	assert.Contains(t, report, "Performance: High Performance")
	assert.Contains(t, report, "(Average 88.33 is above threshold 85)")
	assert.Contains(t, report, "Total unique categories: 2")
	assert.Contains(t, report, "Unique categories: math, science")
}

func TestAnalyzeEndToEndNeedsImprovement(t *testing.T) {
	_, reportPath := executeAnalyze(t, "70\n75\n", "math\n")

	content, err := os.ReadFile(reportPath)
	require.NoError(t, err)

	report := string(content)
	assert.Contains(t, report, "Average: 72.50")
	assert.Contains(t, report, "Performance: Needs Improvement")
	assert.Contains(t, report, "(Average 72.50 is below threshold 85)")
}

func TestAnalyzeMissingCategoriesFileStillReports(t *testing.T) {
	out, reportPath := executeAnalyze(t, "90\n80\n95\n", "")

	assert.Contains(t, out, "DATASET ANALYSIS RESULTS")

	content, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Total unique categories: 0")
}

func TestAnalyzeJSONOutput(t *testing.T) {
	out, _ := executeAnalyze(t, "90\n80\n95\n", "math\n", "--output", "json")

	assert.Contains(t, out, `"performance": "High Performance"`)
	assert.Contains(t, out, `"count": 3`)
	assert.Contains(t, out, `"total": 265`)
	assert.Contains(t, out, `"duration":`)
	assert.NotContains(t, out, `"duration_ms"`)
}

func TestAnalyzeMissingDataFileAborts(t *testing.T) {
	t.Setenv("TALLY_TEST", "true")

	dir := t.TempDir()
	reportPath := filepath.Join(dir, "analysis_report.txt")

	err := runAnalysis(analyzeCmd, analyzeOptions{
		DataFile:       filepath.Join(dir, "nope.csv"),
		CategoriesFile: filepath.Join(dir, "courses.csv"),
		Threshold:      85,
		ReportFile:     reportPath,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	// The run aborted before statistics, display, or the report write.
	_, statErr := os.Stat(reportPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestAnalyzeInvalidDataFileAborts(t *testing.T) {
	t.Setenv("TALLY_TEST", "true")

	dir := t.TempDir()
	dataPath := writeFixture(t, dir, "student_marks.csv", "10\n20\nabc\n")
	reportPath := filepath.Join(dir, "analysis_report.txt")

	err := runAnalysis(analyzeCmd, analyzeOptions{
		DataFile:       dataPath,
		CategoriesFile: filepath.Join(dir, "courses.csv"),
		Threshold:      85,
		ReportFile:     reportPath,
	})
	require.Error(t, err)

	var invalid *dataset.InvalidDataError
	assert.True(t, errors.As(err, &invalid))

	_, statErr := os.Stat(reportPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestLoadDiagnostic(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, "nope.csv")
	empty := writeFixture(t, dir, "empty.csv", "")
	blanks := writeFixture(t, dir, "blanks.csv", "\n\n")
	invalid := writeFixture(t, dir, "invalid.csv", "10\nabc\n")

	tests := []struct {
		name     string
		path     string
		load     func(ds *dataset.Dataset) error
		expected string
	}{
		{
			name:     "missing file",
			path:     missing,
			load:     (*dataset.Dataset).LoadData,
			expected: "File '" + missing + "' not found",
		},
		{
			name:     "empty file",
			path:     empty,
			load:     (*dataset.Dataset).LoadData,
			expected: "File '" + empty + "' is empty",
		},
		{
			name:     "only blank lines",
			path:     blanks,
			load:     (*dataset.Dataset).LoadData,
			expected: "No valid numerical data found in '" + blanks + "'",
		},
		{
			name:     "invalid line",
			path:     invalid,
			load:     (*dataset.Dataset).LoadData,
			expected: "Invalid data found: 'abc' is not a number (line 2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := dataset.New(tt.path, tt.path, 85)

			err := tt.load(ds)
			require.Error(t, err)
			assert.Equal(t, tt.expected, loadDiagnostic(tt.path, err))
		})
	}
}

func TestLoadDiagnosticCategories(t *testing.T) {
	dir := t.TempDir()
	blanks := writeFixture(t, dir, "courses.csv", "\n  \n")

	ds := dataset.New(blanks, blanks, 85)
	err := ds.LoadCategories()
	require.Error(t, err)

	assert.Equal(t, "No valid categories found in '"+blanks+"'", loadDiagnostic(blanks, err))
}
