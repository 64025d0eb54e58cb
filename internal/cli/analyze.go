package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tallyware/tally/internal/dataset"
	"github.com/tallyware/tally/internal/report"
	"github.com/tallyware/tally/internal/style"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Load a dataset and produce a summary report",
	Long: `Load numeric readings and categorical labels from plain-text files, compute
summary statistics, classify performance against the threshold, and write the
analysis report.

The numeric file holds one number per line; the categories file holds one
label per line. Blank lines are skipped in both. A failure on the numeric
path aborts the run; a failure on the categorical path is reported and the
analysis continues with zero categories.

Examples:
  tally analyze                                  # Analyze with default paths
  tally analyze --data marks.txt --threshold 70  # Custom data file and cut-off
  tally analyze --output json                    # JSON summary for automation`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		opts := analyzeOptions{
			DataFile:       viper.GetString("data"),
			CategoriesFile: viper.GetString("categories"),
			Threshold:      viper.GetFloat64("threshold"),
			ReportFile:     viper.GetString("report"),
		}
		if err := runAnalysis(cmd, opts); err != nil {
			os.Exit(1)
		}
	},
}

// analyzeOptions carries the resolved inputs of one analysis run.
type analyzeOptions struct {
	DataFile       string
	CategoriesFile string
	Threshold      float64
	ReportFile     string
}

var (
	dataFile       string
	categoriesFile string
	threshold      float64
	reportFile     string
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&dataFile, "data", "student_marks.csv", "numeric data file, one reading per line")
	analyzeCmd.Flags().StringVar(&categoriesFile, "categories", "courses.csv", "categorical data file, one label per line")
	analyzeCmd.Flags().Float64Var(&threshold, "threshold", 85, "performance threshold for the average reading")
	analyzeCmd.Flags().StringVar(&reportFile, "report", "analysis_report.txt", "report output path")

	_ = viper.BindPFlag("data", analyzeCmd.Flags().Lookup("data"))
	_ = viper.BindPFlag("categories", analyzeCmd.Flags().Lookup("categories"))
	_ = viper.BindPFlag("threshold", analyzeCmd.Flags().Lookup("threshold"))
	_ = viper.BindPFlag("report", analyzeCmd.Flags().Lookup("report"))
}

// AnalysisResult is the machine-readable summary emitted for --output json/yaml.
type AnalysisResult struct {
	DataFile       string              `json:"data_file" yaml:"data_file"`
	CategoriesFile string              `json:"categories_file" yaml:"categories_file"`
	Threshold      float64             `json:"threshold" yaml:"threshold"`
	Statistics     *dataset.Statistics `json:"statistics" yaml:"statistics"`
	Performance    string              `json:"performance" yaml:"performance"`
	Categories     []string            `json:"categories" yaml:"categories"`
	ReportFile     string              `json:"report_file,omitempty" yaml:"report_file,omitempty"`
	Duration       time.Duration       `json:"duration" yaml:"duration"`
}

// runAnalysis drives one analysis run. A numeric-path load failure is
// reported and returned; the caller decides the process exit code.
func runAnalysis(cmd *cobra.Command, opts analyzeOptions) error {
	start := time.Now()

	ds := dataset.New(opts.DataFile, opts.CategoriesFile, opts.Threshold)

	showProgress := !viper.GetBool("quiet") && viper.GetString("output") == "text"

	sp := style.NewSpinner(os.Stdout)
	if showProgress {
		sp.SetSuffix(fmt.Sprintf(" Loading data from %s", style.FormatFilePath(ds.DataPath())))
		sp.Start()
	}
	err := ds.LoadData()
	sp.Stop()
	if err != nil {
		Error(loadDiagnostic(ds.DataPath(), err))
		return err
	}
	if showProgress {
		Success(fmt.Sprintf("Successfully loaded %d data points", len(ds.Readings())))
	}

	ds.CalculateStatistics()

	// Categorical failures never abort the run; the report simply carries an
	// empty category section.
	if err := ds.LoadCategories(); err != nil {
		Warning(fmt.Sprintf("%s, continuing without categories", loadDiagnostic(ds.CategoryPath(), err)))
	} else if showProgress {
		Success(fmt.Sprintf("Successfully loaded %d unique categories", len(ds.Categories())))
	}

	displayResults(cmd, ds, opts.ReportFile, start)

	// Best effort: a failed report write is logged and swallowed.
	if err := report.Write(ds, opts.ReportFile); err != nil {
		log.Warn().Err(err).Str("file", opts.ReportFile).Msg("failed to write report")
		Warning(fmt.Sprintf("Error saving results: %v", err))
	} else if showProgress {
		Success(fmt.Sprintf("Results saved to '%s'", opts.ReportFile))
	}

	return nil
}

func displayResults(cmd *cobra.Command, ds *dataset.Dataset, reportFile string, start time.Time) {
	if ds.Statistics() == nil {
		Warning("No statistics calculated, nothing to display")
		return
	}

	switch viper.GetString("output") {
	case "json":
		style.PrintJSON(cmd.OutOrStdout(), buildResult(ds, reportFile, time.Since(start)))
	case "yaml":
		style.PrintYAML(cmd.OutOrStdout(), buildResult(ds, reportFile, time.Since(start)))
	default:
		fmt.Fprintln(cmd.OutOrStdout(), report.RenderConsole(ds))
	}
}

func buildResult(ds *dataset.Dataset, reportFile string, duration time.Duration) AnalysisResult {
	st := ds.Statistics()

	return AnalysisResult{
		DataFile:       ds.DataPath(),
		CategoriesFile: ds.CategoryPath(),
		Threshold:      ds.Threshold(),
		Statistics:     st,
		Performance:    report.Verdict(st.Average, ds.Threshold()),
		Categories:     ds.Categories(),
		ReportFile:     reportFile,
		Duration:       duration,
	}
}

// loadDiagnostic turns a load failure into the one-line console message for
// that failure kind. Internal wrapping never reaches the user.
func loadDiagnostic(path string, err error) string {
	var invalid *dataset.InvalidDataError

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Sprintf("File '%s' not found", path)
	case errors.As(err, &invalid):
		return fmt.Sprintf("Invalid data found: '%s' is not a number (line %d)", invalid.Raw, invalid.Line)
	case errors.Is(err, dataset.ErrEmptyInput):
		return fmt.Sprintf("File '%s' is empty", path)
	case errors.Is(err, dataset.ErrNoValidData):
		return fmt.Sprintf("No valid numerical data found in '%s'", path)
	case errors.Is(err, dataset.ErrNoValidCategories):
		return fmt.Sprintf("No valid categories found in '%s'", path)
	default:
		return err.Error()
	}
}
