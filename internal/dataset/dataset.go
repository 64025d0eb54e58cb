// Package dataset owns the analysis aggregate: numeric readings loaded from
// one file, unique category labels loaded from another, and the summary
// statistics computed over the readings.
//
// The aggregate is built once per run and mutated by a strictly sequential
// load -> compute pipeline; nothing in this package is safe for concurrent
// use and nothing needs to be.
package dataset

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/tallyware/tally/internal/stats"
)

// Statistics holds one full computation over the readings. Each call to
// CalculateStatistics replaces the previous value wholesale; a nil
// *Statistics on the Dataset means no computation has run yet.
type Statistics struct {
	Count   int     `json:"count" yaml:"count"`
	Total   float64 `json:"total" yaml:"total"`
	Average float64 `json:"average" yaml:"average"`
	Minimum float64 `json:"minimum" yaml:"minimum"`
	Maximum float64 `json:"maximum" yaml:"maximum"`
}

// Dataset is the analysis aggregate. The paths and threshold are fixed at
// construction; readings are append-only, categories insert-only.
type Dataset struct {
	dataPath     string
	categoryPath string
	threshold    float64

	readings   []float64
	categories map[string]struct{}
	statistics *Statistics
}

// New constructs an empty Dataset reading numeric values from dataPath and
// category labels from categoryPath. The threshold is the performance
// cut-off applied to the average reading.
func New(dataPath, categoryPath string, threshold float64) *Dataset {
	return &Dataset{
		dataPath:     dataPath,
		categoryPath: categoryPath,
		threshold:    threshold,
		categories:   make(map[string]struct{}),
	}
}

// DataPath returns the numeric input path the dataset was built with.
func (d *Dataset) DataPath() string { return d.dataPath }

// CategoryPath returns the categorical input path.
func (d *Dataset) CategoryPath() string { return d.categoryPath }

// Threshold returns the performance cut-off.
func (d *Dataset) Threshold() float64 { return d.threshold }

// Readings returns a copy of the loaded numeric values in file order.
// Callers cannot mutate the aggregate through the returned slice.
func (d *Dataset) Readings() []float64 {
	readings := make([]float64, len(d.readings))
	copy(readings, d.readings)

	return readings
}

// Statistics returns the last computed statistics, or nil if
// CalculateStatistics has not run against non-empty readings.
func (d *Dataset) Statistics() *Statistics { return d.statistics }

// Categories returns the unique labels in lexicographic order.
func (d *Dataset) Categories() []string {
	labels := make([]string, 0, len(d.categories))
	for label := range d.categories {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	return labels
}

// LoadData reads the numeric input file line by line and appends every
// parsed value, in file order, to the readings.
//
// Validation failures: a missing file wraps fs.ErrNotExist, a file with zero
// lines fails with ErrEmptyInput, the first unparseable non-blank line fails
// with an *InvalidDataError carrying the raw text, and a file of only blank
// lines fails with ErrNoValidData. The load is all-or-nothing: on any
// failure the readings are left exactly as they were.
func (d *Dataset) LoadData() error {
	lines, err := readLines(d.dataPath)
	if err != nil {
		log.Error().Err(err).Str("file", d.dataPath).Msg("failed to read data file")
		return err
	}

	if len(lines) == 0 {
		log.Error().Str("file", d.dataPath).Msg("data file is empty")
		return fmt.Errorf("%s: %w", d.dataPath, ErrEmptyInput)
	}

	values := make([]float64, 0, len(lines))
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		value, err := strconv.ParseFloat(line, 64)
		if err != nil {
			invalid := &InvalidDataError{Line: i + 1, Raw: line}
			log.Error().Str("file", d.dataPath).Int("line", invalid.Line).Str("raw", invalid.Raw).
				Msg("data file contains a non-numeric line")
			return fmt.Errorf("%s: %w", d.dataPath, invalid)
		}

		values = append(values, value)
	}

	if len(values) == 0 {
		log.Error().Str("file", d.dataPath).Msg("data file contains no numeric values")
		return fmt.Errorf("%s: %w", d.dataPath, ErrNoValidData)
	}

	d.readings = append(d.readings, values...)
	log.Info().Str("file", d.dataPath).Int("count", len(values)).Msg("loaded data points")

	return nil
}

// LoadCategories reads the categorical input file and inserts every
// non-blank, whitespace-trimmed line into the category set. Duplicates
// collapse silently. The error contract mirrors LoadData, with
// ErrNoValidCategories in place of ErrNoValidData.
func (d *Dataset) LoadCategories() error {
	lines, err := readLines(d.categoryPath)
	if err != nil {
		log.Error().Err(err).Str("file", d.categoryPath).Msg("failed to read categories file")
		return err
	}

	if len(lines) == 0 {
		log.Error().Str("file", d.categoryPath).Msg("categories file is empty")
		return fmt.Errorf("%s: %w", d.categoryPath, ErrEmptyInput)
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			d.categories[line] = struct{}{}
		}
	}

	if len(d.categories) == 0 {
		log.Error().Str("file", d.categoryPath).Msg("categories file contains no labels")
		return fmt.Errorf("%s: %w", d.categoryPath, ErrNoValidCategories)
	}

	log.Info().Str("file", d.categoryPath).Int("count", len(d.categories)).Msg("loaded unique categories")

	return nil
}

// CalculateStatistics computes count, total, average, minimum and maximum
// over the readings and replaces the statistics in a single assignment.
// With no readings loaded it logs a diagnostic and leaves the previous
// statistics untouched.
func (d *Dataset) CalculateStatistics() {
	if len(d.readings) == 0 {
		log.Warn().Msg("no data loaded, skipping statistics")
		return
	}

	// Minimum/Maximum cannot be absent here, readings is non-empty.
	minimum, _ := stats.Minimum(d.readings)
	maximum, _ := stats.Maximum(d.readings)

	d.statistics = &Statistics{
		Count:   len(d.readings),
		Total:   stats.Total(d.readings),
		Average: stats.Average(d.readings),
		Minimum: minimum,
		Maximum: maximum,
	}
}

// readLines returns every line of the file at path, including blank ones so
// callers can distinguish an empty file from a file of blank lines. The
// handle is held only for the duration of the call.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return lines, nil
}
