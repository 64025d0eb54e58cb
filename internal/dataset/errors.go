package dataset

import (
	"errors"
	"fmt"
)

// Sentinel errors for the load validation failures. File-not-found is not
// listed here: LoadData and LoadCategories wrap the os error, so callers
// match it with errors.Is(err, fs.ErrNotExist).
var (
	// ErrEmptyInput means the input file exists but contains no lines at all.
	ErrEmptyInput = errors.New("file is empty")

	// ErrNoValidData means the numeric file had lines but none parsed to a
	// value (e.g. only blank lines).
	ErrNoValidData = errors.New("no valid numerical data found in file")

	// ErrNoValidCategories means the categorical file had lines but yielded
	// no labels.
	ErrNoValidCategories = errors.New("no valid categories found in file")
)

// InvalidDataError reports the first non-numeric line encountered in the
// data file. It carries the offending raw text so diagnostics can show the
// user exactly what failed to parse.
type InvalidDataError struct {
	Line int
	Raw  string
}

func (e *InvalidDataError) Error() string {
	return fmt.Sprintf("invalid data found: '%s' is not a number", e.Raw)
}
