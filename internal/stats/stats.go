// Package stats provides the elementary reductions used by dataset analysis.
// All functions operate on arbitrary slices so they can be tested
// independently of any loaded dataset.
package stats

// Total returns the sum of values. Returns 0 for an empty slice.
func Total(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}

	return sum
}

// Average returns the arithmetic mean of values. Returns 0 for an empty
// slice rather than dividing by zero.
func Average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	return Total(values) / float64(len(values))
}

// Minimum returns the smallest value. The boolean is false when values is
// empty, so callers can tell "no data" apart from a legitimate minimum of 0.
func Minimum(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}

	minimum := values[0]
	for _, v := range values {
		if v < minimum {
			minimum = v
		}
	}

	return minimum, true
}

// Maximum returns the largest value. The boolean is false when values is
// empty.
func Maximum(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}

	maximum := values[0]
	for _, v := range values {
		if v > maximum {
			maximum = v
		}
	}

	return maximum, true
}
