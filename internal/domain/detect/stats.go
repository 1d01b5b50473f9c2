package detect

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// zscore normalizes xs to zero mean and unit variance (population variance).
// A zero-variance input yields an all-zero slice rather than dividing by zero.
func zscore(xs []float64) []float64 {
	out := make([]float64, len(xs))
	if len(xs) == 0 {
		return out
	}
	mean := stat.Mean(xs, nil)
	variance := stat.MomentAbout(2, xs, mean, nil)
	if variance == 0 {
		return out
	}
	std := math.Sqrt(variance)
	for i, x := range xs {
		out[i] = (x - mean) / std
	}
	return out
}

// gradient computes the discrete per-sample rate of change: central
// differences in the interior, one-sided at the endpoints, unit spacing.
func gradient(xs []float64) []float64 {
	n := len(xs)
	out := make([]float64, n)
	if n < 2 {
		return out
	}
	out[0] = xs[1] - xs[0]
	out[n-1] = xs[n-1] - xs[n-2]
	for i := 1; i < n-1; i++ {
		out[i] = (xs[i+1] - xs[i-1]) / 2
	}
	return out
}

// median returns the middle value of xs (mean of the two middle values for
// even lengths). Returns 0 for empty input.
func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
