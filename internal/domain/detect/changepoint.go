package detect

import "math"

// Changepoint detection: penalized PELT segmentation with an RBF kernel
// cost. Boundaries partition the series into segments of approximately
// constant statistical behavior; the cost of a segment is its kernel
// self-similarity deficit, so both level shifts and variance changes are
// penalized.

const (
	// minSegmentSize keeps segments from collapsing to single samples.
	minSegmentSize = 2

	// minChangepointSamples guards the segmentation against series too
	// short to estimate a kernel bandwidth from.
	minChangepointSamples = 10

	// bandwidthSampleCap bounds the number of points used for the
	// median-heuristic bandwidth estimate.
	bandwidthSampleCap = 512
)

// changepoints returns segment-end indices from a PELT segmentation of xs
// under the given penalty. The final boundary (series end) is not reported.
// Series with fewer than minChangepointSamples samples yield no boundaries.
func changepoints(xs []float64, penalty float64) []int {
	n := len(xs)
	if n < minChangepointSamples {
		return nil
	}

	gram := newGramSums(xs)

	// cost of segment [a, b)
	cost := func(a, b int) float64 {
		length := float64(b - a)
		return length - gram.sum(a, b)/length
	}

	// Dynamic program with pruning. best[t] is the optimal penalized cost
	// of segmenting xs[:t]; prev[t] the last boundary before t.
	best := make([]float64, n+1)
	prev := make([]int, n+1)
	for i := range best {
		best[i] = math.Inf(1)
	}
	best[0] = -penalty

	admissible := []int{0}
	for t := minSegmentSize; t <= n; t++ {
		bestCost := math.Inf(1)
		bestStart := 0
		for _, s := range admissible {
			if t-s < minSegmentSize {
				continue
			}
			c := best[s] + cost(s, t) + penalty
			if c < bestCost {
				bestCost = c
				bestStart = s
			}
		}
		best[t] = bestCost
		prev[t] = bestStart

		// PELT pruning: a start that cannot beat the current optimum
		// even without its penalty can never be optimal later.
		pruned := admissible[:0]
		for _, s := range admissible {
			if t-s < minSegmentSize || best[s]+cost(s, t) <= best[t] {
				pruned = append(pruned, s)
			}
		}
		admissible = append(pruned, t-minSegmentSize+1)
	}

	// Backtrack segment ends; drop the final boundary at n.
	var bounds []int
	for t := n; t > 0; t = prev[t] {
		if t != n {
			bounds = append(bounds, t)
		}
	}
	// reverse into ascending order
	for i, j := 0, len(bounds)-1; i < j; i, j = i+1, j-1 {
		bounds[i], bounds[j] = bounds[j], bounds[i]
	}
	return bounds
}

// gramSums holds 2D prefix sums over the RBF Gram matrix of a series,
// giving O(1) submatrix sums during the dynamic program.
type gramSums struct {
	n      int
	prefix []float64 // (n+1) x (n+1), row-major
}

func newGramSums(xs []float64) *gramSums {
	n := len(xs)
	gamma := rbfBandwidth(xs)
	g := &gramSums{n: n, prefix: make([]float64, (n+1)*(n+1))}
	stride := n + 1
	for i := 0; i < n; i++ {
		rowSum := 0.0
		for j := 0; j < n; j++ {
			d := xs[i] - xs[j]
			rowSum += math.Exp(-gamma * d * d)
			g.prefix[(i+1)*stride+(j+1)] = g.prefix[i*stride+(j+1)] + rowSum
		}
	}
	return g
}

// sum returns the Gram-matrix sum over [a, b) x [a, b).
func (g *gramSums) sum(a, b int) float64 {
	stride := g.n + 1
	return g.prefix[b*stride+b] - g.prefix[a*stride+b] - g.prefix[b*stride+a] + g.prefix[a*stride+a]
}

// rbfBandwidth estimates the kernel bandwidth with the median heuristic:
// gamma = 1 / median(pairwise squared distances), computed over a strided
// subsample to keep the estimate cheap on long series. A zero median
// (constant series) falls back to 1.
func rbfBandwidth(xs []float64) float64 {
	stride := 1
	if len(xs) > bandwidthSampleCap {
		stride = len(xs) / bandwidthSampleCap
	}
	var sample []float64
	for i := 0; i < len(xs); i += stride {
		sample = append(sample, xs[i])
	}

	dists := make([]float64, 0, len(sample)*(len(sample)-1)/2)
	for i := 0; i < len(sample); i++ {
		for j := i + 1; j < len(sample); j++ {
			d := sample[i] - sample[j]
			dists = append(dists, d*d)
		}
	}
	m := median(dists)
	if m == 0 {
		return 1
	}
	return 1 / m
}
