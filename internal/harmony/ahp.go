package harmony

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Comparison is a single pairwise judgement between two domains. Ties are not
// representable; an absent pair simply stays neutral.
type Comparison struct {
	A      string `json:"a"`
	B      string `json:"b"`
	Winner string `json:"winner"`
}

// ahpIntensity is the simplified 2-intensity AHP scale: the preferred domain
// is judged moderately more important than the other.
const ahpIntensity = 3.0

// EstimateWeights converts a set of pairwise comparisons into an integer
// value-weight allocation via the Analytic Hierarchy Process: a reciprocal
// judgement matrix, its dominant eigenvector, then scaling to percentage
// points. The result always has one entry per domain, no negatives, and sums
// to exactly 100. An empty comparison set yields the uniform allocation. A comparison naming a domain outside the set is a
// contract violation and is rejected.
func EstimateWeights(ds DomainSet, comparisons []Comparison) ([]int, error) {
	n := ds.N()
	if n == 0 {
		return nil, fmt.Errorf("empty domain set")
	}

	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			m.Set(i, j, 1)
		}
	}
	for _, c := range comparisons {
		ia, ok := ds.Index(c.A)
		if !ok {
			return nil, fmt.Errorf("unknown domain %q in comparison", c.A)
		}
		ib, ok := ds.Index(c.B)
		if !ok {
			return nil, fmt.Errorf("unknown domain %q in comparison", c.B)
		}
		var win, lose int
		switch c.Winner {
		case c.A:
			win, lose = ia, ib
		case c.B:
			win, lose = ib, ia
		default:
			return nil, fmt.Errorf("winner %q is neither %q nor %q", c.Winner, c.A, c.B)
		}
		m.Set(win, lose, ahpIntensity)
		m.Set(lose, win, 1/ahpIntensity)
	}

	weights := dominantEigenvector(m, n)
	return scaleToPercent(weights), nil
}

// dominantEigenvector returns the real part of the eigenvector belonging to
// the eigenvalue with the largest real part, clipped at zero and normalized
// to sum 1. Degenerate output falls back to the uniform distribution.
func dominantEigenvector(m *mat.Dense, n int) []float64 {
	var eig mat.Eigen
	w := make([]float64, n)
	if eig.Factorize(m, mat.EigenRight) {
		values := eig.Values(nil)
		best := 0
		for i := range values {
			if real(values[i]) > real(values[best]) {
				best = i
			}
		}
		vectors := mat.NewCDense(n, n, nil)
		eig.VectorsTo(vectors)
		sign := 0.0
		for i := 0; i < n; i++ {
			w[i] = real(vectors.At(i, best))
			sign += w[i]
		}
		// The Perron vector is sign-definite but the solver may hand it
		// back negated.
		if sign < 0 {
			for i := range w {
				w[i] = -w[i]
			}
		}
	}

	total := 0.0
	for i := range w {
		if w[i] < 0 || math.IsNaN(w[i]) {
			w[i] = 0
		}
		total += w[i]
	}
	if total == 0 {
		for i := range w {
			w[i] = 1 / float64(n)
		}
		return w
	}
	for i := range w {
		w[i] /= total
	}
	return w
}

// scaleToPercent turns a probability vector into integer percentage points
// summing to exactly 100. Entries are rounded half-to-even and the single
// largest entry absorbs the rounding residual.
func scaleToPercent(w []float64) []int {
	out := make([]int, len(w))
	sum := 0
	largest := 0
	for i, x := range w {
		out[i] = int(math.RoundToEven(x * 100))
		sum += out[i]
		if w[i] > w[largest] {
			largest = i
		}
	}
	out[largest] += 100 - sum
	return out
}
