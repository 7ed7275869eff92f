package harmony

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// DefaultAlpha is the weight of S in the composite Harmony score.
const DefaultAlpha = 0.6

type Scores struct {
	S float64 `json:"s"`
	U float64 `json:"u"`
	H float64 `json:"h"`
}

// WeightedSatisfaction computes S = sum(q_i/sum(q) * s_i/100). q entries are
// non-negative value weights in any scale; s entries are satisfaction in
// [0,100]. A zero-sum q yields S = 0.
func WeightedSatisfaction(q, s []float64) float64 {
	total := 0.0
	for _, w := range q {
		total += w
	}
	if total == 0 {
		return 0
	}
	out := 0.0
	for i := range q {
		if i >= len(s) {
			break
		}
		out += (q[i] / total) * (s[i] / 100.0)
	}
	return out
}

// Alignment computes U = 1 - JSD(q~, s~) where q~ and s~ are q and s
// normalized to probability distributions and JSD is the Jensen-Shannon
// divergence with base-2 logarithm, so U is in [0,1] and U = 1 iff the two
// distributions are identical. Either vector summing to zero yields U = 0.
func Alignment(q, s []float64) float64 {
	qn, ok := normalize(q)
	if !ok {
		return 0
	}
	sn, ok := normalize(s)
	if !ok {
		return 0
	}
	div := stat.JensenShannon(qn, sn) / math.Ln2
	// Guard the floating tail so U stays inside [0,1].
	if div < 0 {
		div = 0
	}
	if div > 1 {
		div = 1
	}
	return 1 - div
}

// Score computes the composite Harmony score H = alpha*S + (1-alpha)*U.
// Degenerate inputs resolve to zeros, never an error.
func Score(q, s []float64, alpha float64) Scores {
	sc := Scores{
		S: WeightedSatisfaction(q, s),
		U: Alignment(q, s),
	}
	sc.H = alpha*sc.S + (1-alpha)*sc.U
	return sc
}

// JSDistance is the Jensen-Shannon distance (square root of the base-2
// divergence) between two already-normalized distributions.
func JSDistance(p, q []float64) float64 {
	return math.Sqrt(stat.JensenShannon(p, q) / math.Ln2)
}

func normalize(v []float64) ([]float64, bool) {
	total := 0.0
	for _, x := range v {
		total += x
	}
	if total == 0 {
		return nil, false
	}
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x / total
	}
	return out, true
}
