package harmony

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

type Verdict string

const (
	VerdictPositiveSurprise      Verdict = "positive_surprise"
	VerdictHiddenDissatisfaction Verdict = "hidden_dissatisfaction"
	VerdictAligned               Verdict = "aligned"
)

const (
	coldStartThreshold = 20.0
	warmFloorThreshold = 15.0
)

// GapPoint pairs a computed Harmony score (0..1) with the holistic
// self-rating G (0..100) for one record, in chronological order.
type GapPoint struct {
	H float64
	G float64
}

type DiscrepancyResult struct {
	Gap       float64 `json:"gap"`
	Threshold float64 `json:"threshold"`
	Dynamic   bool    `json:"dynamic"`
	Verdict   Verdict `json:"verdict"`
}

// AnalyzeDiscrepancy classifies the gap between the latest self-reported G
// and the computed H. With fewer than two observations the fixed cold-start
// threshold applies; otherwise the threshold adapts to the population
// standard deviation of the historical gap series, floored at 15 points.
// Read-only over its input; the second return is false when there is nothing
// to analyze.
func AnalyzeDiscrepancy(history []GapPoint) (DiscrepancyResult, bool) {
	if len(history) == 0 {
		return DiscrepancyResult{}, false
	}

	gaps := make([]float64, len(history))
	for i, p := range history {
		gaps[i] = p.G - p.H*100
	}
	latest := gaps[len(gaps)-1]

	threshold := coldStartThreshold
	dynamic := false
	if len(history) >= 2 {
		dynamic = true
		threshold = math.Max(warmFloorThreshold, stat.PopStdDev(gaps, nil))
	}

	verdict := VerdictAligned
	switch {
	case latest > threshold:
		verdict = VerdictPositiveSurprise
	case latest < -threshold:
		verdict = VerdictHiddenDissatisfaction
	}
	return DiscrepancyResult{
		Gap:       latest,
		Threshold: threshold,
		Dynamic:   dynamic,
		Verdict:   verdict,
	}, true
}
