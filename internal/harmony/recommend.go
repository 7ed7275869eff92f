package harmony

import (
	"math/rand"

	"gonum.org/v1/gonum/stat"
)

const (
	impactVolatilityWeight = 0.7
	impactShortfallWeight  = 0.3
	maxSuggestions         = 2
)

type Recommendation struct {
	FocusDomain string   `json:"focus_domain"`
	Impact      float64  `json:"impact"`
	Suggestions []string `json:"suggestions"`
}

// Recommend scores every domain over the window and picks the one where an
// intervention is most likely to move the needle:
//
//	impact = 0.7*(popstd(s)/100) + 0.3*(weight * (1 - mean(s)/100))
//
// where weight is the mean normalized value weight over the window. Up to two
// suggestions are drawn at random without replacement from the focus domain's
// recipe list. An empty window yields an empty recommendation.
func Recommend(ds DomainSet, window []RecordSummary, recipes map[string][]string, rng *rand.Rand) Recommendation {
	if len(window) == 0 {
		return Recommendation{}
	}

	focus := ""
	best := -1.0
	for _, d := range ds.Domains {
		var sat, weight []float64
		for _, r := range window {
			if v, ok := r.Satisfaction[d.ID]; ok {
				sat = append(sat, v)
			}
			if w, ok := r.Weights[d.ID]; ok {
				weight = append(weight, w)
			}
		}
		if len(sat) == 0 {
			continue
		}
		std := 0.0
		if len(sat) > 1 {
			std = stat.PopStdDev(sat, nil)
		}
		meanSat := stat.Mean(sat, nil)
		meanWeight := 0.0
		if len(weight) > 0 {
			meanWeight = stat.Mean(weight, nil)
		}
		impact := impactVolatilityWeight*(std/100) + impactShortfallWeight*(meanWeight*(1-meanSat/100))
		if impact > best {
			best = impact
			focus = d.ID
		}
	}
	if focus == "" {
		return Recommendation{}
	}

	return Recommendation{
		FocusDomain: focus,
		Impact:      best,
		Suggestions: pickSuggestions(recipes[focus], rng),
	}
}

func pickSuggestions(pool []string, rng *rand.Rand) []string {
	if len(pool) == 0 {
		return nil
	}
	n := maxSuggestions
	if len(pool) < n {
		n = len(pool)
	}
	out := make([]string, 0, n)
	for _, i := range rng.Perm(len(pool))[:n] {
		out = append(out, pool[i])
	}
	return out
}
