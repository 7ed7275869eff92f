package harmony

import "math"

// AggregateSatisfaction collapses raw per-element scores into domain-level
// satisfaction scores. Element scores are the source of truth: whenever a
// domain has at least one present element score, the domain value is
// recomputed from them even if a stale domain-level value was persisted
// earlier. A domain with no present element scores keeps its prior value when
// one exists and stays absent otherwise. Missing entries are absent map keys,
// never zero.
func AggregateSatisfaction(ds DomainSet, elementScores map[string]float64, prior map[string]float64) map[string]float64 {
	out := make(map[string]float64, ds.N())
	for _, d := range ds.Domains {
		sum := 0.0
		n := 0
		for _, e := range d.Elements {
			if v, ok := elementScores[e.ID]; ok {
				sum += v
				n++
			}
		}
		if n > 0 {
			out[d.ID] = math.Round(sum / float64(n))
			continue
		}
		if v, ok := prior[d.ID]; ok {
			out[d.ID] = v
		}
	}
	return out
}

// PassthroughSatisfaction copies quick-mode per-domain scores unchanged,
// dropping entries for domains outside the set.
func PassthroughSatisfaction(ds DomainSet, domainScores map[string]float64) map[string]float64 {
	out := make(map[string]float64, ds.N())
	for _, d := range ds.Domains {
		if v, ok := domainScores[d.ID]; ok {
			out[d.ID] = v
		}
	}
	return out
}
