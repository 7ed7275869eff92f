package harmony

import "time"

// RecordSummary is the read-only view of one daily record that achievement
// predicates and window analytics operate on.
type RecordSummary struct {
	Date         time.Time
	Mode         Mode
	H            float64
	G            float64
	Weights      map[string]float64
	Satisfaction map[string]float64
}

// PredicateKind tags which inputs a predicate consumes. The evaluator
// dispatches on the tag, so a predicate never sees arguments it did not
// declare.
type PredicateKind int

const (
	PredicateRecords PredicateKind = iota
	PredicateRecordsStreak
	PredicateRecordsRHI
)

type Achievement struct {
	ID    string        `json:"id"`
	Label string        `json:"label"`
	Kind  PredicateKind `json:"-"`

	OverRecords func(records []RecordSummary) bool               `json:"-"`
	OverStreak  func(records []RecordSummary, streak int) bool   `json:"-"`
	OverRHI     func(records []RecordSummary, rhi RHIResult) bool `json:"-"`
}

type AchievementInput struct {
	Records []RecordSummary
	Streak  int
	RHI     *RHIResult
}

// EvaluateAchievements returns the achievements from catalog that are newly
// true and not yet in unlocked. Already-unlocked achievements are skipped
// entirely, so an unlocked achievement can never flip back to locked.
func EvaluateAchievements(catalog []Achievement, in AchievementInput, unlocked map[string]bool) []Achievement {
	var newly []Achievement
	for _, a := range catalog {
		if unlocked[a.ID] {
			continue
		}
		hit := false
		switch a.Kind {
		case PredicateRecords:
			hit = a.OverRecords != nil && a.OverRecords(in.Records)
		case PredicateRecordsStreak:
			hit = a.OverStreak != nil && a.OverStreak(in.Records, in.Streak)
		case PredicateRecordsRHI:
			hit = a.OverRHI != nil && in.RHI != nil && a.OverRHI(in.Records, *in.RHI)
		}
		if hit {
			newly = append(newly, a)
		}
	}
	return newly
}

// DefaultAchievements is the built-in milestone catalog.
func DefaultAchievements() []Achievement {
	return []Achievement{
		{
			ID:    "first_entry",
			Label: "First log entry",
			Kind:  PredicateRecords,
			OverRecords: func(records []RecordSummary) bool {
				return len(records) >= 1
			},
		},
		{
			ID:    "deep_diver",
			Label: "Five deep-dive entries",
			Kind:  PredicateRecords,
			OverRecords: func(records []RecordSummary) bool {
				deep := 0
				for _, r := range records {
					if r.Mode == ModeDeep {
						deep++
					}
				}
				return deep >= 5
			},
		},
		{
			ID:    "chronicler",
			Label: "Thirty entries overall",
			Kind:  PredicateRecords,
			OverRecords: func(records []RecordSummary) bool {
				return len(records) >= 30
			},
		},
		{
			ID:    "week_streak",
			Label: "Seven days in a row",
			Kind:  PredicateRecordsStreak,
			OverStreak: func(_ []RecordSummary, streak int) bool {
				return streak >= 7
			},
		},
		{
			ID:    "fortnight_streak",
			Label: "Fourteen days in a row",
			Kind:  PredicateRecordsStreak,
			OverStreak: func(_ []RecordSummary, streak int) bool {
				return streak >= 14
			},
		},
		{
			ID:    "steady_helm",
			Label: "A calm, positive week",
			Kind:  PredicateRecordsRHI,
			OverRHI: func(records []RecordSummary, rhi RHIResult) bool {
				return len(records) >= 7 && rhi.RHI >= 0.6
			},
		},
	}
}
