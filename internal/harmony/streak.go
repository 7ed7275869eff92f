package harmony

import "time"

// Streak counts consecutive calendar days with a record, walking backward
// from today. A missing entry for today is forgiven when yesterday has one
// (one-day grace); otherwise the streak is 0. Dates are compared by calendar
// day, ignoring time of day and zone offsets within a day.
func Streak(dates []time.Time, today time.Time) int {
	if len(dates) == 0 {
		return 0
	}
	seen := make(map[string]bool, len(dates))
	for _, d := range dates {
		seen[dayKey(d)] = true
	}

	start := today
	if !seen[dayKey(start)] {
		start = today.AddDate(0, 0, -1)
		if !seen[dayKey(start)] {
			return 0
		}
	}

	streak := 0
	for d := start; seen[dayKey(d)]; d = d.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
