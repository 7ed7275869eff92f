package tablestore

import (
	"context"
	"fmt"
	"time"
)

// MissingMarker is the value written for a field that a schema migration had
// to add. It is distinguishable from a real score, which is always numeric.
const MissingMarker = ""

// Canonical column names shared with the primary record schema.
const (
	ColUserID    = "user_id"
	ColDate      = "date"
	ColCreatedAt = "creation_timestamp"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = time.RFC3339
)

// synthesizedClock is the fixed reference time-of-day assigned to records
// that predate creation timestamps, so same-day rows order stably without
// moving the date key.
var synthesizedClock = 12 * time.Hour

// MigrateUserRows brings one user's rows up to the expected column set:
// fields absent across the whole set are added with the missing marker, and
// rows without a creation timestamp get one synthesized from their date at a
// fixed reference time in UTC. It reports whether anything changed. A row
// without a date key is a contract violation.
func MigrateUserRows(rows []Row, expected []string) (bool, error) {
	for i, r := range rows {
		if r[ColDate] == "" {
			return false, fmt.Errorf("row %d has no date key", i)
		}
	}

	changed := false
	for _, col := range expected {
		if columnPresent(rows, col) {
			continue
		}
		for _, r := range rows {
			r[col] = MissingMarker
		}
		if len(rows) > 0 {
			changed = true
		}
	}

	for i, r := range rows {
		if r[ColCreatedAt] != "" {
			continue
		}
		day, err := time.ParseInLocation(dateLayout, r[ColDate], time.UTC)
		if err != nil {
			return false, fmt.Errorf("row %d has unparseable date %q: %w", i, r[ColDate], err)
		}
		r[ColCreatedAt] = day.Add(synthesizedClock).Format(timestampLayout)
		changed = true
	}
	return changed, nil
}

func columnPresent(rows []Row, col string) bool {
	for _, r := range rows {
		if _, ok := r[col]; ok {
			return true
		}
	}
	return false
}

// MigrateUser migrates one user's rows inside the shared table and persists
// the result through the store's compare-and-swap, touching no other user's
// rows. Expected columns missing from the table header are appended to it.
func MigrateUser(ctx context.Context, s Store, userID string, expected []string) error {
	return Swap(ctx, s, func(t *Table) (bool, error) {
		rows := UserRows(*t, ColUserID, userID, ColDate, ColCreatedAt)
		changed, err := MigrateUserRows(rows, expected)
		if err != nil {
			return false, err
		}
		if !changed {
			return false, nil
		}
		for _, col := range expected {
			if !contains(t.Columns, col) {
				t.Columns = append(t.Columns, col)
			}
		}
		ReplaceUserRows(t, ColUserID, userID, rows)
		return true, nil
	})
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
