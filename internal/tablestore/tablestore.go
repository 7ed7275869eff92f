// Package tablestore holds the legacy spreadsheet-shaped datasets: one shared
// table per dataset with all users' rows together. The original write path
// re-wrote the whole table after a local read-modify cycle, which lets two
// concurrent sessions silently drop each other's rows. Writes here are
// guarded by a version token instead: every mutation goes through a
// compare-and-swap, and Swap retries the read-modify-write loop until it
// lands on the version it read.
package tablestore

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Row is one record in column -> value form. Values are strings, as in the
// CSV files the table shape comes from.
type Row map[string]string

// Table is a full snapshot of a dataset plus the version token it was read
// at.
type Table struct {
	Columns []string
	Rows    []Row
	Version int64
}

// ErrVersionConflict is returned by CompareAndSwap when the table changed
// since the caller's snapshot.
var ErrVersionConflict = fmt.Errorf("tablestore: version conflict")

type Store interface {
	// Load returns a deep copy of the current table.
	Load(ctx context.Context) (Table, error)
	// CompareAndSwap replaces the table only if its version still equals
	// fromVersion, bumping the version on success.
	CompareAndSwap(ctx context.Context, fromVersion int64, t Table) error
}

// Swap runs a read-modify-write cycle under CAS, retrying on conflict. The
// callback mutates the snapshot in place and returns false to abort with no
// write (nothing changed).
func Swap(ctx context.Context, s Store, mutate func(t *Table) (bool, error)) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		snapshot, err := s.Load(ctx)
		if err != nil {
			return err
		}
		from := snapshot.Version
		changed, err := mutate(&snapshot)
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}
		err = s.CompareAndSwap(ctx, from, snapshot)
		if err == nil {
			return nil
		}
		if err != ErrVersionConflict {
			return err
		}
	}
}

// MemStore is the in-memory Store used for tests and for staging legacy
// imports before they land in the primary database.
type MemStore struct {
	mu    sync.Mutex
	table Table
}

func NewMemStore(columns []string) *MemStore {
	return &MemStore{table: Table{Columns: append([]string(nil), columns...)}}
}

func (m *MemStore) Load(ctx context.Context) (Table, error) {
	if err := ctx.Err(); err != nil {
		return Table{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyTable(m.table), nil
}

func (m *MemStore) CompareAndSwap(ctx context.Context, fromVersion int64, t Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.table.Version != fromVersion {
		return ErrVersionConflict
	}
	next := copyTable(t)
	next.Version = fromVersion + 1
	m.table = next
	return nil
}

func copyTable(t Table) Table {
	out := Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]Row, len(t.Rows)),
		Version: t.Version,
	}
	for i, r := range t.Rows {
		cp := make(Row, len(r))
		for k, v := range r {
			cp[k] = v
		}
		out.Rows[i] = cp
	}
	return out
}

// ReplaceUserRows swaps out every row belonging to userID for the given
// replacement rows, leaving all other users' rows untouched. Row order for
// other users is preserved; the replacement rows are appended.
func ReplaceUserRows(t *Table, userColumn, userID string, replacement []Row) {
	kept := t.Rows[:0]
	for _, r := range t.Rows {
		if r[userColumn] != userID {
			kept = append(kept, r)
		}
	}
	t.Rows = append(kept, replacement...)
}

// UserRows returns a copy of the rows belonging to userID, sorted by the
// date column and then by creation timestamp for same-day rows.
func UserRows(t Table, userColumn, userID, dateColumn, createdColumn string) []Row {
	var out []Row
	for _, r := range t.Rows {
		if r[userColumn] == userID {
			cp := make(Row, len(r))
			for k, v := range r {
				cp[k] = v
			}
			out = append(out, cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i][dateColumn] != out[j][dateColumn] {
			return out[i][dateColumn] < out[j][dateColumn]
		}
		return out[i][createdColumn] < out[j][createdColumn]
	})
	return out
}
