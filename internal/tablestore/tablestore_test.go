package tablestore

import (
	"context"
	"fmt"
	"testing"

	"golang.org/x/sync/errgroup"
)

func TestMemStore_LoadReturnsDeepCopy(t *testing.T) {
	s := NewMemStore([]string{ColUserID, ColDate})
	ctx := context.Background()

	err := Swap(ctx, s, func(tab *Table) (bool, error) {
		tab.Rows = append(tab.Rows, Row{ColUserID: "u1", ColDate: "2026-03-01"})
		return true, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap.Rows[0][ColDate] = "mutated"

	again, _ := s.Load(ctx)
	if again.Rows[0][ColDate] != "2026-03-01" {
		t.Fatalf("mutating a snapshot leaked into the store: %v", again.Rows[0])
	}
}

func TestCompareAndSwap_RejectsStaleVersion(t *testing.T) {
	s := NewMemStore([]string{ColUserID})
	ctx := context.Background()

	stale, _ := s.Load(ctx)
	if err := s.CompareAndSwap(ctx, stale.Version, stale); err != nil {
		t.Fatalf("first swap should succeed: %v", err)
	}
	if err := s.CompareAndSwap(ctx, stale.Version, stale); err != ErrVersionConflict {
		t.Fatalf("expected version conflict, got %v", err)
	}
}

func TestSwap_NoWriteWhenUnchanged(t *testing.T) {
	s := NewMemStore([]string{ColUserID})
	ctx := context.Background()

	before, _ := s.Load(ctx)
	err := Swap(ctx, s, func(tab *Table) (bool, error) { return false, nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	after, _ := s.Load(ctx)
	if after.Version != before.Version {
		t.Fatalf("no-op swap bumped the version: %d -> %d", before.Version, after.Version)
	}
}

func TestSwap_ConcurrentWritersLoseNoRows(t *testing.T) {
	s := NewMemStore([]string{ColUserID, ColDate})
	ctx := context.Background()

	const writers = 16
	var g errgroup.Group
	for i := 0; i < writers; i++ {
		userID := fmt.Sprintf("user-%02d", i)
		g.Go(func() error {
			return Swap(ctx, s, func(tab *Table) (bool, error) {
				tab.Rows = append(tab.Rows, Row{ColUserID: userID, ColDate: "2026-03-01"})
				return true, nil
			})
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	final, _ := s.Load(ctx)
	if len(final.Rows) != writers {
		t.Fatalf("expected %d rows after concurrent writes, got %d", writers, len(final.Rows))
	}
	seen := map[string]bool{}
	for _, r := range final.Rows {
		seen[r[ColUserID]] = true
	}
	if len(seen) != writers {
		t.Fatalf("expected every writer's row to survive, got %d distinct users", len(seen))
	}
}

func TestReplaceUserRows_OnlyTouchesTargetUser(t *testing.T) {
	tab := Table{
		Columns: []string{ColUserID, ColDate},
		Rows: []Row{
			{ColUserID: "a", ColDate: "2026-03-01"},
			{ColUserID: "b", ColDate: "2026-03-01"},
			{ColUserID: "a", ColDate: "2026-03-02"},
		},
	}
	ReplaceUserRows(&tab, ColUserID, "a", []Row{{ColUserID: "a", ColDate: "2026-03-09"}})
	if len(tab.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(tab.Rows))
	}
	if tab.Rows[0][ColUserID] != "b" {
		t.Fatalf("other user's row moved or vanished: %v", tab.Rows)
	}
	if tab.Rows[1][ColDate] != "2026-03-09" {
		t.Fatalf("replacement row missing: %v", tab.Rows)
	}
}

func TestUserRows_SortedByDateThenCreation(t *testing.T) {
	tab := Table{
		Columns: []string{ColUserID, ColDate, ColCreatedAt},
		Rows: []Row{
			{ColUserID: "a", ColDate: "2026-03-02", ColCreatedAt: "2026-03-02T12:00:00Z"},
			{ColUserID: "a", ColDate: "2026-03-01", ColCreatedAt: "2026-03-01T20:00:00Z"},
			{ColUserID: "b", ColDate: "2026-02-01", ColCreatedAt: "2026-02-01T12:00:00Z"},
			{ColUserID: "a", ColDate: "2026-03-01", ColCreatedAt: "2026-03-01T08:00:00Z"},
		},
	}
	rows := UserRows(tab, ColUserID, "a", ColDate, ColCreatedAt)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows for user a, got %d", len(rows))
	}
	if rows[0][ColCreatedAt] != "2026-03-01T08:00:00Z" || rows[1][ColCreatedAt] != "2026-03-01T20:00:00Z" {
		t.Fatalf("same-day rows not ordered by creation: %v", rows)
	}
	if rows[2][ColDate] != "2026-03-02" {
		t.Fatalf("rows not ordered by date: %v", rows)
	}
}
