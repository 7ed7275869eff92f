package tablestore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMigrateUserRows_AddsMissingColumnWithMarker(t *testing.T) {
	rows := []Row{
		{ColUserID: "a", ColDate: "2026-03-01", ColCreatedAt: "2026-03-01T12:00:00Z", "s_health": "70"},
		{ColUserID: "a", ColDate: "2026-03-02", ColCreatedAt: "2026-03-02T12:00:00Z", "s_health": "60"},
	}
	changed, err := MigrateUserRows(rows, []string{"s_health", "s_competition"})
	require.NoError(t, err)
	require.True(t, changed)
	for _, r := range rows {
		v, ok := r["s_competition"]
		require.True(t, ok, "expected s_competition added to every row")
		require.Equal(t, MissingMarker, v)
	}
	// A column with any real value stays untouched.
	require.Equal(t, "70", rows[0]["s_health"])
}

func TestMigrateUserRows_SynthesizesCreationTimestamps(t *testing.T) {
	rows := []Row{
		{ColUserID: "a", ColDate: "2026-03-01"},
		{ColUserID: "a", ColDate: "2026-03-02", ColCreatedAt: "2026-03-02T09:30:00Z"},
	}
	changed, err := MigrateUserRows(rows, nil)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, "2026-03-01T12:00:00Z", rows[0][ColCreatedAt])
	// An existing timestamp is never rewritten.
	require.Equal(t, "2026-03-02T09:30:00Z", rows[1][ColCreatedAt])
}

func TestMigrateUserRows_RowWithoutDateIsRejected(t *testing.T) {
	rows := []Row{{ColUserID: "a"}}
	_, err := MigrateUserRows(rows, nil)
	require.Error(t, err)
}

func TestMigrateUserRows_NoChangeReportsFalse(t *testing.T) {
	rows := []Row{
		{ColUserID: "a", ColDate: "2026-03-01", ColCreatedAt: "2026-03-01T12:00:00Z", "s_health": "70"},
	}
	changed, err := MigrateUserRows(rows, []string{"s_health"})
	require.NoError(t, err)
	require.False(t, changed)
}

func TestMigrateUser_OtherUsersRowsUntouched(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore([]string{ColUserID, ColDate, ColCreatedAt})
	seed := func(tab *Table) (bool, error) {
		tab.Rows = []Row{
			{ColUserID: "a", ColDate: "2026-03-01"},
			{ColUserID: "b", ColDate: "2026-03-01", ColCreatedAt: "2026-03-01T07:00:00Z"},
		}
		return true, nil
	}
	require.NoError(t, Swap(ctx, s, seed))

	require.NoError(t, MigrateUser(ctx, s, "a", []string{"s_competition"}))

	final, err := s.Load(ctx)
	require.NoError(t, err)
	require.Contains(t, final.Columns, "s_competition")

	for _, r := range final.Rows {
		switch r[ColUserID] {
		case "a":
			require.Equal(t, "2026-03-01T12:00:00Z", r[ColCreatedAt])
			require.Equal(t, MissingMarker, r["s_competition"])
		case "b":
			// Byte-identical to the seeded row.
			require.Equal(t, Row{ColUserID: "b", ColDate: "2026-03-01", ColCreatedAt: "2026-03-01T07:00:00Z"}, r)
		default:
			t.Fatalf("unexpected row %v", r)
		}
	}
}

func TestMigrateUser_IdempotentSecondRunIsNoOp(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore([]string{ColUserID, ColDate, ColCreatedAt})
	require.NoError(t, Swap(ctx, s, func(tab *Table) (bool, error) {
		tab.Rows = []Row{{ColUserID: "a", ColDate: "2026-03-01"}}
		return true, nil
	}))

	require.NoError(t, MigrateUser(ctx, s, "a", []string{"s_health"}))
	mid, _ := s.Load(ctx)

	require.NoError(t, MigrateUser(ctx, s, "a", []string{"s_health"}))
	final, _ := s.Load(ctx)
	require.Equal(t, mid.Version, final.Version, "second migration must not write")
}
