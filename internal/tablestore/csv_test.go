package tablestore

import (
	"bytes"
	"strings"
	"testing"
)

func TestReadCSV_ShortRowsLeaveCellsAbsent(t *testing.T) {
	in := strings.Join([]string{
		"user_id,date,s_health",
		"a,2026-03-01,70",
		"b,2026-03-01",
	}, "\n")
	tab, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tab.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(tab.Rows))
	}
	if _, ok := tab.Rows[1]["s_health"]; ok {
		t.Fatalf("short row should leave s_health absent, got %q", tab.Rows[1]["s_health"])
	}
	if tab.Rows[0]["s_health"] != "70" {
		t.Fatalf("full row lost a cell: %v", tab.Rows[0])
	}
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	tab := Table{
		Columns: []string{"user_id", "date", "s_health"},
		Rows: []Row{
			{"user_id": "a", "date": "2026-03-01", "s_health": "70"},
			{"user_id": "b", "date": "2026-03-02"},
		},
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, tab); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	back, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(back.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(back.Rows))
	}
	if back.Rows[0]["s_health"] != "70" {
		t.Fatalf("cell lost in round trip: %v", back.Rows[0])
	}
	// Absent cells come back as empty strings once written.
	if back.Rows[1]["s_health"] != "" {
		t.Fatalf("expected empty cell, got %q", back.Rows[1]["s_health"])
	}
}

func TestReadCSV_Empty(t *testing.T) {
	tab, err := ReadCSV(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tab.Columns) != 0 || len(tab.Rows) != 0 {
		t.Fatalf("expected empty table, got %+v", tab)
	}
}
