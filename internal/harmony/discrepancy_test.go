package harmony

import (
	"math"
	"testing"
)

func TestAnalyzeDiscrepancy_EmptyHistory(t *testing.T) {
	if _, ok := AnalyzeDiscrepancy(nil); ok {
		t.Fatalf("expected ok=false for empty history")
	}
}

func TestAnalyzeDiscrepancy_ColdStartThreshold(t *testing.T) {
	res, ok := AnalyzeDiscrepancy([]GapPoint{{H: 0.5, G: 80}})
	if !ok {
		t.Fatalf("expected ok=true")
	}
	if res.Dynamic {
		t.Fatalf("expected fixed threshold with a single record")
	}
	if res.Threshold != 20 {
		t.Fatalf("expected cold-start threshold 20, got %v", res.Threshold)
	}
	if math.Abs(res.Gap-30) > 1e-12 {
		t.Fatalf("expected gap 30, got %v", res.Gap)
	}
	if res.Verdict != VerdictPositiveSurprise {
		t.Fatalf("expected positive_surprise, got %q", res.Verdict)
	}
}

func TestAnalyzeDiscrepancy_WarmThresholdFloor(t *testing.T) {
	// Gap series {0, 10}: popstd is 5, so the floor of 15 applies.
	res, ok := AnalyzeDiscrepancy([]GapPoint{
		{H: 0.5, G: 50},
		{H: 0.5, G: 60},
	})
	if !ok {
		t.Fatalf("expected ok=true")
	}
	if !res.Dynamic {
		t.Fatalf("expected dynamic threshold with two records")
	}
	if res.Threshold != 15 {
		t.Fatalf("expected floored threshold 15, got %v", res.Threshold)
	}
	if res.Verdict != VerdictAligned {
		t.Fatalf("expected aligned for gap 10 under threshold 15, got %q", res.Verdict)
	}
}

func TestAnalyzeDiscrepancy_WarmThresholdAdapts(t *testing.T) {
	// Gap series {-40, 40}: popstd is 40, above the floor.
	res, ok := AnalyzeDiscrepancy([]GapPoint{
		{H: 0.6, G: 20},
		{H: 0.2, G: 60},
	})
	if !ok {
		t.Fatalf("expected ok=true")
	}
	if math.Abs(res.Threshold-40) > 1e-9 {
		t.Fatalf("expected threshold 40, got %v", res.Threshold)
	}
	if res.Verdict != VerdictAligned {
		t.Fatalf("gap 40 is not strictly above threshold 40, expected aligned, got %q", res.Verdict)
	}
}

func TestAnalyzeDiscrepancy_HiddenDissatisfaction(t *testing.T) {
	res, ok := AnalyzeDiscrepancy([]GapPoint{{H: 0.8, G: 30}})
	if !ok {
		t.Fatalf("expected ok=true")
	}
	if math.Abs(res.Gap-(-50)) > 1e-12 {
		t.Fatalf("expected gap -50, got %v", res.Gap)
	}
	if res.Verdict != VerdictHiddenDissatisfaction {
		t.Fatalf("expected hidden_dissatisfaction, got %q", res.Verdict)
	}
}
