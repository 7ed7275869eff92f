package harmony

import "testing"

func TestAggregateSatisfaction_MeanOfPresentElements(t *testing.T) {
	ds := DefaultDomainSet()
	got := AggregateSatisfaction(ds, map[string]float64{
		"sleep":     80,
		"nutrition": 61,
	}, nil)
	// round(mean(80, 61)) = round(70.5) = 71
	if got["health"] != 71 {
		t.Fatalf("expected health=71, got %v", got["health"])
	}
}

func TestAggregateSatisfaction_ElementScoresBeatStaleDomainValue(t *testing.T) {
	ds := DefaultDomainSet()
	got := AggregateSatisfaction(ds, map[string]float64{"sleep": 40}, map[string]float64{"health": 90})
	if got["health"] != 40 {
		t.Fatalf("expected element scores to override prior domain value, got %v", got["health"])
	}
}

func TestAggregateSatisfaction_PriorKeptWhenNoElements(t *testing.T) {
	ds := DefaultDomainSet()
	got := AggregateSatisfaction(ds, nil, map[string]float64{"finance": 55})
	if got["finance"] != 55 {
		t.Fatalf("expected prior finance=55 kept, got %v", got["finance"])
	}
	if _, ok := got["health"]; ok {
		t.Fatalf("expected health absent, got %v", got["health"])
	}
}

func TestAggregateSatisfaction_AbsentStaysAbsent(t *testing.T) {
	ds := DefaultDomainSet()
	got := AggregateSatisfaction(ds, map[string]float64{"sleep": 50}, nil)
	if len(got) != 1 {
		t.Fatalf("expected only health present, got %v", got)
	}
}

func TestPassthroughSatisfaction_DropsUnknownDomains(t *testing.T) {
	ds := DefaultDomainSet()
	got := PassthroughSatisfaction(ds, map[string]float64{
		"health":    70,
		"astrology": 99,
	})
	if got["health"] != 70 {
		t.Fatalf("expected health=70, got %v", got["health"])
	}
	if _, ok := got["astrology"]; ok {
		t.Fatalf("expected unknown domain dropped")
	}
}
