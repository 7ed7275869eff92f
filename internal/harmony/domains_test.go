package harmony

import "testing"

func TestDefaultDomainSet_CatalogShape(t *testing.T) {
	ds := DefaultDomainSet()
	if ds.N() != 7 {
		t.Fatalf("expected 7 domains, got %d", ds.N())
	}
	for _, id := range []string{"health", "relationships", "meaning", "autonomy", "finance", "leisure", "competition"} {
		if _, ok := ds.Index(id); !ok {
			t.Fatalf("missing domain %q", id)
		}
	}
}

func TestDefaultWeights_SumToOneHundred(t *testing.T) {
	ds := DefaultDomainSet()
	sum := 0
	for _, w := range ds.DefaultWeights() {
		sum += w
	}
	if sum != 100 {
		t.Fatalf("default weights sum to %d, want 100", sum)
	}
}

func TestQuickElements_OnePerDomain(t *testing.T) {
	ds := DefaultDomainSet()
	quick := ds.QuickElementIDs()
	if len(quick) != ds.N() {
		t.Fatalf("expected one quick element per domain, got %d for %d domains", len(quick), ds.N())
	}
	seen := map[string]bool{}
	for _, e := range quick {
		d, ok := ds.ElementDomain(e)
		if !ok {
			t.Fatalf("quick element %q has no domain", e)
		}
		if seen[d] {
			t.Fatalf("domain %q has more than one quick element", d)
		}
		seen[d] = true
	}
}

func TestDefaultRecipes_CoverEveryDomain(t *testing.T) {
	ds := DefaultDomainSet()
	recipes := DefaultRecipes()
	for _, d := range ds.Domains {
		if len(recipes[d.ID]) == 0 {
			t.Fatalf("domain %q has no recipes", d.ID)
		}
	}
}
