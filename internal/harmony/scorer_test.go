package harmony

import (
	"math"
	"testing"
)

func TestWeightedSatisfaction_WorkedExample(t *testing.T) {
	q := []float64{50, 30, 20}
	s := []float64{80, 80, 20}
	got := WeightedSatisfaction(q, s)
	if math.Abs(got-0.68) > 1e-12 {
		t.Fatalf("expected S=0.68, got %v", got)
	}
}

func TestWeightedSatisfaction_ZeroWeightSum(t *testing.T) {
	if got := WeightedSatisfaction([]float64{0, 0, 0}, []float64{80, 80, 20}); got != 0 {
		t.Fatalf("expected S=0 for zero-sum weights, got %v", got)
	}
}

func TestAlignment_IdenticalShapeIsOne(t *testing.T) {
	// Proportional vectors normalize to the same distribution.
	q := []float64{10, 30}
	s := []float64{20, 60}
	if got := Alignment(q, s); math.Abs(got-1) > 1e-12 {
		t.Fatalf("expected U=1 for proportional vectors, got %v", got)
	}
}

func TestAlignment_StaysInUnitInterval(t *testing.T) {
	cases := [][2][]float64{
		{{100, 0, 0}, {0, 0, 100}},
		{{1, 1, 1}, {90, 5, 5}},
		{{50, 30, 20}, {80, 80, 20}},
	}
	for _, c := range cases {
		u := Alignment(c[0], c[1])
		if u < 0 || u > 1 {
			t.Fatalf("U=%v out of [0,1] for q=%v s=%v", u, c[0], c[1])
		}
	}
}

func TestAlignment_ZeroSumVectorIsZero(t *testing.T) {
	if got := Alignment([]float64{0, 0}, []float64{50, 50}); got != 0 {
		t.Fatalf("expected U=0 for zero-sum q, got %v", got)
	}
	if got := Alignment([]float64{50, 50}, []float64{0, 0}); got != 0 {
		t.Fatalf("expected U=0 for zero-sum s, got %v", got)
	}
}

func TestScore_WorkedExample(t *testing.T) {
	q := []float64{50, 30, 20}
	s := []float64{80, 80, 20}
	sc := Score(q, s, DefaultAlpha)
	if math.Abs(sc.S-0.68) > 1e-9 {
		t.Fatalf("expected S=0.68, got %v", sc.S)
	}
	if math.Abs(sc.U-0.9793589593939726) > 1e-6 {
		t.Fatalf("unexpected U=%v", sc.U)
	}
	if math.Abs(sc.H-(0.6*sc.S+0.4*sc.U)) > 1e-12 {
		t.Fatalf("H=%v is not alpha*S+(1-alpha)*U", sc.H)
	}
}

func TestScore_DegenerateInputsYieldZeros(t *testing.T) {
	sc := Score(nil, nil, DefaultAlpha)
	if sc.S != 0 || sc.U != 0 || sc.H != 0 {
		t.Fatalf("expected zero scores for empty input, got %+v", sc)
	}
}

func TestJSDistance_SymmetricAndBounded(t *testing.T) {
	p := []float64{0.5, 0.3, 0.2}
	q := []float64{0.2, 0.3, 0.5}
	d1 := JSDistance(p, q)
	d2 := JSDistance(q, p)
	if math.Abs(d1-d2) > 1e-12 {
		t.Fatalf("distance not symmetric: %v vs %v", d1, d2)
	}
	if d1 < 0 || d1 > 1 {
		t.Fatalf("distance %v out of [0,1]", d1)
	}
}
