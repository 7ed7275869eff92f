package harmony

import (
	"math"
	"testing"
)

func TestComputeRHI_EmptyWindow(t *testing.T) {
	res := ComputeRHI(nil, DefaultRHIParams())
	if res.MeanH != 0 || res.StdH != 0 || res.FracBelow != 0 || res.RHI != 0 {
		t.Fatalf("expected zero result for empty window, got %+v", res)
	}
}

func TestComputeRHI_SteadyWindow(t *testing.T) {
	// Two identical days above tau: no volatility, no downside penalty.
	res := ComputeRHI([]float64{0.7, 0.7}, DefaultRHIParams())
	if math.Abs(res.MeanH-0.7) > 1e-12 {
		t.Fatalf("expected mean 0.7, got %v", res.MeanH)
	}
	if res.StdH != 0 || res.FracBelow != 0 {
		t.Fatalf("expected no penalties, got %+v", res)
	}
	if math.Abs(res.RHI-0.7) > 1e-12 {
		t.Fatalf("expected RHI=mean for a steady window, got %v", res.RHI)
	}
}

func TestComputeRHI_PenaltiesApply(t *testing.T) {
	// mean=0.7, popstd=0.1, nothing below tau=0.5.
	res := ComputeRHI([]float64{0.6, 0.8}, DefaultRHIParams())
	want := 0.7 - 0.5*0.1
	if math.Abs(res.RHI-want) > 1e-12 {
		t.Fatalf("expected RHI=%v, got %v", want, res.RHI)
	}

	// Everything below tau: full downside fraction.
	res = ComputeRHI([]float64{0.4, 0.4}, DefaultRHIParams())
	want = 0.4 - 0.5*0 - 0.2*1
	if math.Abs(res.RHI-want) > 1e-12 {
		t.Fatalf("expected RHI=%v, got %v", want, res.RHI)
	}
	if res.FracBelow != 1 {
		t.Fatalf("expected frac_below=1, got %v", res.FracBelow)
	}
}

func TestComputeRHI_NeverExceedsMean(t *testing.T) {
	windows := [][]float64{
		{0.9},
		{0.2, 0.9, 0.5},
		{0.5, 0.5, 0.5, 0.5},
		{0.1, 0.95, 0.4, 0.8, 0.6},
	}
	for _, w := range windows {
		res := ComputeRHI(w, DefaultRHIParams())
		if res.RHI > res.MeanH+1e-12 {
			t.Fatalf("RHI %v above mean %v for window %v", res.RHI, res.MeanH, w)
		}
	}
}

func TestComputeRHI_ZeroParamsEqualsMean(t *testing.T) {
	w := []float64{0.2, 0.9, 0.5}
	res := ComputeRHI(w, RHIParams{Lambda: 0, Gamma: 0, Tau: 0.5})
	if math.Abs(res.RHI-res.MeanH) > 1e-12 {
		t.Fatalf("expected RHI=mean with zero penalties, got %+v", res)
	}
}
