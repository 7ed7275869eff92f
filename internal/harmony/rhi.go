package harmony

import "gonum.org/v1/gonum/stat"

// Default risk-adjustment parameters for the Risk-adjusted Harmony Index.
const (
	DefaultLambda = 0.5
	DefaultGamma  = 0.2
	DefaultTau    = 0.5
)

type RHIParams struct {
	Lambda float64 `json:"lambda"`
	Gamma  float64 `json:"gamma"`
	Tau    float64 `json:"tau"`
}

func DefaultRHIParams() RHIParams {
	return RHIParams{Lambda: DefaultLambda, Gamma: DefaultGamma, Tau: DefaultTau}
}

type RHIResult struct {
	MeanH     float64 `json:"mean_h"`
	StdH      float64 `json:"std_h"`
	FracBelow float64 `json:"frac_below"`
	RHI       float64 `json:"rhi"`
}

// ComputeRHI aggregates a window of H values into a single score penalized
// for volatility and downside frequency:
//
//	RHI = mean(H) - lambda*popstd(H) - gamma*frac(H < tau)
//
// With lambda, gamma >= 0 the result never exceeds the window mean. An empty
// window yields the zero result.
func ComputeRHI(window []float64, p RHIParams) RHIResult {
	if len(window) == 0 {
		return RHIResult{}
	}
	mean := stat.Mean(window, nil)
	std := 0.0
	if len(window) > 1 {
		std = stat.PopStdDev(window, nil)
	}
	below := 0
	for _, h := range window {
		if h < p.Tau {
			below++
		}
	}
	frac := float64(below) / float64(len(window))
	return RHIResult{
		MeanH:     mean,
		StdH:      std,
		FracBelow: frac,
		RHI:       mean - p.Lambda*std - p.Gamma*frac,
	}
}
