package simulation

import "math"

// PathGenerator produces simulated price paths following geometric
// Brownian motion with optional mean reversion and jump injection:
//
//	logReturn = mean + k*(m - ln(prev)) + std*Z [+ jump]
//	next      = clamp(prev * exp(logReturn), floor, ceiling)
//
// The clamp is applied every period so a single extreme draw cannot
// compound an out-of-range price into later steps.
type PathGenerator struct {
	returns ReturnSummary
	params  PathParams
	floor   float64
	ceiling float64
	src     *NormalSource
}

// NewPathGenerator creates a generator drawing from src. The caller is
// responsible for validating the return summary (a negative std is a
// configuration error upstream).
func NewPathGenerator(returns ReturnSummary, params PathParams, floor, ceiling float64, src *NormalSource) *PathGenerator {
	return &PathGenerator{
		returns: returns,
		params:  params,
		floor:   floor,
		ceiling: ceiling,
		src:     src,
	}
}

// Generate advances startPrice one period at a time and returns the
// resulting sequence of post-step prices. The start price itself is
// not part of the output; element 0 is the price after the first step.
func (g *PathGenerator) Generate(startPrice float64, periods int) []float64 {
	prices := make([]float64, 0, periods)
	price := startPrice

	for t := 0; t < periods; t++ {
		step := g.returns.MeanReturn + g.returns.StdReturn*g.src.Next()

		if g.params.MeanReversionSpeed > 0 {
			step += g.params.MeanReversionSpeed * (g.params.LongRunLogMean - math.Log(price))
		}

		if g.params.JumpProbability > 0 && g.src.Uniform() < g.params.JumpProbability {
			magnitude := g.params.JumpMin + g.src.Uniform()*(g.params.JumpMax-g.params.JumpMin)
			if g.src.Uniform() < 0.5 {
				magnitude = -magnitude
			}
			step += magnitude
		}

		price = clampPrice(price*math.Exp(step), g.floor, g.ceiling)
		prices = append(prices, price)
	}

	return prices
}

func clampPrice(p, floor, ceiling float64) float64 {
	if p < floor {
		return floor
	}
	if p > ceiling {
		return ceiling
	}
	return p
}
