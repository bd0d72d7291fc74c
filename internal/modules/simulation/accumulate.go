package simulation

import (
	"math"

	"github.com/aristath/goldsim/pkg/formulas"
)

// Accumulate walks a price path applying the subscription rule and
// returns the terminal outcome.
//
// Each period buys cfg.PurchaseQuantity at the fixed cfg.PurchasePrice
// regardless of the simulated market price; the path only determines
// liquidation value. Every cfg.BonusInterval-th period (counted from
// simulation start) adds cfg.BonusQuantity at no cost.
func Accumulate(path []float64, cfg Config) Outcome {
	outcome, _ := accumulate(path, cfg, false)
	return outcome
}

// AccumulateWithHistory is Accumulate plus the full per-period
// (quantity, value) history, used for the designated sample path.
func AccumulateWithHistory(path []float64, cfg Config) (Outcome, *SamplePath) {
	return accumulate(path, cfg, true)
}

func accumulate(path []float64, cfg Config, keepHistory bool) (Outcome, *SamplePath) {
	horizon := len(path)

	var totalQuantity, totalInvested float64
	var quantities, values []float64
	if keepHistory {
		quantities = make([]float64, 0, horizon)
		values = make([]float64, 0, horizon)
	}

	var value float64
	for t := 1; t <= horizon; t++ {
		totalQuantity += cfg.PurchaseQuantity
		totalInvested += cfg.PurchaseQuantity * cfg.PurchasePrice

		if t%cfg.BonusInterval == 0 {
			totalQuantity += cfg.BonusQuantity
		}

		value = totalQuantity * path[t-1] * (1 - cfg.LiquidationSpread)

		if keepHistory {
			quantities = append(quantities, totalQuantity)
			values = append(values, value)
		}
	}

	outcome := Outcome{
		TotalQuantity:    totalQuantity,
		TotalInvested:    totalInvested,
		FinalValue:       value,
		ROI:              (value - totalInvested) / totalInvested * 100,
		AnnualizedReturn: (math.Pow(value/totalInvested, PeriodsPerYear/float64(horizon)) - 1) * 100,
	}

	if !keepHistory {
		return outcome, nil
	}

	return outcome, &SamplePath{
		Prices:      path,
		Quantities:  quantities,
		Values:      values,
		Outcome:     outcome,
		MaxDrawdown: formulas.MaxDrawdown(values),
	}
}
