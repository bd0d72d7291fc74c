package simulation

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Aggregate reduces an ensemble of terminal outcomes to its summary.
// The ensemble is passed in generation order; every projection sorts
// its own copy, so the caller's slice is never reordered.
func Aggregate(ensemble []Outcome, cfg Config) (Summary, error) {
	if len(ensemble) == 0 {
		return Summary{}, fmt.Errorf("%w: empty ensemble", ErrInvalidConfig)
	}

	// Value percentiles come off a stable sort by final value; ROI and
	// annualized medians come off their own independently sorted
	// projections, not off the value-sorted order.
	byValue := make([]Outcome, len(ensemble))
	copy(byValue, ensemble)
	sort.SliceStable(byValue, func(i, j int) bool {
		return byValue[i].FinalValue < byValue[j].FinalValue
	})

	finalValues := make([]float64, len(byValue))
	for i, o := range byValue {
		finalValues[i] = o.FinalValue
	}

	rois := make([]float64, len(ensemble))
	annualized := make([]float64, len(ensemble))
	breakEven := 0
	for i, o := range ensemble {
		rois[i] = o.ROI
		annualized[i] = o.AnnualizedReturn
		if o.ROI > 0 {
			breakEven++
		}
	}
	sort.Float64s(rois)
	sort.Float64s(annualized)

	// Purchases are path-independent, so quantity and invested capital
	// are identical across the ensemble; any outcome serves.
	totalQuantity := ensemble[0].TotalQuantity
	totalInvested := ensemble[0].TotalInvested
	withoutBonus := float64(cfg.HorizonPeriods) * cfg.PurchaseQuantity
	bonusQuantity := totalQuantity - withoutBonus

	years := float64(cfg.HorizonPeriods) / PeriodsPerYear

	summary := Summary{
		Years:         years,
		TotalInvested: totalInvested,
		TotalQuantity: totalQuantity,
		BonusQuantity: bonusQuantity,
		BonusImpact:   bonusQuantity / withoutBonus * 100,

		Median: nearestRankLow(finalValues, 0.5),
		P5:     nearestRankLow(finalValues, 0.05),
		P25:    nearestRankLow(finalValues, 0.25),
		P75:    nearestRankLow(finalValues, 0.75),
		P95:    nearestRankLow(finalValues, 0.95),
		Mean:   stat.Mean(finalValues, nil),
		StdDev: stat.StdDev(finalValues, nil),

		MedianROI:            nearestRankLow(rois, 0.5),
		MedianAnnualized:     nearestRankLow(annualized, 0.5),
		BreakEvenProbability: float64(breakEven) / float64(len(ensemble)) * 100,

		Histogram: buildHistogram(finalValues, cfg.HistogramBins),
		Scenarios: scenarioTable(ensemble),
	}

	if cfg.InflationRate > 0 {
		applyInflation(&summary, cfg.InflationRate)
	}

	return summary, nil
}

// nearestRankLow extracts the nearest-rank-low percentile: the element
// at index floor(N*p) of the ascending slice. No interpolation; ranks
// are truncated, never rounded.
func nearestRankLow(sorted []float64, p float64) float64 {
	idx := int(float64(len(sorted)) * p)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// buildHistogram bins the ascending final values into fixed-width
// buckets spanning [min, max]. The top bin inclusively captures the
// maximum value.
func buildHistogram(sorted []float64, bins int) []HistogramBin {
	min := sorted[0]
	max := sorted[len(sorted)-1]
	width := (max - min) / float64(bins)

	counts := make([]int, bins)
	if width == 0 {
		// Degenerate ensemble: every value identical.
		counts[0] = len(sorted)
	} else {
		for _, v := range sorted {
			idx := int((v - min) / width)
			if idx >= bins {
				idx = bins - 1
			}
			counts[idx]++
		}
	}

	histogram := make([]HistogramBin, bins)
	for i, count := range counts {
		lower := min + float64(i)*width
		histogram[i] = HistogramBin{
			Center: lower + width/2,
			Count:  count,
			Label:  fmt.Sprintf("€%dk", int(lower/1000)),
		}
	}
	return histogram
}
