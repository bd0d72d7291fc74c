package simulation

import (
	"math"
	"sort"
)

// Confidence levels used for the scenario table, matching the
// percentile set reported elsewhere in the summary.
var scenarioLevels = []struct {
	name  string
	level float64
}{
	{"Bear Market", 0.05},
	{"Pessimistic", 0.25},
	{"Base Case", 0.50},
	{"Optimistic", 0.75},
	{"Bull Market", 0.95},
}

// scenarioTable maps each confidence level to the actual ensemble
// outcome at that ROI rank, so every scenario row is an internally
// consistent (roi, value, annualized) triple rather than independent
// percentiles glued together.
func scenarioTable(ensemble []Outcome) []Scenario {
	byROI := make([]Outcome, len(ensemble))
	copy(byROI, ensemble)
	sort.SliceStable(byROI, func(i, j int) bool {
		return byROI[i].ROI < byROI[j].ROI
	})

	scenarios := make([]Scenario, 0, len(scenarioLevels))
	for _, s := range scenarioLevels {
		idx := int(float64(len(byROI)) * s.level)
		if idx >= len(byROI) {
			idx = len(byROI) - 1
		}
		o := byROI[idx]
		scenarios = append(scenarios, Scenario{
			Name:             s.name,
			Level:            s.level,
			ROI:              o.ROI,
			FinalValue:       o.FinalValue,
			AnnualizedReturn: o.AnnualizedReturn,
		})
	}
	return scenarios
}

// applyInflation fills the real-return view: the median final value is
// deflated by the cumulative inflation factor and ROI/annualized are
// recomputed against the nominal invested capital.
func applyInflation(summary *Summary, annualRate float64) {
	factor := math.Pow(1+annualRate, summary.Years)

	summary.RealMedian = summary.Median / factor
	summary.RealMedianROI = (summary.RealMedian - summary.TotalInvested) / summary.TotalInvested * 100
	summary.RealMedianAnnualized = (math.Pow(summary.RealMedian/summary.TotalInvested, 1/summary.Years) - 1) * 100
}
