package history

import (
	"math"
	"time"

	"github.com/aristath/goldsim/internal/modules/simulation"
	"github.com/aristath/goldsim/pkg/formulas"
)

// Synthetic series parameters, calibrated to published gold-market
// statistics: ~7.5% annual drift, ~16% annual volatility, slow mean
// reversion toward a 70 EUR/g long-run level, rare ±15% shock months.
const (
	syntheticMonths  = 300 // 25 years
	syntheticStart   = 10.5
	annualDrift      = 0.075
	annualVolatility = 0.16
	reversionSpeed   = 0.02
	jumpMagnitude    = 0.15
	jumpProbability  = 0.01 // per direction, per month
	priceFloor       = 20
	priceCeiling     = 500
	trendWindow      = 12
)

var longRunLogMean = math.Log(70)

// Point is one month of the historical series.
type Point struct {
	YearMonth string  `json:"date"`
	Price     float64 `json:"price"`
}

// Statistics summarizes the return distribution of a price series.
type Statistics struct {
	MeanMonthlyReturn    float64  `json:"mean_monthly_return"`
	StdMonthlyReturn     float64  `json:"std_monthly_return"`
	AnnualizedReturn     float64  `json:"annualized_return"`
	AnnualizedVolatility float64  `json:"annualized_volatility"`
	Skewness             float64  `json:"skewness"`
	Kurtosis             float64  `json:"kurtosis"`
	CurrentPrice         float64  `json:"current_price"`
	DataPoints           int      `json:"data_points"`
	Trend                *float64 `json:"trend_12m,omitempty"`
}

// GenerateSeries synthesizes a monthly gold price series in EUR per
// gram, starting at January 2000. The model is the same
// drift/reversion/jump process the simulator uses, so the derived
// return statistics are internally consistent with the price model.
func GenerateSeries(seed int64) []Point {
	src := simulation.NewNormalSource(seed)

	points := make([]Point, 0, syntheticMonths)
	start := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	price := syntheticStart

	for i := 0; i < syntheticMonths; i++ {
		if i > 0 {
			monthlyDrift := annualDrift / formulas.MonthsPerYear
			monthlyVol := annualVolatility / math.Sqrt(formulas.MonthsPerYear)

			step := monthlyDrift +
				reversionSpeed*(longRunLogMean-math.Log(price)) +
				monthlyVol*src.Next()

			// Occasional fat-tail shock, either direction.
			if u := src.Uniform(); u < jumpProbability {
				step -= jumpMagnitude
			} else if u > 1-jumpProbability {
				step += jumpMagnitude
			}

			price *= math.Exp(step)
			if price < priceFloor {
				price = priceFloor
			} else if price > priceCeiling {
				price = priceCeiling
			}
		}

		points = append(points, Point{
			YearMonth: start.AddDate(0, i, 0).Format("2006-01"),
			Price:     price,
		})
	}

	return points
}

// ComputeStatistics derives the return distribution summary the
// simulator consumes, plus the display-only trend and shape metrics.
func ComputeStatistics(prices []float64) Statistics {
	returns := formulas.LogReturns(prices)

	mean := formulas.Mean(returns)
	std := formulas.StdDev(returns)

	var current float64
	if len(prices) > 0 {
		current = prices[len(prices)-1]
	}

	stats := Statistics{
		MeanMonthlyReturn:    mean,
		StdMonthlyReturn:     std,
		AnnualizedReturn:     formulas.AnnualizedReturn(mean) * 100,
		AnnualizedVolatility: formulas.AnnualizedVolatility(returns) * 100,
		CurrentPrice:         current,
		DataPoints:           len(prices),
		Trend:                formulas.LatestTrend(prices, trendWindow),
	}

	// Shape metrics are undefined for a flat series; leave them zero
	// rather than emitting NaN.
	if std > 0 {
		stats.Skewness = formulas.Skewness(returns)
		stats.Kurtosis = formulas.Kurtosis(returns)
	}

	return stats
}
