package formulas

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// MonthsPerYear is the annualization base for monthly series.
const MonthsPerYear = 12

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the standard deviation of a slice of float64 values
func StdDev(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// Variance calculates the variance of a slice of float64 values
func Variance(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Variance(data, nil)
}

// Skewness calculates the sample skewness of a slice of float64 values
func Skewness(data []float64) float64 {
	if len(data) < 3 {
		return 0
	}
	return stat.Skew(data, nil)
}

// Kurtosis calculates the (Pearson) kurtosis of a slice of float64
// values. A normal distribution scores 3.
func Kurtosis(data []float64) float64 {
	if len(data) < 4 {
		return 0
	}
	return stat.ExKurtosis(data, nil) + 3
}

// LogReturns converts a price series to log returns
// Returns[i] = ln(Price[i+1] / Price[i])
func LogReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return []float64{}
	}

	returns := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] > 0 && prices[i] > 0 {
			returns[i-1] = math.Log(prices[i] / prices[i-1])
		}
	}

	return returns
}

// AnnualizedVolatility calculates annualized volatility from monthly returns
// Formula: Std Dev of Monthly Returns × sqrt(12)
func AnnualizedVolatility(monthlyReturns []float64) float64 {
	if len(monthlyReturns) == 0 {
		return 0
	}

	return StdDev(monthlyReturns) * math.Sqrt(MonthsPerYear)
}

// AnnualizedReturn converts a mean monthly log return to an annual
// simple return: exp(mean × 12) − 1.
func AnnualizedReturn(meanMonthlyReturn float64) float64 {
	return math.Exp(meanMonthlyReturn*MonthsPerYear) - 1
}
