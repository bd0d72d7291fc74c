package formulas

import (
	"github.com/markcheno/go-talib"
)

// TrendSMA calculates a simple moving average over a price series,
// used as the displayed trend line for the historical chart.
//
// Args:
//
//	prices: Array of prices (monthly averages)
//	length: SMA window (typically 12 for a one-year trend)
//
// Returns:
//
//	SMA series aligned to prices (leading window-1 entries are NaN),
//	or nil if there is not enough data for a single window.
func TrendSMA(prices []float64, length int) []float64 {
	if len(prices) < length {
		return nil
	}

	return talib.Sma(prices, length)
}

// LatestTrend returns the most recent SMA value, or nil when the
// series is too short.
func LatestTrend(prices []float64, length int) *float64 {
	sma := TrendSMA(prices, length)
	if len(sma) == 0 {
		return nil
	}

	last := sma[len(sma)-1]
	if isNaN(last) {
		return nil
	}
	return &last
}

// isNaN checks if a float64 is NaN
func isNaN(f float64) bool {
	return f != f
}
