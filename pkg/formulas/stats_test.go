package formulas

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestMeanStdDev(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5}

	if got := Mean(data); got != 3 {
		t.Errorf("Mean = %v, want 3", got)
	}
	if got := StdDev(data); !almostEqual(got, math.Sqrt(2.5), 1e-12) {
		t.Errorf("StdDev = %v, want %v", got, math.Sqrt(2.5))
	}
	if got := Variance(data); !almostEqual(got, 2.5, 1e-12) {
		t.Errorf("Variance = %v, want 2.5", got)
	}
}

func TestEmptyInputs(t *testing.T) {
	if got := Mean(nil); got != 0 {
		t.Errorf("Mean(nil) = %v, want 0", got)
	}
	if got := StdDev(nil); got != 0 {
		t.Errorf("StdDev(nil) = %v, want 0", got)
	}
	if got := AnnualizedVolatility(nil); got != 0 {
		t.Errorf("AnnualizedVolatility(nil) = %v, want 0", got)
	}
	if got := LogReturns([]float64{100}); len(got) != 0 {
		t.Errorf("LogReturns of single price = %v, want empty", got)
	}
}

func TestLogReturns(t *testing.T) {
	prices := []float64{100, 110, 99}
	returns := LogReturns(prices)

	if len(returns) != 2 {
		t.Fatalf("len = %d, want 2", len(returns))
	}
	if !almostEqual(returns[0], math.Log(1.1), 1e-12) {
		t.Errorf("returns[0] = %v, want ln(1.1)", returns[0])
	}
	if !almostEqual(returns[1], math.Log(0.9), 1e-12) {
		t.Errorf("returns[1] = %v, want ln(0.9)", returns[1])
	}
}

func TestSkewnessSymmetric(t *testing.T) {
	data := []float64{-2, -1, 0, 1, 2}
	if got := Skewness(data); !almostEqual(got, 0, 1e-12) {
		t.Errorf("Skewness of symmetric data = %v, want 0", got)
	}
}

func TestKurtosisShortInput(t *testing.T) {
	if got := Kurtosis([]float64{1, 2, 3}); got != 0 {
		t.Errorf("Kurtosis of 3 points = %v, want 0", got)
	}
}

func TestAnnualization(t *testing.T) {
	if got := AnnualizedReturn(0); got != 0 {
		t.Errorf("AnnualizedReturn(0) = %v, want 0", got)
	}
	want := math.Exp(0.005*12) - 1
	if got := AnnualizedReturn(0.005); !almostEqual(got, want, 1e-12) {
		t.Errorf("AnnualizedReturn(0.005) = %v, want %v", got, want)
	}
}

func TestMaxDrawdown(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"monotone rise", []float64{1, 2, 3, 4}, 0},
		{"half loss", []float64{100, 50, 75}, 0.5},
		{"late peak", []float64{50, 100, 80, 120, 60}, 0.5},
		{"too short", []float64{100}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaxDrawdown(tt.values); !almostEqual(got, tt.want, 1e-12) {
				t.Errorf("MaxDrawdown = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTrendSMA(t *testing.T) {
	prices := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}

	latest := LatestTrend(prices, 12)
	if latest == nil {
		t.Fatal("LatestTrend returned nil for sufficient data")
	}
	// Mean of 2..13.
	if !almostEqual(*latest, 7.5, 1e-9) {
		t.Errorf("LatestTrend = %v, want 7.5", *latest)
	}

	if got := LatestTrend(prices[:5], 12); got != nil {
		t.Errorf("LatestTrend on short series = %v, want nil", got)
	}
}
