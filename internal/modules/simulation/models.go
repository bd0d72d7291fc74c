package simulation

import (
	"errors"
	"fmt"
)

// PeriodsPerYear is the number of simulation periods in a calendar year.
// One period is one month throughout this module.
const PeriodsPerYear = 12

// DefaultHistogramBins is the bin count used when a config does not
// override it.
const DefaultHistogramBins = 30

// ErrInvalidConfig is wrapped by all configuration validation failures.
var ErrInvalidConfig = errors.New("invalid simulation config")

// ReturnSummary describes the per-period log-return distribution the
// price model samples from. It is derived from historical data outside
// this module and treated as immutable input.
type ReturnSummary struct {
	MeanReturn float64 `json:"mean_monthly_return"`
	StdReturn  float64 `json:"std_monthly_return"`
}

// PathParams holds the optional dynamics of the price model. Zero
// values disable the corresponding term, leaving plain drift + noise.
type PathParams struct {
	// MeanReversionSpeed pulls the log-price toward LongRunLogMean.
	MeanReversionSpeed float64 `json:"mean_reversion_speed"`
	LongRunLogMean     float64 `json:"long_run_log_mean"`

	// JumpProbability is the per-period chance of a jump event. The
	// magnitude is drawn uniformly from [JumpMin, JumpMax] with a
	// 50/50 random sign.
	JumpProbability float64 `json:"jump_probability"`
	JumpMin         float64 `json:"jump_min"`
	JumpMax         float64 `json:"jump_max"`
}

// Config holds the parameters of one simulation horizon. Construct via
// NewConfig so that every financial parameter is validated up front;
// a Config that came out of NewConfig never produces a runtime
// degeneracy (division by zero on invested capital, negative values).
type Config struct {
	HorizonPeriods    int     `json:"horizon_periods"`
	NumPaths          int     `json:"num_paths"`
	PurchaseQuantity  float64 `json:"purchase_quantity"`
	PurchasePrice     float64 `json:"purchase_price"`
	LiquidationSpread float64 `json:"liquidation_spread"`
	BonusQuantity     float64 `json:"bonus_quantity"`
	BonusInterval     int     `json:"bonus_interval"`
	PriceFloor        float64 `json:"price_floor"`
	PriceCeiling      float64 `json:"price_ceiling"`

	// HistogramBins defaults to DefaultHistogramBins when zero.
	HistogramBins int `json:"histogram_bins"`

	// Workers caps the number of concurrent trial workers. Values
	// below 2 run the ensemble sequentially on a single draw stream.
	Workers int `json:"workers"`

	// InflationRate is the annual rate used for the real-return view
	// of the summary. Zero disables it.
	InflationRate float64 `json:"inflation_rate"`
}

// NewConfig validates and returns an immutable simulation config.
func NewConfig(cfg Config) (Config, error) {
	if cfg.HorizonPeriods <= 0 {
		return Config{}, fmt.Errorf("%w: horizon must be positive, got %d", ErrInvalidConfig, cfg.HorizonPeriods)
	}
	if cfg.NumPaths <= 0 {
		return Config{}, fmt.Errorf("%w: num paths must be positive, got %d", ErrInvalidConfig, cfg.NumPaths)
	}
	if cfg.PurchaseQuantity <= 0 {
		return Config{}, fmt.Errorf("%w: purchase quantity must be positive, got %g", ErrInvalidConfig, cfg.PurchaseQuantity)
	}
	if cfg.PurchasePrice <= 0 {
		return Config{}, fmt.Errorf("%w: purchase price must be positive, got %g", ErrInvalidConfig, cfg.PurchasePrice)
	}
	if cfg.LiquidationSpread < 0 || cfg.LiquidationSpread >= 1 {
		return Config{}, fmt.Errorf("%w: liquidation spread must be in [0,1), got %g", ErrInvalidConfig, cfg.LiquidationSpread)
	}
	if cfg.BonusQuantity < 0 {
		return Config{}, fmt.Errorf("%w: bonus quantity must not be negative, got %g", ErrInvalidConfig, cfg.BonusQuantity)
	}
	if cfg.BonusInterval <= 0 {
		return Config{}, fmt.Errorf("%w: bonus interval must be positive, got %d", ErrInvalidConfig, cfg.BonusInterval)
	}
	if cfg.PriceFloor < 0 {
		return Config{}, fmt.Errorf("%w: price floor must not be negative, got %g", ErrInvalidConfig, cfg.PriceFloor)
	}
	if cfg.PriceFloor >= cfg.PriceCeiling {
		return Config{}, fmt.Errorf("%w: price floor %g must be below ceiling %g", ErrInvalidConfig, cfg.PriceFloor, cfg.PriceCeiling)
	}
	if cfg.HistogramBins <= 0 {
		cfg.HistogramBins = DefaultHistogramBins
	}
	return cfg, nil
}

// Outcome is the terminal record of one simulated path.
type Outcome struct {
	TotalQuantity    float64 `json:"total_grams"`
	TotalInvested    float64 `json:"total_invested"`
	FinalValue       float64 `json:"final_value"`
	ROI              float64 `json:"roi"`
	AnnualizedReturn float64 `json:"annualized_return"`
}

// SamplePath is the full per-period history of one designated trial,
// kept for display. At most one per horizon.
type SamplePath struct {
	Prices      []float64 `json:"prices"`
	Quantities  []float64 `json:"grams_history"`
	Values      []float64 `json:"value_history"`
	Outcome     Outcome   `json:"outcome"`
	MaxDrawdown float64   `json:"max_drawdown"`
}

// HistogramBin is one bucket of the final-value distribution.
type HistogramBin struct {
	Center float64 `json:"value"`
	Count  int     `json:"count"`
	Label  string  `json:"label"`
}

// Scenario pins a named confidence level to the nearest actual outcome
// of the ensemble.
type Scenario struct {
	Name             string  `json:"name"`
	Level            float64 `json:"level"`
	ROI              float64 `json:"roi"`
	FinalValue       float64 `json:"final_value"`
	AnnualizedReturn float64 `json:"annualized_return"`
}

// Summary is the reduced view of one horizon's ensemble. Derived once,
// read-only thereafter.
type Summary struct {
	Years         float64 `json:"years"`
	TotalInvested float64 `json:"total_invested"`
	TotalQuantity float64 `json:"total_grams"`
	BonusQuantity float64 `json:"bonus_grams"`
	BonusImpact   float64 `json:"bonus_impact"`

	Median float64 `json:"median"`
	P5     float64 `json:"p5"`
	P25    float64 `json:"p25"`
	P75    float64 `json:"p75"`
	P95    float64 `json:"p95"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`

	MedianROI            float64 `json:"median_roi"`
	MedianAnnualized     float64 `json:"median_annualized"`
	BreakEvenProbability float64 `json:"break_even_probability"`

	// Real* fields deflate the median final value by the configured
	// annual inflation rate. Zero-valued when inflation is disabled.
	RealMedian           float64 `json:"real_median,omitempty"`
	RealMedianROI        float64 `json:"real_median_roi,omitempty"`
	RealMedianAnnualized float64 `json:"real_median_annualized,omitempty"`

	Histogram []HistogramBin `json:"histogram"`
	Scenarios []Scenario     `json:"scenarios"`

	SamplePath *SamplePath `json:"sample_path,omitempty"`
}
