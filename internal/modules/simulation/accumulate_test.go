package simulation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, cfg Config) Config {
	t.Helper()
	validated, err := NewConfig(cfg)
	require.NoError(t, err)
	return validated
}

func constantPath(price float64, periods int) []float64 {
	path := make([]float64, periods)
	for i := range path {
		path[i] = price
	}
	return path
}

func TestAccumulateDeterministicScenario(t *testing.T) {
	// 12 months, 4 g/month at 100 EUR/g, 4 bonus grams at month 12,
	// no spread, constant price.
	cfg := testConfig(t, Config{
		HorizonPeriods:    12,
		NumPaths:          1,
		PurchaseQuantity:  4,
		PurchasePrice:     100,
		LiquidationSpread: 0,
		BonusQuantity:     4,
		BonusInterval:     12,
		PriceFloor:        0.01,
		PriceCeiling:      1000,
	})

	startPrice := 100.0
	outcome := Accumulate(constantPath(startPrice, 12), cfg)

	assert.Equal(t, 52.0, outcome.TotalQuantity)
	assert.Equal(t, 4800.0, outcome.TotalInvested)
	assert.Equal(t, 52*startPrice, outcome.FinalValue)
	assert.InDelta(t, (52*startPrice-4800)/4800*100, outcome.ROI, 1e-12)
}

func TestAccumulateQuantityFormula(t *testing.T) {
	tests := []struct {
		name          string
		horizon       int
		purchaseQty   float64
		bonusQty      float64
		bonusInterval int
	}{
		{name: "three years annual bonus", horizon: 36, purchaseQty: 4, bonusQty: 4, bonusInterval: 12},
		{name: "horizon not multiple of interval", horizon: 40, purchaseQty: 4, bonusQty: 4, bonusInterval: 12},
		{name: "quarterly bonus", horizon: 24, purchaseQty: 2.5, bonusQty: 1, bonusInterval: 3},
		{name: "no bonus", horizon: 60, purchaseQty: 1, bonusQty: 0, bonusInterval: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t, Config{
				HorizonPeriods:   tt.horizon,
				NumPaths:         1,
				PurchaseQuantity: tt.purchaseQty,
				PurchasePrice:    124.24,
				BonusQuantity:    tt.bonusQty,
				BonusInterval:    tt.bonusInterval,
				PriceFloor:       20,
				PriceCeiling:     500,
			})

			outcome := Accumulate(constantPath(124.24, tt.horizon), cfg)

			want := float64(tt.horizon)*tt.purchaseQty +
				math.Floor(float64(tt.horizon)/float64(tt.bonusInterval))*tt.bonusQty
			assert.InDelta(t, want, outcome.TotalQuantity, 1e-9)
			assert.InDelta(t, float64(tt.horizon)*tt.purchaseQty*124.24, outcome.TotalInvested, 1e-9)
		})
	}
}

func TestAccumulateFinalValueNeverNegative(t *testing.T) {
	cfg := testConfig(t, Config{
		HorizonPeriods:    24,
		NumPaths:          1,
		PurchaseQuantity:  4,
		PurchasePrice:     124.24,
		LiquidationSpread: 0.0987,
		BonusQuantity:     4,
		BonusInterval:     12,
		PriceFloor:        0,
		PriceCeiling:      500,
	})

	// Worst case: price pinned at the floor the whole time.
	outcome := Accumulate(constantPath(0, 24), cfg)
	assert.GreaterOrEqual(t, outcome.FinalValue, 0.0)
}

func TestAccumulateSpreadReducesValue(t *testing.T) {
	base := Config{
		HorizonPeriods:   12,
		NumPaths:         1,
		PurchaseQuantity: 4,
		PurchasePrice:    124.24,
		BonusQuantity:    4,
		BonusInterval:    12,
		PriceFloor:       20,
		PriceCeiling:     500,
	}

	noSpread := base
	withSpread := base
	withSpread.LiquidationSpread = 0.0987

	path := constantPath(124.24, 12)
	a := Accumulate(path, testConfig(t, noSpread))
	b := Accumulate(path, testConfig(t, withSpread))

	assert.InDelta(t, a.FinalValue*(1-0.0987), b.FinalValue, 1e-9)
	assert.Less(t, b.ROI, a.ROI)
}

func TestAccumulateWithHistory(t *testing.T) {
	cfg := testConfig(t, Config{
		HorizonPeriods:   12,
		NumPaths:         1,
		PurchaseQuantity: 4,
		PurchasePrice:    100,
		BonusQuantity:    4,
		BonusInterval:    12,
		PriceFloor:       0.01,
		PriceCeiling:     1000,
	})

	outcome, sample := AccumulateWithHistory(constantPath(100, 12), cfg)
	require.NotNil(t, sample)

	assert.Len(t, sample.Quantities, 12)
	assert.Len(t, sample.Values, 12)
	assert.Equal(t, outcome, sample.Outcome)

	// Quantities strictly increase every period.
	for i := 1; i < len(sample.Quantities); i++ {
		assert.Greater(t, sample.Quantities[i], sample.Quantities[i-1])
	}
	// Bonus lands at the interval boundary.
	assert.Equal(t, 4.0*11, sample.Quantities[10])
	assert.Equal(t, 4.0*12+4, sample.Quantities[11])
	// Constant prices mean the value series never draws down.
	assert.Zero(t, sample.MaxDrawdown)
}

func TestAccumulateAnnualizedReturn(t *testing.T) {
	cfg := testConfig(t, Config{
		HorizonPeriods:   24,
		NumPaths:         1,
		PurchaseQuantity: 4,
		PurchasePrice:    100,
		BonusQuantity:    0,
		BonusInterval:    12,
		PriceFloor:       0.01,
		PriceCeiling:     10000,
	})

	outcome := Accumulate(constantPath(121, 24), cfg)

	// finalValue/invested = 96*121/9600 = 1.21 over two years → 10%/yr.
	assert.InDelta(t, 10.0, outcome.AnnualizedReturn, 1e-9)
}
