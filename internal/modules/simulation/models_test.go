package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		HorizonPeriods:    36,
		NumPaths:          1000,
		PurchaseQuantity:  4,
		PurchasePrice:     124.24,
		LiquidationSpread: 0.0987,
		BonusQuantity:     4,
		BonusInterval:     12,
		PriceFloor:        20,
		PriceCeiling:      500,
	}
}

func TestNewConfigValid(t *testing.T) {
	cfg, err := NewConfig(validConfig())
	require.NoError(t, err)

	assert.Equal(t, DefaultHistogramBins, cfg.HistogramBins, "histogram bins default when unset")
}

func TestNewConfigRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero horizon", func(c *Config) { c.HorizonPeriods = 0 }},
		{"negative horizon", func(c *Config) { c.HorizonPeriods = -12 }},
		{"zero paths", func(c *Config) { c.NumPaths = 0 }},
		{"zero purchase quantity", func(c *Config) { c.PurchaseQuantity = 0 }},
		{"negative purchase quantity", func(c *Config) { c.PurchaseQuantity = -1 }},
		{"zero purchase price", func(c *Config) { c.PurchasePrice = 0 }},
		{"spread of one", func(c *Config) { c.LiquidationSpread = 1 }},
		{"negative spread", func(c *Config) { c.LiquidationSpread = -0.1 }},
		{"negative bonus", func(c *Config) { c.BonusQuantity = -1 }},
		{"zero bonus interval", func(c *Config) { c.BonusInterval = 0 }},
		{"negative floor", func(c *Config) { c.PriceFloor = -1 }},
		{"floor above ceiling", func(c *Config) { c.PriceFloor = 600 }},
		{"floor equals ceiling", func(c *Config) { c.PriceFloor = 500 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			_, err := NewConfig(cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestDefaultsSpread(t *testing.T) {
	d := Defaults{BuyPrice: 124.24, SellPrice: 111.97}
	assert.InDelta(t, (124.24-111.97)/124.24, d.Spread(), 1e-12)
}
