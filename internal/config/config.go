package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port         int
	DevMode      bool
	LogLevel     string
	DatabasePath string

	// Optional external gold-price snapshot (SQLite). Empty means the
	// synthetic series is used.
	HistorySnapshotPath string

	// Subscription plan parameters (EUR per gram).
	BuyPricePerGram   float64
	SellPricePerGram  float64
	MonthlyGrams      float64
	Subscriptions     int
	BonusGramsPerYear float64

	// Simulation defaults.
	SimulationPeriods []int
	NumSimulations    int
	RandomSeed        int64
	Workers           int
	InflationRate     float64
	PriceFloor        float64
	PriceCeiling      float64
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnvAsInt("PORT", 8000),
		DevMode:      getEnvAsBool("DEV_MODE", false),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		DatabasePath: getEnv("DATABASE_PATH", "./data/goldsim.db"),

		HistorySnapshotPath: getEnv("HISTORY_SNAPSHOT_PATH", ""),

		BuyPricePerGram:   getEnvAsFloat("BUY_PRICE_PER_GRAM", 124.24),
		SellPricePerGram:  getEnvAsFloat("SELL_PRICE_PER_GRAM", 111.97),
		MonthlyGrams:      getEnvAsFloat("MONTHLY_GRAMS", 4.0),
		Subscriptions:     getEnvAsInt("SUBSCRIPTIONS", 1),
		BonusGramsPerYear: getEnvAsFloat("BONUS_GRAMS_PER_YEAR", 4.0),

		SimulationPeriods: getEnvAsInts("SIMULATION_PERIODS", []int{36, 60, 120}),
		NumSimulations:    getEnvAsInt("NUM_SIMULATIONS", 10000),
		RandomSeed:        int64(getEnvAsInt("RANDOM_SEED", 0)),
		Workers:           getEnvAsInt("SIMULATION_WORKERS", 1),
		InflationRate:     getEnvAsFloat("INFLATION_RATE", 0.02),
		PriceFloor:        getEnvAsFloat("PRICE_FLOOR", 20),
		PriceCeiling:      getEnvAsFloat("PRICE_CEILING", 500),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present and coherent.
// Simulation parameters get a second, stricter validation in the
// simulation package; this pass catches broken deployments early.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	if c.BuyPricePerGram <= 0 {
		return fmt.Errorf("BUY_PRICE_PER_GRAM must be positive")
	}
	if c.SellPricePerGram <= 0 || c.SellPricePerGram > c.BuyPricePerGram {
		return fmt.Errorf("SELL_PRICE_PER_GRAM must be positive and not above the buy price")
	}
	if c.MonthlyGrams <= 0 {
		return fmt.Errorf("MONTHLY_GRAMS must be positive")
	}
	if c.Subscriptions <= 0 {
		return fmt.Errorf("SUBSCRIPTIONS must be positive")
	}
	if c.BonusGramsPerYear < 0 {
		return fmt.Errorf("BONUS_GRAMS_PER_YEAR must not be negative")
	}
	if len(c.SimulationPeriods) == 0 {
		return fmt.Errorf("SIMULATION_PERIODS must name at least one horizon")
	}
	for _, p := range c.SimulationPeriods {
		if p <= 0 {
			return fmt.Errorf("SIMULATION_PERIODS entries must be positive, got %d", p)
		}
	}
	if c.NumSimulations <= 0 {
		return fmt.Errorf("NUM_SIMULATIONS must be positive")
	}
	if c.PriceFloor < 0 || c.PriceFloor >= c.PriceCeiling {
		return fmt.Errorf("PRICE_FLOOR must be non-negative and below PRICE_CEILING")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsInts(key string, defaultValue []int) []int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []int
	for _, part := range strings.Split(value, ",") {
		intVal, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return defaultValue
		}
		out = append(out, intVal)
	}
	return out
}
