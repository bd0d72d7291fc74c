package simulation

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"
)

// ReturnSource supplies the historical return distribution and the
// current price the paths start from. Implemented by the history
// module; kept as an interface so this package stays free of storage
// concerns.
type ReturnSource interface {
	ReturnSummary() (ReturnSummary, float64, error)
}

// Defaults carries the subscription plan parameters used when a
// request does not override them. Built from app config at startup.
type Defaults struct {
	BuyPrice          float64
	SellPrice         float64
	MonthlyGrams      float64
	Subscriptions     int
	BonusGramsPerYear float64
	PriceFloor        float64
	PriceCeiling      float64
	Periods           []int
	NumPaths          int
	Workers           int
	InflationRate     float64
	Seed              int64
}

// Spread derives the liquidation haircut from the buy/sell quote pair.
func (d Defaults) Spread() float64 {
	return (d.BuyPrice - d.SellPrice) / d.BuyPrice
}

// Handler handles HTTP requests for the simulation module.
type Handler struct {
	service  *Service
	source   ReturnSource
	defaults Defaults
	log      zerolog.Logger
}

// NewHandler creates a new simulation handler.
func NewHandler(service *Service, source ReturnSource, defaults Defaults, log zerolog.Logger) *Handler {
	return &Handler{
		service:  service,
		source:   source,
		defaults: defaults,
		log:      log.With().Str("component", "simulation_handler").Logger(),
	}
}

type simulateRequest struct {
	Periods        []int `json:"periods"`
	NumSimulations int   `json:"num_simulations"`
	Seed           int64 `json:"seed"`
	Workers        int   `json:"workers"`
}

// HandleSimulate handles POST /api/simulate - runs the Monte Carlo
// pipeline for each requested horizon.
func (h *Handler) HandleSimulate(w http.ResponseWriter, r *http.Request) {
	var body simulateRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	periods := body.Periods
	if len(periods) == 0 {
		periods = h.defaults.Periods
	}
	numPaths := body.NumSimulations
	if numPaths == 0 {
		numPaths = h.defaults.NumPaths
	}
	seed := body.Seed
	if seed == 0 {
		seed = h.defaults.Seed
	}
	workers := body.Workers
	if workers == 0 {
		workers = h.defaults.Workers
	}

	returns, currentPrice, err := h.source.ReturnSummary()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load return statistics")
		h.writeError(w, http.StatusInternalServerError, "Failed to load historical statistics")
		return
	}

	configs := make(map[int]Config, len(periods))
	for _, horizon := range periods {
		cfg, err := NewConfig(Config{
			HorizonPeriods:    horizon,
			NumPaths:          numPaths,
			PurchaseQuantity:  h.defaults.MonthlyGrams * float64(h.defaults.Subscriptions),
			PurchasePrice:     h.defaults.BuyPrice,
			LiquidationSpread: h.defaults.Spread(),
			BonusQuantity:     h.defaults.BonusGramsPerYear,
			BonusInterval:     PeriodsPerYear,
			PriceFloor:        h.defaults.PriceFloor,
			PriceCeiling:      h.defaults.PriceCeiling,
			Workers:           workers,
			InflationRate:     h.defaults.InflationRate,
		})
		if err != nil {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		configs[horizon] = cfg
	}

	results := h.service.Run(r.Context(), Request{
		StartPrice: h.defaults.BuyPrice,
		Returns:    returns,
		Params:     PathParams{},
		Seed:       seed,
		Configs:    configs,
	})

	// Partial-failure semantics: each horizon reports its summary or
	// its own error, never all-or-nothing across horizons.
	payload := make(map[string]interface{}, len(results))
	failed := 0
	for horizon, res := range results {
		key := strconv.Itoa(horizon)
		if res.Err != nil {
			failed++
			payload[key] = map[string]string{"error": res.Err.Error()}
			continue
		}
		payload[key] = res.Summary
	}

	status := http.StatusOK
	if failed == len(results) {
		status = http.StatusInternalServerError
		if allInvalidConfig(results) {
			status = http.StatusBadRequest
		}
	}

	h.writeJSON(w, status, map[string]interface{}{
		"results": payload,
		"params": map[string]interface{}{
			"buy_price":            h.defaults.BuyPrice,
			"sell_price":           h.defaults.SellPrice,
			"spread":               h.defaults.Spread(),
			"monthly_grams":        h.defaults.MonthlyGrams,
			"subscriptions":        h.defaults.Subscriptions,
			"bonus_grams_per_year": h.defaults.BonusGramsPerYear,
			"current_price":        currentPrice,
		},
		"statistics": returns,
	})
}

func allInvalidConfig(results map[int]HorizonResult) bool {
	for _, res := range results {
		if !errors.Is(res.Err, ErrInvalidConfig) {
			return false
		}
	}
	return true
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes an error response
func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
