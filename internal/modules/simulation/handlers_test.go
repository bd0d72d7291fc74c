package simulation

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReturnSource struct {
	returns ReturnSummary
	price   float64
	err     error
}

func (s *stubReturnSource) ReturnSummary() (ReturnSummary, float64, error) {
	return s.returns, s.price, s.err
}

func testDefaults() Defaults {
	return Defaults{
		BuyPrice:          124.24,
		SellPrice:         111.97,
		MonthlyGrams:      4,
		Subscriptions:     1,
		BonusGramsPerYear: 4,
		PriceFloor:        20,
		PriceCeiling:      500,
		Periods:           []int{36, 60},
		NumPaths:          100,
		Workers:           1,
		InflationRate:     0.02,
		Seed:              42,
	}
}

func TestHandleSimulate(t *testing.T) {
	source := &stubReturnSource{
		returns: ReturnSummary{MeanReturn: 0.005, StdReturn: 0.05},
		price:   95.4,
	}
	handler := NewHandler(NewService(zerolog.Nop()), source, testDefaults(), zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/simulate",
		strings.NewReader(`{"periods":[12],"num_simulations":50,"seed":7}`))
	rec := httptest.NewRecorder()

	handler.HandleSimulate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Results map[string]json.RawMessage `json:"results"`
		Params  map[string]interface{}     `json:"params"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	require.Contains(t, body.Results, "12")
	var summary Summary
	require.NoError(t, json.Unmarshal(body.Results["12"], &summary))

	assert.InDelta(t, 1.0, summary.Years, 1e-9)
	assert.InDelta(t, 12*4*124.24, summary.TotalInvested, 1e-9)
	assert.GreaterOrEqual(t, summary.BreakEvenProbability, 0.0)
	assert.LessOrEqual(t, summary.BreakEvenProbability, 100.0)
	assert.NotNil(t, summary.SamplePath)
	assert.Len(t, summary.Histogram, DefaultHistogramBins)

	assert.Equal(t, 95.4, body.Params["current_price"])
}

func TestHandleSimulateDefaults(t *testing.T) {
	source := &stubReturnSource{
		returns: ReturnSummary{MeanReturn: 0.005, StdReturn: 0.05},
		price:   95.4,
	}
	handler := NewHandler(NewService(zerolog.Nop()), source, testDefaults(), zerolog.Nop())

	// Empty body: all defaults apply.
	req := httptest.NewRequest(http.MethodPost, "/api/simulate", nil)
	rec := httptest.NewRecorder()

	handler.HandleSimulate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Results map[string]json.RawMessage `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Results, "36")
	assert.Contains(t, body.Results, "60")
}

func TestHandleSimulateInvalidBody(t *testing.T) {
	handler := NewHandler(NewService(zerolog.Nop()), &stubReturnSource{}, testDefaults(), zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/simulate", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	handler.HandleSimulate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSimulateInvalidPeriods(t *testing.T) {
	source := &stubReturnSource{
		returns: ReturnSummary{MeanReturn: 0.005, StdReturn: 0.05},
		price:   95.4,
	}
	handler := NewHandler(NewService(zerolog.Nop()), source, testDefaults(), zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/simulate",
		strings.NewReader(`{"periods":[-5]}`))
	rec := httptest.NewRecorder()

	handler.HandleSimulate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
