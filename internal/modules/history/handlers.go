package history

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

// Handler handles HTTP requests for the history module.
type Handler struct {
	service *Service
	log     zerolog.Logger
}

// NewHandler creates a new history handler.
func NewHandler(service *Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("component", "history_handler").Logger(),
	}
}

// HandleGetHistory handles GET /api/history - returns the historical
// series and its return statistics.
func (h *Handler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	points, stats, err := h.service.Series()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load historical series")
		h.writeError(w, http.StatusInternalServerError, "Failed to load historical series")
		return
	}

	dates := make([]string, len(points))
	values := make([]float64, len(points))
	for i, p := range points {
		dates[i] = p.YearMonth
		values[i] = p.Price
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"dates":      dates,
		"prices":     values,
		"statistics": stats,
	})
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
