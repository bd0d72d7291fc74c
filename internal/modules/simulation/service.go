package simulation

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Request describes one top-level simulation run across one or more
// horizons. Each horizon is computed independently; one failing
// horizon does not abort the others.
type Request struct {
	StartPrice float64
	Returns    ReturnSummary
	Params     PathParams
	Seed       int64

	// Configs holds one validated config per horizon, keyed by
	// horizon length in periods.
	Configs map[int]Config
}

// HorizonResult is the per-horizon result-or-error of a run.
type HorizonResult struct {
	Summary *Summary `json:"summary,omitempty"`
	Err     error    `json:"-"`
}

// Service orchestrates the ensemble pipeline per horizon.
type Service struct {
	log zerolog.Logger
}

// NewService creates a simulation service.
func NewService(log zerolog.Logger) *Service {
	return &Service{
		log: log.With().Str("component", "simulation").Logger(),
	}
}

// Run executes every horizon of the request and returns one result per
// horizon. Horizons run with derived seeds (base seed + horizon) so a
// fixed request seed reproduces the whole run while horizons stay
// decorrelated from each other.
func (s *Service) Run(ctx context.Context, req Request) map[int]HorizonResult {
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	results := make(map[int]HorizonResult, len(req.Configs))
	for horizon, cfg := range req.Configs {
		summary, err := s.runHorizon(ctx, req, cfg, seed+int64(horizon))
		if err != nil {
			s.log.Error().Err(err).Int("horizon", horizon).Msg("Horizon simulation failed")
			results[horizon] = HorizonResult{Err: err}
			continue
		}
		results[horizon] = HorizonResult{Summary: summary}
	}
	return results
}

func (s *Service) runHorizon(ctx context.Context, req Request, cfg Config, seed int64) (*Summary, error) {
	// Configs arrive from NewConfig, but a re-check here keeps the
	// no-path-generated-on-bad-config guarantee independent of the
	// caller's discipline.
	cfg, err := NewConfig(cfg)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	runner := NewRunner(cfg, req.Returns, req.Params, req.StartPrice, s.log)

	outcomes, sample, err := runner.Run(ctx, seed)
	if err != nil {
		return nil, err
	}

	summary, err := Aggregate(outcomes, cfg)
	if err != nil {
		return nil, err
	}
	summary.SamplePath = sample

	s.log.Info().
		Int("horizon", cfg.HorizonPeriods).
		Int("paths", cfg.NumPaths).
		Float64("median", summary.Median).
		Float64("break_even", summary.BreakEvenProbability).
		Dur("duration_ms", time.Since(start)).
		Msg("Horizon simulated")

	return &summary, nil
}
