package history

import (
	"fmt"
	"sync"

	"github.com/aristath/goldsim/internal/modules/simulation"
	"github.com/rs/zerolog"
)

// Service owns the historical series: cached in the repository,
// imported from a snapshot when one is configured, synthesized
// otherwise. It is the simulation module's ReturnSource.
type Service struct {
	repo     *Repository
	snapshot *SnapshotReader
	seed     int64
	log      zerolog.Logger

	mu     sync.RWMutex
	series []Point
	stats  Statistics
}

// NewService creates a history service. seed controls the synthetic
// generator for reproducible test setups; zero means time-based.
func NewService(repo *Repository, snapshot *SnapshotReader, seed int64, log zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		snapshot: snapshot,
		seed:     seed,
		log:      log.With().Str("component", "history").Logger(),
	}
}

// Load makes the series available, in priority order: in-memory,
// repository cache, snapshot import, synthetic generation. The first
// source that yields data wins and is cached downstream.
func (s *Service) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.series) > 0 {
		return nil
	}

	points, err := s.repo.LoadSeries()
	if err != nil {
		return fmt.Errorf("failed to load cached series: %w", err)
	}

	if len(points) == 0 {
		points, err = s.acquire()
		if err != nil {
			return err
		}
		if err := s.repo.SaveSeries(points); err != nil {
			return fmt.Errorf("failed to cache series: %w", err)
		}
	}

	s.setSeries(points)
	return nil
}

// Refresh regenerates (or re-imports) the series and replaces the
// cache. Called by the scheduled refresh job.
func (s *Service) Refresh() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	points, err := s.acquire()
	if err != nil {
		return err
	}
	if err := s.repo.SaveSeries(points); err != nil {
		return fmt.Errorf("failed to cache series: %w", err)
	}

	s.setSeries(points)
	s.log.Info().Int("points", len(points)).Msg("Historical series refreshed")
	return nil
}

func (s *Service) acquire() ([]Point, error) {
	if s.snapshot != nil && s.snapshot.Available() {
		points, err := s.snapshot.ReadSeries()
		if err == nil && len(points) > 0 {
			return points, nil
		}
		if err != nil {
			s.log.Warn().Err(err).Msg("Snapshot import failed, falling back to synthetic series")
		}
	}

	s.log.Info().Msg("Generating synthetic historical series")
	return GenerateSeries(s.seed), nil
}

// setSeries must be called with mu held.
func (s *Service) setSeries(points []Point) {
	s.series = points
	s.stats = ComputeStatistics(prices(points))
}

// Series returns the historical points and their statistics.
func (s *Service) Series() ([]Point, Statistics, error) {
	if err := s.Load(); err != nil {
		return nil, Statistics{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.series, s.stats, nil
}

// ReturnSummary implements simulation.ReturnSource.
func (s *Service) ReturnSummary() (simulation.ReturnSummary, float64, error) {
	_, stats, err := s.Series()
	if err != nil {
		return simulation.ReturnSummary{}, 0, err
	}

	return simulation.ReturnSummary{
		MeanReturn: stats.MeanMonthlyReturn,
		StdReturn:  stats.StdMonthlyReturn,
	}, stats.CurrentPrice, nil
}

func prices(points []Point) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Price
	}
	return out
}
