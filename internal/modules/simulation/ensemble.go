package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Runner executes the full path-generation → accumulation pipeline for
// one horizon, collecting one terminal outcome per trial in generation
// order. Trials share no mutable state: sequential runs consume one
// draw stream that is never reset, parallel runs give each worker an
// independently seeded stream.
type Runner struct {
	cfg        Config
	returns    ReturnSummary
	params     PathParams
	startPrice float64
	log        zerolog.Logger
}

// NewRunner creates a runner for one horizon. cfg must come from
// NewConfig.
func NewRunner(cfg Config, returns ReturnSummary, params PathParams, startPrice float64, log zerolog.Logger) *Runner {
	return &Runner{
		cfg:        cfg,
		returns:    returns,
		params:     params,
		startPrice: startPrice,
		log:        log.With().Str("component", "ensemble").Int("horizon", cfg.HorizonPeriods).Logger(),
	}
}

// Run executes cfg.NumPaths independent trials and returns the
// outcomes in generation order together with the sample path of the
// generation-order midpoint trial. A zero seed picks a time-based one.
func (r *Runner) Run(ctx context.Context, seed int64) ([]Outcome, *SamplePath, error) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	start := time.Now()
	outcomes := make([]Outcome, r.cfg.NumPaths)
	sampleIdx := r.cfg.NumPaths / 2
	var sample *SamplePath
	var err error

	if r.cfg.Workers > 1 {
		sample, err = r.runParallel(ctx, seed, outcomes, sampleIdx)
	} else {
		sample, err = r.runSequential(ctx, seed, outcomes, sampleIdx)
	}
	if err != nil {
		return nil, nil, err
	}

	r.log.Debug().
		Int("paths", r.cfg.NumPaths).
		Int("workers", r.cfg.Workers).
		Dur("duration_ms", time.Since(start)).
		Msg("Ensemble complete")

	return outcomes, sample, nil
}

func (r *Runner) runSequential(ctx context.Context, seed int64, outcomes []Outcome, sampleIdx int) (*SamplePath, error) {
	src := NewNormalSource(seed)
	gen := NewPathGenerator(r.returns, r.params, r.cfg.PriceFloor, r.cfg.PriceCeiling, src)

	var sample *SamplePath
	for i := range outcomes {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("ensemble cancelled after %d paths: %w", i, err)
		}

		path := gen.Generate(r.startPrice, r.cfg.HorizonPeriods)
		if i == sampleIdx {
			outcomes[i], sample = AccumulateWithHistory(path, r.cfg)
		} else {
			outcomes[i] = Accumulate(path, r.cfg)
		}
	}
	return sample, nil
}

func (r *Runner) runParallel(ctx context.Context, seed int64, outcomes []Outcome, sampleIdx int) (*SamplePath, error) {
	workers := r.cfg.Workers
	if workers > len(outcomes) {
		workers = len(outcomes)
	}

	var sample *SamplePath
	g, ctx := errgroup.WithContext(ctx)

	chunk := (len(outcomes) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > len(outcomes) {
			hi = len(outcomes)
		}
		if lo >= hi {
			break
		}

		// Each worker owns a disjoint slice of trials and its own
		// seeded stream, so paths stay uncorrelated across workers.
		src := NewNormalSource(seed + int64(w))
		g.Go(func() error {
			gen := NewPathGenerator(r.returns, r.params, r.cfg.PriceFloor, r.cfg.PriceCeiling, src)
			for i := lo; i < hi; i++ {
				if err := ctx.Err(); err != nil {
					return fmt.Errorf("ensemble cancelled: %w", err)
				}

				path := gen.Generate(r.startPrice, r.cfg.HorizonPeriods)
				if i == sampleIdx {
					outcomes[i], sample = AccumulateWithHistory(path, r.cfg)
				} else {
					outcomes[i] = Accumulate(path, r.cfg)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sample, nil
}
