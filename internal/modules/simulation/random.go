package simulation

import (
	"math"
	"math/rand"
	"time"
)

// NormalSource produces standard-normal deviates via the Box-Muller
// transform over an owned uniform generator. It is not safe for
// concurrent use; give each worker its own instance with a distinct
// seed (see Runner).
type NormalSource struct {
	rng *rand.Rand
}

// NewNormalSource creates a seeded source. A zero seed falls back to
// the wall clock, matching the usual "no seed requested" behavior.
//
//nolint:gosec // G404: Monte Carlo simulation doesn't require crypto-grade randomness
func NewNormalSource(seed int64) *NormalSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &NormalSource{rng: rand.New(rand.NewSource(seed))}
}

// Next returns one standard-normal deviate.
//
// sqrt(-2 ln u) * cos(2π v), with u redrawn on an exact zero so the
// log never degenerates.
func (s *NormalSource) Next() float64 {
	u := s.rng.Float64()
	for u == 0 {
		u = s.rng.Float64()
	}
	v := s.rng.Float64()
	return math.Sqrt(-2*math.Log(u)) * math.Cos(2*math.Pi*v)
}

// Uniform returns one uniform deviate in [0,1) from the same stream.
// Used for jump-event occurrence, magnitude and sign draws.
func (s *NormalSource) Uniform() float64 {
	return s.rng.Float64()
}
