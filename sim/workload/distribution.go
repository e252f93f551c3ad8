package workload

import (
	"math/rand"
)

// Sampler draws real-valued samples: durations in simulated seconds or
// quantities such as helper counts.
type Sampler interface {
	Sample(rng *rand.Rand) float64
}

// UniformSampler draws uniformly from [lo, hi).
type UniformSampler struct {
	lo, hi float64
}

// NewUniformSampler creates a sampler over [lo, hi). Bounds given in the wrong
// order are swapped.
func NewUniformSampler(lo, hi float64) *UniformSampler {
	if lo > hi {
		lo, hi = hi, lo
	}
	return &UniformSampler{lo: lo, hi: hi}
}

// NewUniformAround creates a sampler over [mean-spread, mean+spread).
func NewUniformAround(mean, spread float64) *UniformSampler {
	return NewUniformSampler(mean-spread, mean+spread)
}

func (s *UniformSampler) Sample(rng *rand.Rand) float64 {
	if s.lo == s.hi {
		return s.lo
	}
	return s.lo + rng.Float64()*(s.hi-s.lo)
}

// Min returns the lower bound.
func (s *UniformSampler) Min() float64 { return s.lo }

// Max returns the upper bound.
func (s *UniformSampler) Max() float64 { return s.hi }

// ExponentialSampler draws exponentially-distributed values with the given mean.
type ExponentialSampler struct {
	mean float64
}

// NewExponentialSampler creates an exponential sampler. A non-positive mean
// yields a sampler that always returns 0.
func NewExponentialSampler(mean float64) *ExponentialSampler {
	if mean < 0 {
		mean = 0
	}
	return &ExponentialSampler{mean: mean}
}

func (s *ExponentialSampler) Sample(rng *rand.Rand) float64 {
	return rng.ExpFloat64() * s.mean
}

// Mean returns the configured mean.
func (s *ExponentialSampler) Mean() float64 { return s.mean }

// ConstantSampler always returns the same fixed value.
// Used for deterministic scenarios and tests.
type ConstantSampler struct {
	value float64
}

// NewConstantSampler creates a sampler returning value on every draw.
func NewConstantSampler(value float64) *ConstantSampler {
	return &ConstantSampler{value: value}
}

func (s *ConstantSampler) Sample(_ *rand.Rand) float64 {
	return s.value
}

// SequenceSampler replays a fixed list of values, repeating the last one
// once the list is exhausted.
type SequenceSampler struct {
	values []float64
	next   int
}

// NewSequenceSampler creates a sampler replaying values in order.
func NewSequenceSampler(values ...float64) *SequenceSampler {
	return &SequenceSampler{values: append([]float64(nil), values...)}
}

func (s *SequenceSampler) Sample(_ *rand.Rand) float64 {
	if len(s.values) == 0 {
		return 0
	}
	if s.next >= len(s.values) {
		return s.values[len(s.values)-1]
	}
	v := s.values[s.next]
	s.next++
	return v
}
