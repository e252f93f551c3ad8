package workload

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniformSampler_StaysWithinBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := NewUniformAround(300, 180)

	for i := 0; i < 10000; i++ {
		v := s.Sample(rng)
		if v < 120 || v >= 480 {
			t.Fatalf("sample %d = %v outside [120, 480)", i, v)
		}
	}
}

func TestUniformSampler_SwappedBounds(t *testing.T) {
	s := NewUniformSampler(10, 2)
	assert.Equal(t, 2.0, s.Min())
	assert.Equal(t, 10.0, s.Max())
}

func TestUniformSampler_DegenerateRange_ReturnsBound(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := NewUniformAround(5, 0)
	assert.Equal(t, 5.0, s.Sample(rng))
}

func TestExponentialSampler_MeanConverges(t *testing.T) {
	// GIVEN an exponential sampler with mean 360
	rng := rand.New(rand.NewSource(42))
	s := NewExponentialSampler(360)

	// WHEN drawing many samples
	const n = 50000
	sum := 0.0
	for i := 0; i < n; i++ {
		v := s.Sample(rng)
		if v < 0 {
			t.Fatalf("negative sample %v", v)
		}
		sum += v
	}

	// THEN the sample mean is within 3% of the configured mean
	mean := sum / n
	if math.Abs(mean-360)/360 > 0.03 {
		t.Errorf("sample mean = %.2f, want ~360", mean)
	}
}

func TestSequenceSampler_RepeatsLastValue(t *testing.T) {
	s := NewSequenceSampler(1, 2, 3)
	got := []float64{s.Sample(nil), s.Sample(nil), s.Sample(nil), s.Sample(nil)}
	assert.Equal(t, []float64{1, 2, 3, 3}, got)
}

func TestConstantSampler(t *testing.T) {
	assert.Equal(t, 42.0, NewConstantSampler(42).Sample(nil))
}
