package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculatePercentile_Interpolates(t *testing.T) {
	data := []float64{10, 20, 30, 40, 50}

	assert.InDelta(t, 10.0, CalculatePercentile(data, 0), 1e-9)
	assert.InDelta(t, 30.0, CalculatePercentile(data, 50), 1e-9)
	assert.InDelta(t, 50.0, CalculatePercentile(data, 100), 1e-9)
	// rank 0.9*4 = 3.6 → 40 + 0.6*10
	assert.InDelta(t, 46.0, CalculatePercentile(data, 90), 1e-9)
}

func TestCalculatePercentile_EmptyAndSingle(t *testing.T) {
	assert.Equal(t, 0.0, CalculatePercentile([]float64{}, 50))
	assert.Equal(t, 7.0, CalculatePercentile([]int{7}, 99))
}

func TestCalculateMean(t *testing.T) {
	assert.Equal(t, 0.0, CalculateMean([]float64{}))
	assert.InDelta(t, 2.5, CalculateMean([]int{1, 2, 3, 4}), 1e-9)
	assert.InDelta(t, 20.0, CalculateMean([]int64{10, 30}), 1e-9)
}
