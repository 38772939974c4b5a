package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 0.0, Mean([]float64{}))
	assert.InDelta(t, 2.5, Mean([]float64{1, 2, 3, 4}), 1e-12)
	assert.InDelta(t, -1.0, Mean([]float64{-1, -1, -1}), 1e-12)
}

func TestPopVariance(t *testing.T) {
	assert.Equal(t, 0.0, PopVariance(nil))
	assert.Equal(t, 0.0, PopVariance([]float64{5, 5, 5, 5}))

	// Population variance divides by N: mean 3, squared deviations 4+0+4.
	assert.InDelta(t, 8.0/3.0, PopVariance([]float64{1, 3, 5}), 1e-12)
}

func TestRMS(t *testing.T) {
	assert.Equal(t, 0.0, RMS(nil))
	assert.InDelta(t, 2.0, RMS([]float64{2, -2, 2, -2}), 1e-12)
	assert.InDelta(t, math.Sqrt(14.0/3.0), RMS([]float64{1, 2, 3}), 1e-12)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-0.5, 0, 1))
	assert.Equal(t, 1.0, Clamp(3.7, 0, 1))
	assert.Equal(t, 0.42, Clamp(0.42, 0, 1))
	assert.Equal(t, 0.0, Clamp(0.0, 0, 1))
	assert.Equal(t, 1.0, Clamp(1.0, 0, 1))
}
