package temporal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpectralFluxLength(t *testing.T) {
	flux := NewSpectralFlux()

	frames := [][]float64{
		{1, 0, 0},
		{1, 1, 0},
		{1, 1, 1},
	}

	envelope := flux.Compute(frames)
	assert.Len(t, envelope, 3)
}

func TestSpectralFluxEmptyInput(t *testing.T) {
	flux := NewSpectralFlux()

	assert.Empty(t, flux.Compute(nil))
	assert.Empty(t, flux.Compute([][]float64{}))
}

func TestSpectralFluxHalfWaveRectification(t *testing.T) {
	flux := NewSpectralFlux()

	// Second frame only loses energy; negative deltas must not contribute.
	frames := [][]float64{
		{2, 2, 2},
		{1, 0, 2},
	}

	envelope := flux.Compute(frames)
	require.Len(t, envelope, 2)
	assert.InDelta(t, 6.0, envelope[0], 1e-12)
	assert.InDelta(t, 0.0, envelope[1], 1e-12)
}

func TestSpectralFluxFirstValueAgainstZeroSpectrum(t *testing.T) {
	flux := NewSpectralFlux()

	// A steady spectrum produces zero flux everywhere except the first
	// frame, which is compared against an implicit all-zero predecessor.
	steady := []float64{3, 1, 4, 1, 5}
	frames := [][]float64{steady, steady, steady, steady}

	envelope := flux.Compute(frames)
	require.Len(t, envelope, 4)

	assert.InDelta(t, 14.0, envelope[0], 1e-12)
	for _, val := range envelope[1:] {
		assert.InDelta(t, 0.0, val, 1e-12)
	}
	assert.Greater(t, envelope[0], envelope[1])
}

func TestSpectralFluxNonNegative(t *testing.T) {
	flux := NewSpectralFlux()

	frames := [][]float64{
		{5, 0, 1},
		{0, 2, 0},
		{3, 0, 4},
	}

	for _, val := range flux.Compute(frames) {
		assert.GreaterOrEqual(t, val, 0.0)
	}
}
