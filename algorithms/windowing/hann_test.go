package windowing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHannCoefficients(t *testing.T) {
	window := NewHann(8)
	coeffs := window.GetCoefficients()

	require.Len(t, coeffs, 8)

	// Symmetric window: zero at both ends, mirrored around the center.
	assert.InDelta(t, 0.0, coeffs[0], 1e-12)
	assert.InDelta(t, 0.0, coeffs[7], 1e-12)
	for i := 0; i < 4; i++ {
		assert.InDelta(t, coeffs[i], coeffs[7-i], 1e-12)
	}
}

func TestHannPeakAtCenter(t *testing.T) {
	window := NewHann(9)
	coeffs := window.GetCoefficients()

	assert.InDelta(t, 1.0, coeffs[4], 1e-12)
}

func TestHannApply(t *testing.T) {
	window := NewHann(4)

	signal := []float64{1, 1, 1, 1}
	windowed := window.Apply(signal)

	require.NotNil(t, windowed)
	assert.Equal(t, window.GetCoefficients(), windowed)

	// Original signal untouched.
	assert.Equal(t, []float64{1, 1, 1, 1}, signal)
}

func TestHannApplyInPlace(t *testing.T) {
	window := NewHann(4)

	signal := []float64{2, 2, 2, 2}
	require.NoError(t, window.ApplyInPlace(signal))

	coeffs := window.GetCoefficients()
	for i := range signal {
		assert.InDelta(t, 2*coeffs[i], signal[i], 1e-12)
	}
}

func TestHannSizeMismatch(t *testing.T) {
	window := NewHann(4)

	assert.Nil(t, window.Apply([]float64{1, 2, 3}))
	assert.Error(t, window.ApplyInPlace([]float64{1, 2, 3}))
}
