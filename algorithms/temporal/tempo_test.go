package temporal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clickTrain builds a mono buffer with single-sample impulses at a fixed
// spacing.
func clickTrain(numSamples, spacing int) []float64 {
	samples := make([]float64, numSamples)
	for i := 0; i < numSamples; i += spacing {
		samples[i] = 1.0
	}
	return samples
}

func TestDetectShortBufferSentinel(t *testing.T) {
	estimator := NewTempoEstimator(44100)

	result := estimator.Detect(make([]float64, TempoFFTSize-1))

	assert.Equal(t, 0.0, result.BPM)
	assert.Equal(t, DefaultTempoConfidence, result.Confidence)
}

func TestDetectSilenceReturnsZero(t *testing.T) {
	estimator := NewTempoEstimator(44100)

	result := estimator.Detect(make([]float64, 44100*5))

	assert.Equal(t, 0.0, result.BPM)
	assert.Equal(t, DefaultTempoConfidence, result.Confidence)
}

func TestDetectClickTrain120BPM(t *testing.T) {
	const sampleRate = 44100

	estimator := NewTempoEstimator(sampleRate)

	// Clicks every 0.5 s: 120 BPM over a ten second snapshot.
	result := estimator.Detect(clickTrain(sampleRate*10, sampleRate/2))

	assert.GreaterOrEqual(t, result.BPM, 118.0)
	assert.LessOrEqual(t, result.BPM, 122.0)
	assert.GreaterOrEqual(t, result.Confidence, 0.0)
	assert.LessOrEqual(t, result.Confidence, 1.0)
}

func TestDetectConfidenceWithinBounds(t *testing.T) {
	estimator := NewTempoEstimator(44100)

	inputs := [][]float64{
		clickTrain(44100*6, 44100/2),
		clickTrain(44100*6, 44100/3),
		make([]float64, 44100*6),
	}

	for _, samples := range inputs {
		result := estimator.Detect(samples)
		assert.GreaterOrEqual(t, result.Confidence, 0.0)
		assert.LessOrEqual(t, result.Confidence, 1.0)
	}
}

func TestDetectDeterministic(t *testing.T) {
	estimator := NewTempoEstimator(44100)

	samples := clickTrain(44100*6, 44100/2)

	first := estimator.Detect(samples)
	second := estimator.Detect(samples)

	assert.Equal(t, first, second)
}

func TestEstimateFromEnvelopePulseTrain(t *testing.T) {
	const framesPerSecond = 44100.0 / 512.0

	// Pulse train with a 43-frame period over exactly twenty periods. The
	// subharmonic lags (86, 129) tie the fundamental exactly, and the
	// strict-greater update keeps the first (smallest) lag.
	const period = 43
	envelope := make([]float64, period*20)
	for i := 0; i < len(envelope); i += period {
		envelope[i] = 1.0
	}

	bpm := estimateFromEnvelope(envelope, framesPerSecond)

	expected := 60.0 * framesPerSecond / float64(period)
	require.InDelta(t, expected, bpm, 1.0)
}

func TestEstimateFromEnvelopeFlat(t *testing.T) {
	const framesPerSecond = 44100.0 / 512.0

	envelope := make([]float64, 400)

	assert.Equal(t, 0.0, estimateFromEnvelope(envelope, framesPerSecond))
}

func TestAutocorrelate(t *testing.T) {
	signal := []float64{1, 0, 1, 0, 1, 0}

	// lag 2: pairs (1,1),(0,0),(1,1),(0,0) -> sum 2 over 4 terms.
	assert.InDelta(t, 0.5, autocorrelate(signal, 2), 1e-12)

	// lag 1: alternating, no overlap.
	assert.InDelta(t, 0.0, autocorrelate(signal, 1), 1e-12)

	// lag beyond the signal has no valid terms.
	assert.Equal(t, 0.0, autocorrelate(signal, 6))
}
