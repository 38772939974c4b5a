package temporal

import (
	"github.com/tonalab/tonalis/algorithms/common"
	"github.com/tonalab/tonalis/algorithms/spectral"
)

// Tempo analysis parameters. The admissible musical range is 40-240 BPM;
// anything the lag search produces outside it is overridden by the fixed
// fallback rather than reported or raised.
const (
	TempoFFTSize = 2048
	TempoHopSize = 512

	MinBPM = 40.0
	MaxBPM = 240.0

	FallbackBPM        = 120.0
	FallbackConfidence = 0.3

	// DefaultTempoConfidence is carried on low-data sentinel results.
	DefaultTempoConfidence = 0.5

	minEnvelopeLength = 10
)

// TempoResult holds a tempo estimate together with its confidence.
// A BPM of zero marks the low-data sentinel.
type TempoResult struct {
	BPM        float64 `json:"bpm"`
	Confidence float64 `json:"confidence"`
}

// TempoEstimator estimates tempo from the autocorrelation of an onset
// strength envelope. The sampling rate is fixed at construction; each Detect
// call is a pure function of its buffer argument and that fixed context.
type TempoEstimator struct {
	sampleRate float64
	framer     *spectral.Framer
	flux       *SpectralFlux
}

// NewTempoEstimator creates a tempo estimator for the given sampling rate.
func NewTempoEstimator(sampleRate float64) *TempoEstimator {
	return &TempoEstimator{
		sampleRate: sampleRate,
		framer:     spectral.NewFramer(TempoFFTSize, TempoHopSize),
		flux:       NewSpectralFlux(),
	}
}

// SampleRate returns the sampling rate the estimator was prepared with.
func (te *TempoEstimator) SampleRate() float64 {
	return te.sampleRate
}

// Detect estimates the tempo of a mono snapshot.
//
// Buffers shorter than the analysis window, or too short to produce ten
// envelope values, return the sentinel {0, DefaultTempoConfidence}. A winning
// estimate outside [MinBPM, MaxBPM] returns the fixed fallback
// {FallbackBPM, FallbackConfidence}. Otherwise confidence is the clamped
// envelope variance scaled by ten: higher rhythmic contrast reads as higher
// confidence. The scale is a heuristic proxy, not a calibrated probability.
func (te *TempoEstimator) Detect(samples []float64) TempoResult {
	if len(samples) < TempoFFTSize {
		return TempoResult{BPM: 0, Confidence: DefaultTempoConfidence}
	}

	envelope := te.flux.Compute(te.framer.Frames(samples))
	if len(envelope) < minEnvelopeLength {
		return TempoResult{BPM: 0, Confidence: DefaultTempoConfidence}
	}

	framesPerSecond := te.sampleRate / float64(TempoHopSize)

	bpm := estimateFromEnvelope(envelope, framesPerSecond)
	if bpm == 0 {
		return TempoResult{BPM: 0, Confidence: DefaultTempoConfidence}
	}

	if bpm < MinBPM || bpm > MaxBPM {
		return TempoResult{BPM: FallbackBPM, Confidence: FallbackConfidence}
	}

	confidence := common.Clamp(common.PopVariance(envelope)*10.0, 0.0, 1.0)

	return TempoResult{BPM: bpm, Confidence: confidence}
}

// estimateFromEnvelope searches the lag range corresponding to 240 BPM down
// to 40 BPM (capped at half the envelope length) for the strongest
// mean-normalized autocorrelation. Only a strictly greater value updates the
// running maximum, so ties keep the first (smallest) lag found. Returns zero
// when no lag wins.
func estimateFromEnvelope(envelope []float64, framesPerSecond float64) float64 {
	minLag := int(framesPerSecond * 60.0 / MaxBPM)
	maxLagRange := int(framesPerSecond * 60.0 / MinBPM)
	if half := len(envelope) / 2; maxLagRange > half {
		maxLagRange = half
	}

	maxCorr := 0.0
	bestLag := 0

	for lag := minLag; lag < maxLagRange; lag++ {
		corr := autocorrelate(envelope, lag)
		if corr > maxCorr {
			maxCorr = corr
			bestLag = lag
		}
	}

	if bestLag == 0 {
		return 0.0
	}

	return 60.0 * framesPerSecond / float64(bestLag)
}

// autocorrelate computes the mean-normalized autocorrelation of the signal at
// a single lag over the valid overlapping indices.
func autocorrelate(signal []float64, lag int) float64 {
	sum := 0.0
	count := 0

	for i := 0; i+lag < len(signal); i++ {
		sum += signal[i] * signal[i+lag]
		count++
	}

	if count == 0 {
		return 0.0
	}

	return sum / float64(count)
}
