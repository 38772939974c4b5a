package tonal

import (
	"math"

	"github.com/tonalab/tonalis/algorithms/chroma"
	"github.com/tonalab/tonalis/algorithms/common"
	"github.com/tonalab/tonalis/algorithms/spectral"
)

// Key analysis parameters. The larger FFT gives the frequency resolution
// needed to separate neighboring semitones in the bass range.
const (
	KeyFFTSize = 4096
	KeyHopSize = 512
)

// Modes reported by the key estimator.
const (
	ModeMajor = "major"
	ModeMinor = "minor"
)

// KeyResult holds an estimated key together with its confidence.
// The low-data sentinel is {"C", "major", 0}.
type KeyResult struct {
	Key        string  `json:"key"`
	Mode       string  `json:"mode"`
	Confidence float64 `json:"confidence"`
}

// KeyEstimator implements Krumhansl-Schmuckler key finding: it correlates the
// normalized chromagram of a snapshot against all 24 rotated reference
// profiles and reports the best match. The sampling rate is fixed at
// construction; each Detect call is a pure function of its buffer argument.
type KeyEstimator struct {
	sampleRate float64
	framer     *spectral.Framer
	chromagram *chroma.Chromagram
}

// NewKeyEstimator creates a key estimator for the given sampling rate.
func NewKeyEstimator(sampleRate float64) *KeyEstimator {
	return &KeyEstimator{
		sampleRate: sampleRate,
		framer:     spectral.NewFramer(KeyFFTSize, KeyHopSize),
		chromagram: chroma.NewChromagram(sampleRate, KeyFFTSize),
	}
}

// SampleRate returns the sampling rate the estimator was prepared with.
func (ke *KeyEstimator) SampleRate() float64 {
	return ke.sampleRate
}

// Detect estimates the musical key of a mono snapshot. Buffers shorter than
// the analysis window return the sentinel immediately.
func (ke *KeyEstimator) Detect(samples []float64) KeyResult {
	if len(samples) < KeyFFTSize {
		return KeyResult{Key: "C", Mode: ModeMajor, Confidence: 0}
	}

	chromagram := ke.chromagram.Compute(ke.framer.Frames(samples))

	return findBestKey(chromagram)
}

// findBestKey scans all 24 (root, mode) candidates in root-ascending,
// major-before-minor order. Only a strictly greater correlation updates the
// running best, so an exact tie keeps the earlier candidate; with every
// correlation degenerate (all zero) the scan resolves to C major at
// confidence 0.5. Confidence maps the best Pearson coefficient from [-1, 1]
// onto [0, 1].
func findBestKey(chromagram []float64) KeyResult {
	bestCorrelation := -1.0
	bestKey := "C"
	bestMode := ModeMajor

	for root := 0; root < chroma.NumPitchClasses; root++ {
		rotatedMajor := rotateProfile(majorProfile, root)
		rotatedMinor := rotateProfile(minorProfile, root)

		if corr := correlate(chromagram, rotatedMajor[:]); corr > bestCorrelation {
			bestCorrelation = corr
			bestKey = chroma.PitchClassNames[root]
			bestMode = ModeMajor
		}

		if corr := correlate(chromagram, rotatedMinor[:]); corr > bestCorrelation {
			bestCorrelation = corr
			bestKey = chroma.PitchClassNames[root]
			bestMode = ModeMinor
		}
	}

	confidence := common.Clamp((bestCorrelation+1.0)/2.0, 0.0, 1.0)

	return KeyResult{Key: bestKey, Mode: bestMode, Confidence: confidence}
}

// rotateProfile shifts a C-rooted profile so its tonic weight lands on the
// given root: rotated[(i+root) mod 12] = profile[i].
func rotateProfile(profile [12]float64, root int) [12]float64 {
	var rotated [12]float64
	for i := range profile {
		rotated[(i+root)%len(profile)] = profile[i]
	}
	return rotated
}

// correlate computes the Pearson correlation coefficient between two
// 12-element vectors. If either side is degenerate (root of the squared
// deviation sum below 1e-10) the correlation is defined as zero rather than
// raised as an error.
func correlate(x, y []float64) float64 {
	if len(x) != len(y) || len(x) == 0 {
		return 0.0
	}

	meanX := common.Mean(x)
	meanY := common.Mean(y)

	stdX, stdY, covariance := 0.0, 0.0, 0.0
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY

		stdX += dx * dx
		stdY += dy * dy
		covariance += dx * dy
	}

	stdX = math.Sqrt(stdX)
	stdY = math.Sqrt(stdY)

	if stdX < 1e-10 || stdY < 1e-10 {
		return 0.0
	}

	return covariance / (stdX * stdY)
}
