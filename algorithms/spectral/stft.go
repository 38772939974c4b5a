package spectral

import (
	"math/cmplx"

	"github.com/tonalab/tonalis/algorithms/windowing"
)

// Framer slices a mono buffer into overlapping Hann-windowed frames and
// produces one magnitude spectrum per frame.
//
// Frame f covers samples [f*hopSize, f*hopSize+fftSize). The frame count is
// floor((numSamples - fftSize) / hopSize); a buffer shorter than fftSize
// yields no frames at all, which downstream estimators treat as a defined
// low-data case rather than an error. Each spectrum holds fftSize/2
// non-negative magnitudes (positive frequencies below Nyquist).
type Framer struct {
	fftSize int
	hopSize int
	fft     *FFT
}

// NewFramer creates a framer for the given FFT size and hop stride.
func NewFramer(fftSize, hopSize int) *Framer {
	return &Framer{
		fftSize: fftSize,
		hopSize: hopSize,
		fft:     NewFFT(),
	}
}

// Frames computes the magnitude spectrum sequence for a mono buffer.
// Pure function of its input: no state is carried between calls, and the
// window coefficients are regenerated per call.
func (fr *Framer) Frames(samples []float64) [][]float64 {
	if len(samples) < fr.fftSize {
		return nil
	}

	numFrames := (len(samples) - fr.fftSize) / fr.hopSize
	if numFrames <= 0 {
		return nil
	}

	window := windowing.NewHann(fr.fftSize)
	numBins := fr.fftSize / 2

	frames := make([][]float64, 0, numFrames)
	buffer := make([]float64, fr.fftSize)

	for frame := 0; frame < numFrames; frame++ {
		start := frame * fr.hopSize
		copy(buffer, samples[start:start+fr.fftSize])

		if err := window.ApplyInPlace(buffer); err != nil {
			// Sizes are fixed at construction, so this cannot happen.
			continue
		}

		spectrum := fr.fft.Compute(buffer)

		magnitudes := make([]float64, numBins)
		for i := range numBins {
			magnitudes[i] = cmplx.Abs(spectrum[i])
		}

		frames = append(frames, magnitudes)
	}

	return frames
}

// FFTSize returns the frame length in samples.
func (fr *Framer) FFTSize() int {
	return fr.fftSize
}

// HopSize returns the stride between consecutive frames in samples.
func (fr *Framer) HopSize() int {
	return fr.hopSize
}

// NumBins returns the number of magnitude bins per frame.
func (fr *Framer) NumBins() int {
	return fr.fftSize / 2
}
