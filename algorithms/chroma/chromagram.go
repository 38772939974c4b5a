package chroma

import (
	"math"
)

// NumPitchClasses is the number of chroma bins (C through B).
const NumPitchClasses = 12

// Frequencies outside this range carry little tonal information for key
// finding: roughly A0 through C8.
const (
	MinFrequency = 27.5
	MaxFrequency = 4186.0

	tuningFrequency = 440.0 // A4
)

// PitchClassNames maps chroma bin indices to note names (0=C ... 11=B).
var PitchClassNames = [NumPitchClasses]string{
	"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B",
}

// Chromagram accumulates magnitude-spectrum energy into 12 pitch-class bins,
// octave-folded. Fractional pitch positions are truncated toward the lower
// neighboring pitch class, not rounded; that quantization is part of the
// contract and downstream profile matching depends on it.
type Chromagram struct {
	sampleRate float64
	fftSize    int
}

// NewChromagram creates a chromagram builder for spectra produced with the
// given sampling rate and FFT size.
func NewChromagram(sampleRate float64, fftSize int) *Chromagram {
	return &Chromagram{
		sampleRate: sampleRate,
		fftSize:    fftSize,
	}
}

// Compute accumulates every frame's magnitudes into the 12 pitch-class bins
// and normalizes the result to unit sum. If the frames carry no energy in the
// admissible frequency range, the all-zero vector is returned as is.
func (cg *Chromagram) Compute(frames [][]float64) []float64 {
	bins := make([]float64, NumPitchClasses)

	for _, spectrum := range frames {
		for bin, magnitude := range spectrum {
			frequency := float64(bin) * cg.sampleRate / float64(cg.fftSize)
			if frequency < MinFrequency || frequency > MaxFrequency {
				continue
			}

			bins[cg.pitchClassIndex(frequency)] += magnitude
		}
	}

	normalizeUnitSum(bins)

	return bins
}

// pitchClassIndex maps a frequency to its truncated pitch-class bin.
// A4 (440 Hz) is MIDI note 69, pitch class 9.
func (cg *Chromagram) pitchClassIndex(frequency float64) int {
	midiNote := 69.0 + 12.0*math.Log2(frequency/tuningFrequency)
	return int(math.Mod(midiNote, 12.0)) % NumPitchClasses
}

func normalizeUnitSum(bins []float64) {
	total := 0.0
	for _, val := range bins {
		total += val
	}

	if total > 0 {
		for i := range bins {
			bins[i] /= total
		}
	}
}
