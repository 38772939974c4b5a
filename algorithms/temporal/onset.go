package temporal

// SpectralFlux computes the half-wave-rectified spectral flux of a magnitude
// spectrogram, used as an onset strength envelope for tempo analysis.
type SpectralFlux struct {
	// No state needed - the envelope is a pure function of the frame sequence
}

// NewSpectralFlux creates a new spectral flux calculator
func NewSpectralFlux() *SpectralFlux {
	return &SpectralFlux{}
}

// Compute calculates one onset strength value per frame: the sum of the
// positive per-bin magnitude increases against the previous frame.
//
// The first frame is compared against an implicit all-zero spectrum, so the
// first envelope value is characteristically larger than the rest. That is
// part of the envelope's contract; callers must not compensate for it.
func (sf *SpectralFlux) Compute(frames [][]float64) []float64 {
	if len(frames) == 0 {
		return []float64{}
	}

	envelope := make([]float64, len(frames))
	prev := make([]float64, len(frames[0]))

	for t, spectrum := range frames {
		flux := 0.0
		for i, magnitude := range spectrum {
			if diff := magnitude - prev[i]; diff > 0 {
				flux += diff
			}
		}
		envelope[t] = flux
		prev = spectrum
	}

	return envelope
}
