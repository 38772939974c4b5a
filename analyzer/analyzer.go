package analyzer

import (
	"sync"

	"github.com/tonalab/tonalis/algorithms/temporal"
	"github.com/tonalab/tonalis/algorithms/tonal"
	"github.com/tonalab/tonalis/logging"
)

// DefaultSampleRate is assumed until Prepare is called.
const DefaultSampleRate = 44100.0

// Analyzer bundles the tempo and key estimators behind a single
// sampling-rate context.
//
// Prepare must be called once, before any analysis, and must not overlap an
// analysis call; after that the context is read-only and Detect calls over
// independent snapshots are safe to run concurrently. The estimators hold no
// other state: every result is a pure function of the snapshot argument.
type Analyzer struct {
	sampleRate float64
	tempo      *temporal.TempoEstimator
	key        *tonal.KeyEstimator
	logger     logging.Logger
}

// New creates an analyzer prepared for DefaultSampleRate.
func New() *Analyzer {
	a := &Analyzer{
		logger: logging.WithFields(logging.Fields{"component": "analyzer"}),
	}
	a.Prepare(DefaultSampleRate)
	return a
}

// Prepare sets the sampling-rate context for subsequent analysis calls.
func (a *Analyzer) Prepare(sampleRate float64) {
	a.sampleRate = sampleRate
	a.tempo = temporal.NewTempoEstimator(sampleRate)
	a.key = tonal.NewKeyEstimator(sampleRate)

	a.logger.Debug("analyzer prepared", logging.Fields{"sample_rate": sampleRate})
}

// SampleRate returns the prepared sampling rate.
func (a *Analyzer) SampleRate() float64 {
	return a.sampleRate
}

// DetectTempo estimates the tempo of a mono snapshot.
func (a *Analyzer) DetectTempo(samples []float64) temporal.TempoResult {
	return a.tempo.Detect(samples)
}

// DetectKey estimates the musical key of a mono snapshot.
func (a *Analyzer) DetectKey(samples []float64) tonal.KeyResult {
	return a.key.Detect(samples)
}

// Analyze runs both estimators over the same snapshot and combines their
// results. The two paths consume disjoint derived spectra, so they run in
// parallel; both read only the snapshot and the immutable rate context.
func (a *Analyzer) Analyze(samples []float64) Result {
	var (
		tempoResult temporal.TempoResult
		keyResult   tonal.KeyResult
		wg          sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		tempoResult = a.tempo.Detect(samples)
	}()
	go func() {
		defer wg.Done()
		keyResult = a.key.Detect(samples)
	}()
	wg.Wait()

	a.logger.Debug("analysis complete", logging.Fields{
		"samples": len(samples),
		"bpm":     tempoResult.BPM,
		"key":     keyResult.Key,
		"mode":    keyResult.Mode,
	})

	return combineResults(tempoResult, keyResult)
}
