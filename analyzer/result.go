package analyzer

import (
	"github.com/tonalab/tonalis/algorithms/temporal"
	"github.com/tonalab/tonalis/algorithms/tonal"
)

// Result is the flat analysis record embedding systems persist and poll:
// tempo and key with their confidences, carried together so no post-call
// state is needed. Numeric fields are float32 to match the persisted layout.
type Result struct {
	BPM           float32 `json:"bpm"`
	Key           string  `json:"key"`
	Mode          string  `json:"mode"`
	BPMConfidence float32 `json:"bpm_confidence"`
	KeyConfidence float32 `json:"key_confidence"`
}

func combineResults(tempo temporal.TempoResult, key tonal.KeyResult) Result {
	return Result{
		BPM:           float32(tempo.BPM),
		Key:           key.Key,
		Mode:          key.Mode,
		BPMConfidence: float32(tempo.Confidence),
		KeyConfidence: float32(key.Confidence),
	}
}
