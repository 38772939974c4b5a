package transcode

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/tonalab/tonalis/logging"
)

// AudioData represents decoded mono audio ready for analysis.
type AudioData struct {
	PCM        []float64     `json:"-"`
	SampleRate int           `json:"sample_rate"`
	Duration   time.Duration `json:"duration"`
	Path       string        `json:"path"`
}

// DecoderConfig holds decoder configuration
type DecoderConfig struct {
	TargetSampleRate int           `json:"target_sample_rate"`
	FFmpegPath       string        `json:"ffmpeg_path"`
	Timeout          time.Duration `json:"timeout"`
}

// DefaultDecoderConfig returns a sensible decoder configuration.
func DefaultDecoderConfig() *DecoderConfig {
	return &DecoderConfig{
		TargetSampleRate: 22050,
		FFmpegPath:       "ffmpeg",
		Timeout:          60 * time.Second,
	}
}

// Decoder decodes audio files to mono float64 PCM by shelling out to ffmpeg,
// downmixing and resampling to the configured target rate.
type Decoder struct {
	config *DecoderConfig
	logger logging.Logger
}

// NewDecoder creates a decoder with the given config, or defaults if nil.
func NewDecoder(config *DecoderConfig) *Decoder {
	if config == nil {
		config = DefaultDecoderConfig()
	}
	return &Decoder{
		config: config,
		logger: logging.WithFields(logging.Fields{"component": "transcode"}),
	}
}

// DecodeFile decodes an audio file to mono PCM at the target sample rate.
// Unlike the analysis engine, decoding has real failure modes (missing file,
// missing ffmpeg, corrupt input) and reports them as errors.
func (d *Decoder) DecodeFile(ctx context.Context, path string) (*AudioData, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("audio file not accessible: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, d.config.Timeout)
	defer cancel()

	args := d.buildArgs(path)
	cmd := exec.CommandContext(ctx, d.config.FFmpegPath, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	d.logger.Debug("decoding file", logging.Fields{
		"path":        path,
		"sample_rate": d.config.TargetSampleRate,
	})

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg failed: %w: %s", err, stderr.String())
	}

	pcm := bytesToPCM(stdout.Bytes())
	if len(pcm) == 0 {
		return nil, fmt.Errorf("ffmpeg produced no audio for %s", path)
	}

	duration := time.Duration(float64(len(pcm)) / float64(d.config.TargetSampleRate) * float64(time.Second))

	return &AudioData{
		PCM:        pcm,
		SampleRate: d.config.TargetSampleRate,
		Duration:   duration,
		Path:       path,
	}, nil
}

// buildArgs assembles the ffmpeg invocation: decode anything, downmix to
// mono, resample, and stream raw 32-bit float samples to stdout.
func (d *Decoder) buildArgs(path string) []string {
	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", path,
		"-vn",
		"-ac", "1",
		"-ar", strconv.Itoa(d.config.TargetSampleRate),
		"-f", "f32le",
		"-acodec", "pcm_f32le",
		"-",
	}
}

// bytesToPCM converts little-endian float32 frames to float64 samples.
// Trailing partial frames are dropped.
func bytesToPCM(raw []byte) []float64 {
	numSamples := len(raw) / 4
	pcm := make([]float64, numSamples)

	for i := 0; i < numSamples; i++ {
		bits := binary.LittleEndian.Uint32(raw[i*4 : i*4+4])
		pcm[i] = float64(math.Float32frombits(bits))
	}

	return pcm
}
