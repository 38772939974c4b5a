package transcode

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytesToPCM(t *testing.T) {
	// float32 1.0, -0.5, 0.0 in little-endian.
	raw := []byte{
		0x00, 0x00, 0x80, 0x3F,
		0x00, 0x00, 0x00, 0xBF,
		0x00, 0x00, 0x00, 0x00,
	}

	pcm := bytesToPCM(raw)

	require.Len(t, pcm, 3)
	assert.Equal(t, 1.0, pcm[0])
	assert.Equal(t, -0.5, pcm[1])
	assert.Equal(t, 0.0, pcm[2])
}

func TestBytesToPCMDropsPartialFrame(t *testing.T) {
	raw := []byte{0x00, 0x00, 0x80, 0x3F, 0xAA, 0xBB}

	pcm := bytesToPCM(raw)

	require.Len(t, pcm, 1)
	assert.Equal(t, 1.0, pcm[0])
}

func TestBytesToPCMEmpty(t *testing.T) {
	assert.Empty(t, bytesToPCM(nil))
}

func TestBuildArgs(t *testing.T) {
	decoder := NewDecoder(&DecoderConfig{
		TargetSampleRate: 22050,
		FFmpegPath:       "ffmpeg",
		Timeout:          DefaultDecoderConfig().Timeout,
	})

	args := decoder.buildArgs("/music/track.flac")

	assert.Equal(t, []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", "/music/track.flac",
		"-vn",
		"-ac", "1",
		"-ar", "22050",
		"-f", "f32le",
		"-acodec", "pcm_f32le",
		"-",
	}, args)
}

func TestNewDecoderDefaults(t *testing.T) {
	decoder := NewDecoder(nil)

	assert.Equal(t, 22050, decoder.config.TargetSampleRate)
	assert.Equal(t, "ffmpeg", decoder.config.FFmpegPath)
}

func TestDecodeFileMissingFile(t *testing.T) {
	decoder := NewDecoder(nil)

	_, err := decoder.DecodeFile(context.Background(), "/does/not/exist.mp3")

	assert.ErrorContains(t, err, "not accessible")
}
