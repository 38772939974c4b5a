package analyzer

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// Persisted result layout: a flat little-endian record with no version tag
// and no compression. Field order and types are fixed for compatibility with
// previously saved state:
//
//	float32 bpm
//	key string (UTF-8 bytes, NUL terminated)
//	mode string (UTF-8 bytes, NUL terminated)
//	float32 bpmConfidence
//	float32 keyConfidence

const maxStateString = 64

// SaveResult writes a result record to w in the persisted layout.
func SaveResult(w io.Writer, result Result) error {
	if err := binary.Write(w, binary.LittleEndian, result.BPM); err != nil {
		return fmt.Errorf("write bpm: %w", err)
	}
	if err := writeString(w, result.Key); err != nil {
		return fmt.Errorf("write key: %w", err)
	}
	if err := writeString(w, result.Mode); err != nil {
		return fmt.Errorf("write mode: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, result.BPMConfidence); err != nil {
		return fmt.Errorf("write bpm confidence: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, result.KeyConfidence); err != nil {
		return fmt.Errorf("write key confidence: %w", err)
	}
	return nil
}

// LoadResult reads a result record from r in the persisted layout.
func LoadResult(r io.Reader) (Result, error) {
	var result Result

	br := bufio.NewReader(r)

	if err := binary.Read(br, binary.LittleEndian, &result.BPM); err != nil {
		return Result{}, fmt.Errorf("read bpm: %w", err)
	}

	key, err := readString(br)
	if err != nil {
		return Result{}, fmt.Errorf("read key: %w", err)
	}
	result.Key = key

	mode, err := readString(br)
	if err != nil {
		return Result{}, fmt.Errorf("read mode: %w", err)
	}
	result.Mode = mode

	if err := binary.Read(br, binary.LittleEndian, &result.BPMConfidence); err != nil {
		return Result{}, fmt.Errorf("read bpm confidence: %w", err)
	}
	if err := binary.Read(br, binary.LittleEndian, &result.KeyConfidence); err != nil {
		return Result{}, fmt.Errorf("read key confidence: %w", err)
	}

	return result, nil
}

func writeString(w io.Writer, s string) error {
	if _, err := w.Write([]byte(s)); err != nil {
		return err
	}
	_, err := w.Write([]byte{0})
	return err
}

func readString(r *bufio.Reader) (string, error) {
	raw, err := r.ReadBytes(0)
	if err != nil {
		return "", err
	}
	if len(raw) > maxStateString {
		return "", fmt.Errorf("string field exceeds %d bytes", maxStateString)
	}
	return string(raw[:len(raw)-1]), nil
}
