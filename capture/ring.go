package capture

import (
	"sync"
)

// Ring is a fixed-capacity mono capture buffer. A producer appends samples as
// they arrive; consumers call Snapshot to receive an immutable, oldest-first
// copy of the captured audio. The analysis engine only ever sees snapshots,
// never the live buffer, so a running producer cannot race an analysis pass.
//
// Ring makes no real-time guarantees: Write takes a mutex and Snapshot
// allocates. It belongs on the capture side of the system, not inside a
// latency-sensitive audio callback.
type Ring struct {
	mu       sync.Mutex
	buffer   []float64
	writePos int
	written  int
}

// NewRing creates a ring holding at most capacity samples.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = 1
	}
	return &Ring{
		buffer: make([]float64, capacity),
	}
}

// Write appends samples, overwriting the oldest audio once the ring is full.
func (r *Ring) Write(samples []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, sample := range samples {
		r.buffer[r.writePos] = sample
		r.writePos = (r.writePos + 1) % len(r.buffer)
	}

	r.written += len(samples)
	if r.written > len(r.buffer) {
		r.written = len(r.buffer)
	}
}

// Snapshot returns a copy of the captured audio ordered oldest-first. The
// returned slice is owned by the caller and never aliased by the ring.
func (r *Ring) Snapshot() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := make([]float64, r.written)

	if r.written < len(r.buffer) {
		copy(snapshot, r.buffer[:r.written])
		return snapshot
	}

	n := copy(snapshot, r.buffer[r.writePos:])
	copy(snapshot[n:], r.buffer[:r.writePos])
	return snapshot
}

// Len returns the number of valid samples currently captured.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.written
}

// Cap returns the ring capacity in samples.
func (r *Ring) Cap() int {
	return len(r.buffer)
}

// Reset discards all captured audio.
func (r *Ring) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writePos = 0
	r.written = 0
}
