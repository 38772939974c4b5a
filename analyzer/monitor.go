package analyzer

import (
	"sync"
	"time"

	"github.com/tonalab/tonalis/capture"
	"github.com/tonalab/tonalis/logging"
)

// DefaultMonitorInterval is the cadence between analysis passes.
const DefaultMonitorInterval = 2 * time.Second

// Monitor periodically snapshots a capture ring, analyzes the snapshot, and
// publishes the result. It owns the only coupling between the live capture
// side and the analysis engine: the ring hands it an immutable copy, so the
// engine never reads memory a producer is writing.
type Monitor struct {
	analyzer *Analyzer
	ring     *capture.Ring
	interval time.Duration
	logger   logging.Logger

	results chan Result
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewMonitor creates a monitor over the given analyzer and ring. A
// non-positive interval falls back to DefaultMonitorInterval.
func NewMonitor(a *Analyzer, ring *capture.Ring, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultMonitorInterval
	}
	return &Monitor{
		analyzer: a,
		ring:     ring,
		interval: interval,
		logger:   logging.WithFields(logging.Fields{"component": "monitor"}),
		results:  make(chan Result, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Results returns the channel on which analysis results are published. A
// result that is not consumed before the next pass completes is dropped in
// favor of the newer one.
func (m *Monitor) Results() <-chan Result {
	return m.results
}

// Start launches the periodic analysis loop.
func (m *Monitor) Start() {
	go m.run()
}

// Stop halts the loop and waits for it to finish. Safe to call more than
// once.
func (m *Monitor) Stop() {
	m.once.Do(func() { close(m.stop) })
	<-m.done
}

func (m *Monitor) run() {
	defer close(m.done)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.publish(m.analyzer.Analyze(m.ring.Snapshot()))
		}
	}
}

// publish replaces any unconsumed result with the latest one.
func (m *Monitor) publish(result Result) {
	for {
		select {
		case m.results <- result:
			return
		default:
			select {
			case <-m.results:
			default:
			}
		}
	}
}
