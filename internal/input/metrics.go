package input

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/evmatch/internal/input/event"
)

// Metrics tracks input processing counts and latency.
type Metrics struct {
	// Event counters
	keyEventsTotal      atomic.Uint64
	mouseEventsTotal    atomic.Uint64
	terminalEventsTotal atomic.Uint64
	pasteEventsTotal    atomic.Uint64
	unmatchedTotal      atomic.Uint64
	actionsTotal        atomic.Uint64
	droppedActions      atomic.Uint64
	hookConsumptions    atomic.Uint64

	// Latency tracking
	mu                sync.Mutex
	actionLatencies   []time.Duration
	maxLatencySamples int
	latencyIdx        int

	peakActionLatency atomic.Int64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{
		actionLatencies:   make([]time.Duration, 1000),
		maxLatencySamples: 1000,
		startTime:         time.Now(),
	}
}

// RecordEvent counts one input event by class.
func (m *Metrics) RecordEvent(ev event.Event) {
	switch ev.(type) {
	case event.Key:
		m.keyEventsTotal.Add(1)
	case event.Mouse:
		m.mouseEventsTotal.Add(1)
	case event.Paste:
		m.pasteEventsTotal.Add(1)
	default:
		m.terminalEventsTotal.Add(1)
	}
}

// RecordUnmatched records an event no binding matched.
func (m *Metrics) RecordUnmatched() {
	m.unmatchedTotal.Add(1)
}

// RecordAction records an action dispatch with its processing time.
func (m *Metrics) RecordAction(latency time.Duration) {
	m.actionsTotal.Add(1)

	latencyNs := latency.Nanoseconds()
	for {
		current := m.peakActionLatency.Load()
		if latencyNs <= current {
			break
		}
		if m.peakActionLatency.CompareAndSwap(current, latencyNs) {
			break
		}
	}

	// Store in circular buffer
	m.mu.Lock()
	m.actionLatencies[m.latencyIdx] = latency
	m.latencyIdx = (m.latencyIdx + 1) % m.maxLatencySamples
	m.mu.Unlock()
}

// RecordDroppedAction records an action dropped because the channel was full.
func (m *Metrics) RecordDroppedAction() {
	m.droppedActions.Add(1)
}

// RecordHookConsumption records when a hook consumes an event or action.
func (m *Metrics) RecordHookConsumption() {
	m.hookConsumptions.Add(1)
}

// MetricsSnapshot holds a point-in-time view of metrics.
type MetricsSnapshot struct {
	KeyEvents        uint64
	MouseEvents      uint64
	TerminalEvents   uint64
	PasteEvents      uint64
	Unmatched        uint64
	Actions          uint64
	DroppedActions   uint64
	HookConsumptions uint64

	AvgActionLatency  time.Duration
	P99ActionLatency  time.Duration
	PeakActionLatency time.Duration

	Uptime time.Duration
}

// Snapshot returns a point-in-time view of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	latencies := make([]time.Duration, len(m.actionLatencies))
	copy(latencies, m.actionLatencies)
	start := m.startTime
	m.mu.Unlock()

	snap := MetricsSnapshot{
		KeyEvents:         m.keyEventsTotal.Load(),
		MouseEvents:       m.mouseEventsTotal.Load(),
		TerminalEvents:    m.terminalEventsTotal.Load(),
		PasteEvents:       m.pasteEventsTotal.Load(),
		Unmatched:         m.unmatchedTotal.Load(),
		Actions:           m.actionsTotal.Load(),
		DroppedActions:    m.droppedActions.Load(),
		HookConsumptions:  m.hookConsumptions.Load(),
		PeakActionLatency: time.Duration(m.peakActionLatency.Load()),
		Uptime:            time.Since(start),
	}
	snap.AvgActionLatency, snap.P99ActionLatency = latencyStats(latencies)
	return snap
}

// latencyStats computes average and p99 over the non-zero samples.
func latencyStats(latencies []time.Duration) (avg, p99 time.Duration) {
	valid := make([]time.Duration, 0, len(latencies))
	var sum time.Duration
	for _, l := range latencies {
		if l > 0 {
			valid = append(valid, l)
			sum += l
		}
	}
	if len(valid) == 0 {
		return 0, 0
	}

	sort.Slice(valid, func(i, j int) bool { return valid[i] < valid[j] })
	idx := int(float64(len(valid)) * 0.99)
	if idx >= len(valid) {
		idx = len(valid) - 1
	}
	return sum / time.Duration(len(valid)), valid[idx]
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.keyEventsTotal.Store(0)
	m.mouseEventsTotal.Store(0)
	m.terminalEventsTotal.Store(0)
	m.pasteEventsTotal.Store(0)
	m.unmatchedTotal.Store(0)
	m.actionsTotal.Store(0)
	m.droppedActions.Store(0)
	m.hookConsumptions.Store(0)
	m.peakActionLatency.Store(0)

	m.mu.Lock()
	m.actionLatencies = make([]time.Duration, m.maxLatencySamples)
	m.latencyIdx = 0
	m.startTime = time.Now()
	m.mu.Unlock()
}
