package qcircuit

import (
	"slices"
	"sync"
	"time"
)

// Metrics accumulates execution statistics for a simulator.
type Metrics struct {
	mu           sync.RWMutex
	Runs         int64
	Failures     int64
	ShotsSampled int64
	GatesApplied int64
	TotalRunTime time.Duration

	AverageRunLatency time.Duration
	P95RunLatency     time.Duration
	MaxQubitsSeen     int

	latencyWindow []time.Duration
	windowSize    int
}

func NewMetrics() *Metrics {
	return &Metrics{
		latencyWindow: make([]time.Duration, 0, 256),
		windowSize:    256,
	}
}

func (m *Metrics) recordRun(startTime time.Time, qubits, gates, shots int, err error) {
	duration := time.Since(startTime)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Runs++
	if err != nil {
		m.Failures++
		return
	}

	m.GatesApplied += int64(gates)
	m.ShotsSampled += int64(shots)
	m.TotalRunTime += duration
	m.MaxQubitsSeen = max(m.MaxQubitsSeen, qubits)
	m.updateLatency(duration)
}

func (m *Metrics) updateLatency(duration time.Duration) {
	m.latencyWindow = append(m.latencyWindow, duration)
	if len(m.latencyWindow) > m.windowSize {
		m.latencyWindow = m.latencyWindow[1:]
	}

	succeeded := m.Runs - m.Failures
	m.AverageRunLatency = m.TotalRunTime / time.Duration(succeeded)

	sorted := slices.Clone(m.latencyWindow)
	slices.Sort(sorted)

	p95Index := int(float64(len(sorted)) * 0.95)
	if p95Index >= len(sorted) {
		p95Index = len(sorted) - 1
	}
	m.P95RunLatency = sorted[p95Index]
}

// ExportMetrics returns a snapshot suitable for structured logging.
func (m *Metrics) ExportMetrics() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"runs":           m.Runs,
		"failures":       m.Failures,
		"shots":          m.ShotsSampled,
		"gates":          m.GatesApplied,
		"max_qubits":     m.MaxQubitsSeen,
		"avg_latency_ms": m.AverageRunLatency.Milliseconds(),
		"p95_latency_ms": m.P95RunLatency.Milliseconds(),
		"total_run_time": m.TotalRunTime.String(),
	}
}
