package event

import "github.com/lixenwraith/skirmish/metrics"

// Metrics supplies per-message instruments
// Called once per message type at registration, not per message
type Metrics interface {
	Dispatched(message string) metrics.Counter
	Unhandled(message string) metrics.Counter
	PoolAllocated(message string) metrics.Counter
	QueueDepth() metrics.Gauge
}

type nopMetrics struct{}

func (nopMetrics) Dispatched(string) metrics.Counter    { return metrics.NopCounter() }
func (nopMetrics) Unhandled(string) metrics.Counter     { return metrics.NopCounter() }
func (nopMetrics) PoolAllocated(string) metrics.Counter { return metrics.NopCounter() }
func (nopMetrics) QueueDepth() metrics.Gauge            { return metrics.NopGauge() }

// NopMetrics returns a Metrics that records nothing
func NopMetrics() Metrics { return nopMetrics{} }
