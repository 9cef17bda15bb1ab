package engine

import (
	"github.com/lixenwraith/skirmish/combat"
	"github.com/lixenwraith/skirmish/event"
	"github.com/lixenwraith/skirmish/metrics"
)

// Metrics instruments the host loop
type Metrics interface {
	TickDuration() metrics.Timer
	TickCompleted()
	TaskFault(owner string)
	Actors(n int)
}

type nopMetrics struct{}

func (nopMetrics) TickDuration() metrics.Timer { return metrics.NopTimer() }
func (nopMetrics) TickCompleted()              {}
func (nopMetrics) TaskFault(string)            {}
func (nopMetrics) Actors(int)                  {}

// NopMetrics returns Metrics that record nothing
func NopMetrics() Metrics { return nopMetrics{} }

// MetricSet groups the instruments of every subsystem a GameContext builds
// Nil members fall back to no-op implementations
type MetricSet struct {
	Engine Metrics
	Bus    event.Metrics
	Slots  *combat.AllocatorMetrics
}
