// Package prom implements the skirmish metrics interfaces with Prometheus
package prom

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/lixenwraith/skirmish/combat"
	"github.com/lixenwraith/skirmish/engine"
	"github.com/lixenwraith/skirmish/event"
	"github.com/lixenwraith/skirmish/metrics"
)

const namespace = "skirmish"

// Tick durations are in the millisecond range
var tickBuckets = []float64{
	.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1,
}

// timer wraps a Prometheus observer to implement metrics.Timer
type timer struct {
	o     prometheus.Observer
	start time.Time
}

func newTimer(o prometheus.Observer) metrics.Timer {
	return &timer{o: o, start: time.Now()}
}

func (t *timer) ObserveDuration() {
	t.o.Observe(time.Since(t.start).Seconds())
}

// busMetrics implements event.Metrics
type busMetrics struct {
	dispatched *prometheus.CounterVec
	unhandled  *prometheus.CounterVec
	allocated  *prometheus.CounterVec
	depth      prometheus.Gauge
}

// NewBusMetrics registers message bus instruments on reg
func NewBusMetrics(reg prometheus.Registerer) event.Metrics {
	m := &busMetrics{
		dispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bus_messages_dispatched_total",
			Help:      "Messages delivered to a handler",
		}, []string{"message"}),
		unhandled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bus_messages_unhandled_total",
			Help:      "Messages dropped because no handler was registered",
		}, []string{"message"}),
		allocated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bus_pool_allocations_total",
			Help:      "Message instances allocated after the pool was exhausted",
		}, []string{"message"}),
		depth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bus_queue_depth",
			Help:      "Pending messages",
		}),
	}
	reg.MustRegister(m.dispatched, m.unhandled, m.allocated, m.depth)
	return m
}

func (m *busMetrics) Dispatched(msg string) metrics.Counter {
	return m.dispatched.WithLabelValues(msg)
}

func (m *busMetrics) Unhandled(msg string) metrics.Counter {
	return m.unhandled.WithLabelValues(msg)
}

func (m *busMetrics) PoolAllocated(msg string) metrics.Counter {
	return m.allocated.WithLabelValues(msg)
}

func (m *busMetrics) QueueDepth() metrics.Gauge {
	return m.depth
}

// NewSlotMetrics registers combat slot instruments on reg
func NewSlotMetrics(reg prometheus.Registerer) *combat.AllocatorMetrics {
	reserved := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "slots_reserved_total",
		Help:      "Successful slot reservations",
	})
	exhausted := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "slots_exhausted_total",
		Help:      "Reservations that found no free traversable slot",
	})
	inUse := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "slots_in_use",
		Help:      "Currently reserved slots",
	})
	reg.MustRegister(reserved, exhausted, inUse)
	return &combat.AllocatorMetrics{Reserved: reserved, Exhausted: exhausted, InUse: inUse}
}

// engineMetrics implements engine.Metrics
type engineMetrics struct {
	tickDuration prometheus.Histogram
	ticks        prometheus.Counter
	faults       *prometheus.CounterVec
	actors       prometheus.Gauge
}

// NewEngineMetrics registers host loop instruments on reg
func NewEngineMetrics(reg prometheus.Registerer) engine.Metrics {
	m := &engineMetrics{
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Wall time spent in one tick",
			Buckets:   tickBuckets,
		}),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Completed ticks",
		}),
		faults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "task_faults_total",
			Help:      "Tasks that panicked and were unbound",
		}, []string{"owner"}),
		actors: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "actors",
			Help:      "Actors advanced in the last tick",
		}),
	}
	reg.MustRegister(m.tickDuration, m.ticks, m.faults, m.actors)
	return m
}

func (m *engineMetrics) TickDuration() metrics.Timer { return newTimer(m.tickDuration) }
func (m *engineMetrics) TickCompleted()              { m.ticks.Inc() }
func (m *engineMetrics) TaskFault(owner string)      { m.faults.WithLabelValues(owner).Inc() }
func (m *engineMetrics) Actors(n int)                { m.actors.Set(float64(n)) }

// NewMetricSet registers every subsystem's instruments on reg
func NewMetricSet(reg prometheus.Registerer) engine.MetricSet {
	return engine.MetricSet{
		Engine: NewEngineMetrics(reg),
		Bus:    NewBusMetrics(reg),
		Slots:  NewSlotMetrics(reg),
	}
}

var (
	_ event.Metrics  = (*busMetrics)(nil)
	_ engine.Metrics = (*engineMetrics)(nil)
)
