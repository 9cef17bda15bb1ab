// Package event provides the typed, pooled message bus that decouples game modules.
//
// Message Flow:
//  1. Producer acquires a pooled instance: msg := event.Acquire[RunTo](bus)
//  2. Producer fills the fields and pushes it: event.Push(bus, msg)
//  3. Host loop drains the queue once per tick: bus.Dispatch()
//  4. The single handler registered for the type runs, then the message is
//     zeroed and returned to its pool
//
// Handlers may push further messages while a drain is running; those are
// delivered before the same Dispatch call returns.
//
// The bus is single-threaded and not safe for concurrent use.
package event

import (
	"errors"
	"log/slog"
	"reflect"

	"github.com/lixenwraith/skirmish/metrics"
	"github.com/lixenwraith/skirmish/parameter"
)

var (
	// ErrDuplicateHandler is returned when a type already has a handler; the first one is kept
	ErrDuplicateHandler = errors.New("event: handler already registered")

	// ErrNoHandler is returned when removing a handler that was never registered
	ErrNoHandler = errors.New("event: no handler registered")
)

// Options configures a Bus
type Options struct {
	Logger    *slog.Logger
	Metrics   Metrics
	PoolPrime int // Instances allocated per type on registration; 0 uses parameter.MessagePoolPrime
}

// Bus is a FIFO message queue with one handler per message type
type Bus struct {
	log     *slog.Logger
	metrics Metrics
	depth   metrics.Gauge
	prime   int

	kinds  []*kind
	byType map[reflect.Type]*kind
	queue  messageQueue

	dispatching bool
}

// NewBus creates an empty bus
func NewBus(opts Options) *Bus {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = NopMetrics()
	}
	if opts.PoolPrime <= 0 {
		opts.PoolPrime = parameter.MessagePoolPrime
	}
	return &Bus{
		log:     opts.Logger.With("component", "bus"),
		metrics: opts.Metrics,
		depth:   opts.Metrics.QueueDepth(),
		prime:   opts.PoolPrime,
		byType:  make(map[reflect.Type]*kind),
		queue:   newMessageQueue(),
	}
}

// Dispatch drains the queue, delivering each message to its handler
// The queue length is re-checked after every delivery, so messages pushed by
// handlers are delivered within the same call. Returns the number of messages processed
func (b *Bus) Dispatch() int {
	b.dispatching = true
	defer func() { b.dispatching = false }()

	n := 0
	for b.queue.len() > 0 {
		e, _ := b.queue.pop()
		b.deliver(e)
		n++
	}
	b.depth.Set(0)
	return n
}

// Len returns the number of pending messages
func (b *Bus) Len() int {
	return b.queue.len()
}

// Name returns the registered name for id, or "" when unknown
func (b *Bus) Name(id ID) string {
	if id == 0 || int(id) > len(b.kinds) {
		return ""
	}
	return b.kinds[id-1].name
}

// Stats returns pool and dispatch counters for the type registered under id
func (b *Bus) Stats(id ID) (Stats, bool) {
	if id == 0 || int(id) > len(b.kinds) {
		return Stats{}, false
	}
	k := b.kinds[id-1]
	s := k.stats
	s.Free = k.pool.free()
	return s, true
}

// Names returns registered message names in ID order
func (b *Bus) Names() []string {
	names := make([]string, len(b.kinds))
	for i, k := range b.kinds {
		names[i] = k.name
	}
	return names
}

func (b *Bus) enqueue(k *kind, msg any) {
	b.queue.push(envelope{kind: k, msg: msg})
	b.depth.Set(float64(b.queue.len()))
}

// deliver runs the handler for one message and recycles it
func (b *Bus) deliver(e envelope) {
	k := e.kind
	if k.handler != nil {
		k.handler(e.msg)
		k.stats.Dispatched++
		k.metrics.dispatched.Inc()
	} else {
		k.stats.Unhandled++
		k.metrics.unhandled.Inc()
		b.log.Warn("no handler for message", "message", k.name, "id", k.id)
	}
	k.pool.recycle(e.msg)
}
