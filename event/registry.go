package event

import (
	"reflect"

	"github.com/lixenwraith/skirmish/metrics"
)

// ID is the small integer identity of a message type on one bus
// IDs start at 1 and follow registration order
type ID uint16

// Stats reports per-type pool and dispatch counters
type Stats struct {
	Primed     int    // Instances allocated at registration
	Allocated  int    // Instances allocated after priming because the pool was empty
	Free       int    // Instances currently in the pool
	Dispatched uint64 // Messages delivered to a handler
	Unhandled  uint64 // Messages dropped because no handler was registered
}

type kindMetrics struct {
	dispatched metrics.Counter
	unhandled  metrics.Counter
	allocated  metrics.Counter
}

// kind is the registry entry for one concrete message type
type kind struct {
	id      ID
	name    string
	typ     reflect.Type
	pool    recycler
	handler func(any)
	stats   Stats
	metrics kindMetrics
}

// Register assigns the next ID to T under name and primes its pool
// Intended to be called once per type at startup so IDs are deterministic.
// Registering an already known type returns its existing ID
func Register[T any](b *Bus, name string) ID {
	typ := reflect.TypeFor[T]()
	if k, ok := b.byType[typ]; ok {
		if k.name != name {
			b.log.Warn("message type already registered under another name",
				"message", k.name, "requested", name)
		}
		return k.id
	}
	return register[T](b, typ, name).id
}

// IDOf returns the ID of T, registering it under its Go type name on first use
func IDOf[T any](b *Bus) ID {
	return kindOf[T](b).id
}

// StatsOf returns pool and dispatch counters for T
func StatsOf[T any](b *Bus) Stats {
	k := kindOf[T](b)
	s := k.stats
	s.Free = k.pool.free()
	return s
}

func kindOf[T any](b *Bus) *kind {
	typ := reflect.TypeFor[T]()
	if k, ok := b.byType[typ]; ok {
		return k
	}
	return register[T](b, typ, typ.Name())
}

func register[T any](b *Bus, typ reflect.Type, name string) *kind {
	k := &kind{
		id:   ID(len(b.kinds) + 1),
		name: name,
		typ:  typ,
		metrics: kindMetrics{
			dispatched: b.metrics.Dispatched(name),
			unhandled:  b.metrics.Unhandled(name),
			allocated:  b.metrics.PoolAllocated(name),
		},
	}
	k.pool = newPool[T](k, b.prime)
	b.kinds = append(b.kinds, k)
	b.byType[typ] = k
	b.log.Debug("message type registered", "message", name, "id", k.id)
	return k
}
