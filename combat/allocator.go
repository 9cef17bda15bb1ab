// Package combat places concurrent attackers around a target and tracks who is fighting
//
// Slots live on two concentric rings around a pivot: an inner melee ring and an
// outer holding ring. Indices [0, N1) address the inner ring and [N1, N1+N2) the
// outer one; occupancy is one bit per index.
package combat

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"math"

	"github.com/bits-and-blooms/bitset"

	"github.com/lixenwraith/skirmish/metrics"
	"github.com/lixenwraith/skirmish/parameter"
	"github.com/lixenwraith/skirmish/vmath"
)

// MaxSlots bounds N1+N2; the occupancy bitset grows to any size, this only
// rejects angle steps so small the spiral search would crawl
const MaxSlots = 4096

var (
	// ErrSlotExhausted is returned when every candidate in both rings is taken or not traversable
	ErrSlotExhausted = errors.New("combat: no slot available")

	// ErrRingConfig is returned for ring geometry that cannot be built
	ErrRingConfig = errors.New("combat: invalid ring configuration")
)

// Ring identifies one of the two concentric slot rings
type Ring uint8

const (
	RingInner Ring = iota // Melee positions
	RingOuter             // Holding positions
)

func (r Ring) String() string {
	if r == RingInner {
		return "inner"
	}
	return "outer"
}

// Slot is a reserved position index and the ring it belongs to
type Slot struct {
	Index int
	Ring  Ring
}

// NoSlot is held by actors without a reservation; releasing it is a no-op
var NoSlot = Slot{Index: -1}

// Valid reports whether s refers to a real index
func (s Slot) Valid() bool {
	return s.Index >= 0
}

// Melee reports whether s is on the inner ring
func (s Slot) Melee() bool {
	return s.Valid() && s.Ring == RingInner
}

// Oracle validates a candidate position before it is reserved
type Oracle interface {
	Traversable(pos vmath.Vec3) bool
}

// OracleFunc adapts a function to Oracle
type OracleFunc func(pos vmath.Vec3) bool

func (f OracleFunc) Traversable(pos vmath.Vec3) bool { return f(pos) }

// RingConfig is the geometry of one ring
type RingConfig struct {
	AngleStep float64 `yaml:"angle_step"` // Degrees between adjacent slots
	Radius    float64 `yaml:"radius"`
}

// Count returns floor(360 / AngleStep)
func (r RingConfig) Count() int {
	if r.AngleStep <= 0 {
		return 0
	}
	return int(math.Floor(360 / r.AngleStep))
}

// Config is the two-ring layout
type Config struct {
	Inner RingConfig `yaml:"inner"`
	Outer RingConfig `yaml:"outer"`
}

// DefaultConfig returns the compiled-in ring layout
func DefaultConfig() Config {
	return Config{
		Inner: RingConfig{AngleStep: parameter.CombatAngleStepInner, Radius: parameter.CombatRadiusInner},
		Outer: RingConfig{AngleStep: parameter.CombatAngleStepOuter, Radius: parameter.CombatRadiusOuter},
	}
}

// Validate checks that both rings have slots and the total stays under MaxSlots
func (c Config) Validate() error {
	for _, r := range []struct {
		name string
		cfg  RingConfig
	}{{"inner", c.Inner}, {"outer", c.Outer}} {
		if r.cfg.AngleStep <= 0 || r.cfg.AngleStep > 360 {
			return fmt.Errorf("%w: %s angle step %v out of (0, 360]", ErrRingConfig, r.name, r.cfg.AngleStep)
		}
		if r.cfg.Radius <= 0 {
			return fmt.Errorf("%w: %s radius %v must be positive", ErrRingConfig, r.name, r.cfg.Radius)
		}
	}
	if n := c.Inner.Count() + c.Outer.Count(); n > MaxSlots {
		return fmt.Errorf("%w: %d slots exceed the limit of %d", ErrRingConfig, n, MaxSlots)
	}
	return nil
}

// AllocatorMetrics are the allocator's instruments
type AllocatorMetrics struct {
	Reserved  metrics.Counter
	Exhausted metrics.Counter
	InUse     metrics.Gauge
}

// AllocatorOptions configures an Allocator
type AllocatorOptions struct {
	Logger  *slog.Logger
	Oracle  Oracle // nil accepts every position
	Metrics *AllocatorMetrics
}

// Allocator reserves exclusive slot positions around a pivot
// Single-threaded; one instance is shared by every attacker of the same target
type Allocator struct {
	cfg    Config
	n1, n2 int
	mask   *bitset.BitSet
	oracle Oracle
	log    *slog.Logger
	m      AllocatorMetrics
}

// NewAllocator builds an allocator for cfg
func NewAllocator(cfg Config, opts AllocatorOptions) (*Allocator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	m := AllocatorMetrics{
		Reserved:  metrics.NopCounter(),
		Exhausted: metrics.NopCounter(),
		InUse:     metrics.NopGauge(),
	}
	if opts.Metrics != nil {
		if opts.Metrics.Reserved != nil {
			m.Reserved = opts.Metrics.Reserved
		}
		if opts.Metrics.Exhausted != nil {
			m.Exhausted = opts.Metrics.Exhausted
		}
		if opts.Metrics.InUse != nil {
			m.InUse = opts.Metrics.InUse
		}
	}
	n1, n2 := cfg.Inner.Count(), cfg.Outer.Count()
	return &Allocator{
		cfg:    cfg,
		n1:     n1,
		n2:     n2,
		mask:   bitset.New(uint(n1 + n2)),
		oracle: opts.Oracle,
		log:    opts.Logger.With("component", "slots"),
		m:      m,
	}, nil
}

// Config returns the ring layout
func (a *Allocator) Config() Config {
	return a.cfg
}

// InnerCount returns N1
func (a *Allocator) InnerCount() int { return a.n1 }

// OuterCount returns N2
func (a *Allocator) OuterCount() int { return a.n2 }

// Capacity returns N1+N2
func (a *Allocator) Capacity() int { return a.n1 + a.n2 }

// ComputePosition returns the world position of index around center
// Inner indices sit at AngleStep*index on the inner radius; outer ones at
// AngleStep*(index-N1) on the outer radius
func (a *Allocator) ComputePosition(center vmath.Vec3, index int) vmath.Vec3 {
	if index >= a.n1 {
		return vmath.PolarXZ(center, a.cfg.Outer.Radius, a.cfg.Outer.AngleStep*float64(index-a.n1))
	}
	return vmath.PolarXZ(center, a.cfg.Inner.Radius, a.cfg.Inner.AngleStep*float64(index))
}

// nearest rounds angle/step half-to-even and wraps into [0, n)
func nearest(angle, step float64, n int) int {
	i := int(math.RoundToEven(angle / step))
	return ((i % n) + n) % n
}

// spiral yields ref, ref+1, ref-1, ref+2, ref-2, ... covering all n indices once
func spiral(ref, n int, yield func(int) bool) bool {
	if !yield(ref) {
		return false
	}
	for k := 1; 2*k <= n; k++ {
		right := (ref + k) % n
		if !yield(right) {
			return false
		}
		left := (ref - k + n) % n
		if left == right {
			continue
		}
		if !yield(left) {
			return false
		}
	}
	return true
}

// Search yields every slot in deterministic nearest-first order for an attacker at ref
// The inner ring is searched before the outer ring
func (a *Allocator) Search(center, ref vmath.Vec3) iter.Seq[Slot] {
	return func(yield func(Slot) bool) {
		angle := vmath.HeadingXZ(vmath.V3Sub(ref, center))

		innerRef := nearest(angle, a.cfg.Inner.AngleStep, a.n1)
		if !spiral(innerRef, a.n1, func(i int) bool {
			return yield(Slot{Index: i, Ring: RingInner})
		}) {
			return
		}

		outerRef := nearest(angle, a.cfg.Outer.AngleStep, a.n2)
		spiral(outerRef, a.n2, func(i int) bool {
			return yield(Slot{Index: a.n1 + i, Ring: RingOuter})
		})
	}
}

// Candidates returns the full search order as a slice
func (a *Allocator) Candidates(center, ref vmath.Vec3) []Slot {
	out := make([]Slot, 0, a.Capacity())
	for s := range a.Search(center, ref) {
		out = append(out, s)
	}
	return out
}

// ReserveClosest reserves the first free, traversable slot in search order
func (a *Allocator) ReserveClosest(center, ref vmath.Vec3) (Slot, error) {
	for s := range a.Search(center, ref) {
		if a.mask.Test(uint(s.Index)) {
			continue
		}
		if a.oracle != nil && !a.oracle.Traversable(a.ComputePosition(center, s.Index)) {
			continue
		}
		a.mask.Set(uint(s.Index))
		a.m.Reserved.Inc()
		a.m.InUse.Set(float64(a.InUse()))
		return s, nil
	}
	a.m.Exhausted.Inc()
	a.log.Debug("slot search exhausted", "in_use", a.InUse(), "capacity", a.Capacity())
	return NoSlot, ErrSlotExhausted
}

// Release frees index; out-of-range or already free indices are ignored
func (a *Allocator) Release(index int) {
	if index < 0 || index >= a.Capacity() {
		return
	}
	a.mask.Clear(uint(index))
	a.m.InUse.Set(float64(a.InUse()))
}

// Reserved reports whether index is taken
func (a *Allocator) Reserved(index int) bool {
	if index < 0 || index >= a.Capacity() {
		return false
	}
	return a.mask.Test(uint(index))
}

// InUse returns the number of reserved slots
func (a *Allocator) InUse() int {
	return int(a.mask.Count())
}

// Reset frees every slot
func (a *Allocator) Reset() {
	a.mask.ClearAll()
	a.m.InUse.Set(0)
}
