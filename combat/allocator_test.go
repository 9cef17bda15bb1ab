package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/skirmish/core"
	"github.com/lixenwraith/skirmish/event"
	"github.com/lixenwraith/skirmish/vmath"
)

func newAllocator(t *testing.T, oracle Oracle) *Allocator {
	t.Helper()
	a, err := NewAllocator(DefaultConfig(), AllocatorOptions{Oracle: oracle})
	require.NoError(t, err)
	return a
}

// at returns a reference point at the given heading around the origin
func at(degrees float64) vmath.Vec3 {
	return vmath.PolarXZ(vmath.Zero, 10, degrees)
}

func indices(slots []Slot) []int {
	out := make([]int, len(slots))
	for i, s := range slots {
		out[i] = s.Index
	}
	return out
}

func TestRingCounts(t *testing.T) {
	a := newAllocator(t, nil)
	assert.Equal(t, 8, a.InnerCount())
	assert.Equal(t, 16, a.OuterCount())
	assert.Equal(t, 24, a.Capacity())
}

func TestCandidateOrderInnerRing(t *testing.T) {
	a := newAllocator(t, nil)
	c := a.Candidates(vmath.Zero, at(10))
	require.Len(t, c, 24)
	assert.Equal(t, []int{0, 1, 7, 2, 6, 3, 5, 4}, indices(c[:8]))
	for _, s := range c[:8] {
		assert.Equal(t, RingInner, s.Ring)
	}
	for _, s := range c[8:] {
		assert.Equal(t, RingOuter, s.Ring)
		assert.GreaterOrEqual(t, s.Index, 8)
	}
}

func TestCandidatesCoverEveryIndexOnce(t *testing.T) {
	a := newAllocator(t, nil)
	for deg := 0.0; deg < 360; deg += 7.5 {
		seen := make(map[int]bool)
		for _, s := range a.Candidates(vmath.Zero, at(deg)) {
			require.False(t, seen[s.Index], "duplicate %d at %v", s.Index, deg)
			seen[s.Index] = true
		}
		assert.Len(t, seen, a.Capacity())
	}
}

func TestNearestIndexWrapsAndRoundsToEven(t *testing.T) {
	a := newAllocator(t, nil)
	// 350/45 = 7.78 rounds to 8, which wraps to 0
	assert.Equal(t, 0, a.Candidates(vmath.Zero, at(350))[0].Index)
	// Exact halves round to even
	assert.Equal(t, 0, nearest(22.5, 45, 8))
	assert.Equal(t, 2, nearest(67.5, 45, 8))
	assert.Equal(t, 0, nearest(337.5, 45, 8), "7.5 rounds to 8 and wraps")
	// Outer ring reference for 100 degrees: 100/22.5 = 4.44 -> 4, offset by N1
	c := a.Candidates(vmath.Zero, at(100))
	assert.Equal(t, 8+4, c[8].Index)
}

func TestReserveClosestScenario(t *testing.T) {
	a := newAllocator(t, nil)
	center := vmath.V3(5, 0, 5)
	ref := vmath.V3Add(center, at(10))

	s, err := a.ReserveClosest(center, ref)
	require.NoError(t, err)
	assert.Equal(t, Slot{Index: 0, Ring: RingInner}, s)
	assert.True(t, s.Melee())

	want := []int{1, 7, 2, 6, 3, 5, 4}
	for _, w := range want {
		s, err = a.ReserveClosest(center, ref)
		require.NoError(t, err)
		assert.Equal(t, w, s.Index)
	}

	// Inner ring full: falls back to the outer ring nearest 10 degrees
	s, err = a.ReserveClosest(center, ref)
	require.NoError(t, err)
	assert.Equal(t, Slot{Index: 8, Ring: RingOuter}, s)
	assert.False(t, s.Melee())
}

func TestReserveExclusiveUntilReleased(t *testing.T) {
	a := newAllocator(t, nil)
	held := make(map[int]bool)
	for range a.Capacity() {
		s, err := a.ReserveClosest(vmath.Zero, at(0))
		require.NoError(t, err)
		require.False(t, held[s.Index], "slot %d handed out twice", s.Index)
		held[s.Index] = true
	}
	assert.Equal(t, a.Capacity(), a.InUse())

	s, err := a.ReserveClosest(vmath.Zero, at(0))
	assert.ErrorIs(t, err, ErrSlotExhausted)
	assert.Equal(t, NoSlot, s)
	assert.False(t, s.Valid())

	a.Release(5)
	assert.False(t, a.Reserved(5))
	s, err = a.ReserveClosest(vmath.Zero, at(0))
	require.NoError(t, err)
	assert.Equal(t, 5, s.Index, "released bit is immediately reusable")
}

func TestReleaseNoOps(t *testing.T) {
	a := newAllocator(t, nil)
	a.Release(-1)
	a.Release(NoSlot.Index)
	a.Release(999)
	a.Release(3)
	assert.Equal(t, 0, a.InUse())
}

func TestOracleRejectsCandidates(t *testing.T) {
	// Everything with x > 0 around the origin is a wall
	oracle := OracleFunc(func(p vmath.Vec3) bool { return p.X <= 1e-9 })
	a := newAllocator(t, oracle)

	s, err := a.ReserveClosest(vmath.Zero, at(0))
	require.NoError(t, err)
	// Order is 0,1,7,2,...; 0,1,7 have x > 0, 2 (90 degrees) has x == 0
	assert.Equal(t, 2, s.Index)
	assert.False(t, a.Reserved(0), "rejected candidates stay free")
}

func TestOracleRejectsEverything(t *testing.T) {
	a := newAllocator(t, OracleFunc(func(vmath.Vec3) bool { return false }))
	_, err := a.ReserveClosest(vmath.Zero, at(0))
	assert.ErrorIs(t, err, ErrSlotExhausted)
	assert.Equal(t, 0, a.InUse())
}

func TestComputePosition(t *testing.T) {
	a := newAllocator(t, nil)
	c := vmath.V3(1, 0, 2)

	p := a.ComputePosition(c, 2) // 90 degrees inner
	assert.True(t, vmath.V3ApproxEqual(vmath.V3(1, 0, 3.5), p, 1e-9), "got %+v", p)

	p = a.ComputePosition(c, 8+8) // 180 degrees outer
	assert.True(t, vmath.V3ApproxEqual(vmath.V3(-2.5, 0, 2), p, 1e-9), "got %+v", p)
	assert.InDelta(t, 3.5, vmath.V3Dist(c, p), 1e-9)
}

func TestResetFreesAll(t *testing.T) {
	a := newAllocator(t, nil)
	for range 5 {
		_, _ = a.ReserveClosest(vmath.Zero, at(45))
	}
	a.Reset()
	assert.Equal(t, 0, a.InUse())
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.Inner.AngleStep = 0
	assert.ErrorIs(t, bad.Validate(), ErrRingConfig)

	bad = cfg
	bad.Outer.Radius = -1
	assert.ErrorIs(t, bad.Validate(), ErrRingConfig)

	bad = cfg
	bad.Outer.AngleStep = 0.05 // 8 + 7200 slots
	assert.ErrorIs(t, bad.Validate(), ErrRingConfig)

	_, err := NewAllocator(bad, AllocatorOptions{})
	assert.Error(t, err)
}

// Occupancy is not limited to a machine word
func TestAllocatorBeyondSixtyFourSlots(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Outer.AngleStep = 5 // 8 + 72 slots
	a, err := NewAllocator(cfg, AllocatorOptions{})
	require.NoError(t, err)
	require.Equal(t, 80, a.Capacity())

	seen := make(map[int]bool)
	for range a.Capacity() {
		s, err := a.ReserveClosest(vmath.Zero, at(0))
		require.NoError(t, err)
		require.False(t, seen[s.Index])
		seen[s.Index] = true
	}
	assert.Equal(t, 80, a.InUse())
	_, err = a.ReserveClosest(vmath.Zero, at(0))
	assert.ErrorIs(t, err, ErrSlotExhausted)

	a.Release(79)
	s, err := a.ReserveClosest(vmath.Zero, at(0))
	require.NoError(t, err)
	assert.Equal(t, 79, s.Index)
}

func TestComputeDamage(t *testing.T) {
	assert.Equal(t, 10.0, ComputeDamage(Stats{AP: 12}, Stats{Armor: 2}))
	assert.Equal(t, 0.0, ComputeDamage(Stats{AP: 1}, Stats{Armor: 5}))
}

func TestDistances(t *testing.T) {
	a := newAllocator(t, nil)
	d, v := a.Distances()
	assert.Equal(t, 1.5, d)
	assert.Equal(t, 0.5, v)
	assert.True(t, a.InRange(2.0))
	assert.False(t, a.InRange(2.01))
	assert.Equal(t, 22.5, a.MaxAngle())
}

func TestTrackerPushesCombatMessages(t *testing.T) {
	bus := event.NewBus(event.Options{})
	started, ended := 0, 0
	require.NoError(t, event.AddHandler(bus, func(*event.CombatStarted) { started++ }))
	require.NoError(t, event.AddHandler(bus, func(*event.CombatEnded) { ended++ }))

	tr := NewTracker(bus, nil)
	m1, m2 := core.Entity(1), core.Entity(2)

	tr.MonsterAggro(m1)
	tr.MonsterAggro(m1)
	tr.MonsterAggro(m2)
	bus.Dispatch()
	assert.Equal(t, 1, started)
	assert.True(t, tr.InCombat())
	assert.Equal(t, []core.Entity{m1, m2}, tr.Aggroed())

	tr.MonsterDead(m1)
	tr.MonsterDead(core.Entity(99))
	bus.Dispatch()
	assert.Equal(t, 0, ended)
	assert.Equal(t, 1, tr.KillCount())

	tr.MonsterDead(m2)
	bus.Dispatch()
	assert.Equal(t, 1, ended)
	assert.False(t, tr.InCombat())
	assert.Equal(t, 2, tr.KillCount())

	tr.Reset()
	assert.Equal(t, 0, tr.KillCount())
}

func TestRingString(t *testing.T) {
	assert.Equal(t, "inner", RingInner.String())
	assert.Equal(t, "outer", RingOuter.String())
}
