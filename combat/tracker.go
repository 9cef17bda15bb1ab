package combat

import (
	"log/slog"
	"slices"

	"github.com/lixenwraith/skirmish/core"
	"github.com/lixenwraith/skirmish/event"
)

// Tracker keeps the set of monsters engaged with the hero
// The first aggro pushes CombatStarted; losing the last aggroed monster pushes CombatEnded
type Tracker struct {
	bus   *event.Bus
	log   *slog.Logger
	aggro []core.Entity // Insertion order, for deterministic iteration
	kills int
}

// NewTracker creates an empty tracker pushing to bus
func NewTracker(bus *event.Bus, log *slog.Logger) *Tracker {
	if log == nil {
		log = slog.Default()
	}
	return &Tracker{bus: bus, log: log.With("component", "combat")}
}

// MonsterAggro adds m to the aggro set
func (t *Tracker) MonsterAggro(m core.Entity) {
	if slices.Contains(t.aggro, m) {
		return
	}
	if len(t.aggro) == 0 {
		event.Send[event.CombatStarted](t.bus, nil)
		t.log.Debug("combat started", "monster", m)
	}
	t.aggro = append(t.aggro, m)
}

// MonsterDead removes m and counts the kill if it was aggroed
func (t *Tracker) MonsterDead(m core.Entity) {
	i := slices.Index(t.aggro, m)
	if i < 0 {
		return
	}
	t.aggro = slices.Delete(t.aggro, i, i+1)
	t.kills++
	if len(t.aggro) == 0 {
		event.Send[event.CombatEnded](t.bus, nil)
		t.log.Debug("combat ended", "kills", t.kills)
	}
}

// Forget drops m without counting a kill, used when a monster is recycled alive
func (t *Tracker) Forget(m core.Entity) {
	if i := slices.Index(t.aggro, m); i >= 0 {
		t.aggro = slices.Delete(t.aggro, i, i+1)
	}
}

// InCombat reports whether any monster is aggroed
func (t *Tracker) InCombat() bool {
	return len(t.aggro) > 0
}

// Aggroed returns the engaged monsters in aggro order
func (t *Tracker) Aggroed() []core.Entity {
	return slices.Clone(t.aggro)
}

// IsAggroed reports whether m is engaged
func (t *Tracker) IsAggroed(m core.Entity) bool {
	return slices.Contains(t.aggro, m)
}

// KillCount returns kills since the last Reset
func (t *Tracker) KillCount() int {
	return t.kills
}

// Reset clears the aggro set and kill count without pushing messages
func (t *Tracker) Reset() {
	t.aggro = t.aggro[:0]
	t.kills = 0
}
