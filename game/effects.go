package game

import (
	"github.com/lixenwraith/skirmish/event"
	"github.com/lixenwraith/skirmish/vmath"
)

// Effects plays external feedback for PlayEffect messages
type Effects interface {
	Play(effect event.EffectKind, pos vmath.Vec3)
}

// EffectsFunc adapts a function to Effects
type EffectsFunc func(effect event.EffectKind, pos vmath.Vec3)

func (f EffectsFunc) Play(effect event.EffectKind, pos vmath.Vec3) { f(effect, pos) }

type nopEffects struct{}

func (nopEffects) Play(event.EffectKind, vmath.Vec3) {}

// effect queues a PlayEffect for the sink
func (w *World) effect(kind event.EffectKind, pos vmath.Vec3) {
	event.Send(w.bus, func(m *event.PlayEffect) {
		m.Effect = kind
		m.Position = pos
	})
}
