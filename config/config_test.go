package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/skirmish/combat"
)

func TestDefaultsValid(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
	assert.Equal(t, 45.0, s.Combat.Rings.Inner.AngleStep)
	assert.Equal(t, 50*time.Millisecond, s.Tick.Interval)
}

func TestDecodeOverlaysDefaults(t *testing.T) {
	doc := `
tick:
  interval: 20ms
combat:
  rings:
    inner:
      angle_step: 60
arena:
  obstacles:
    - {x0: 1, y0: 1, x1: 2, y1: 3}
spawns:
  walk_to_hero: true
log:
  level: debug
`
	s, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, 20*time.Millisecond, s.Tick.Interval)
	assert.Equal(t, 60.0, s.Combat.Rings.Inner.AngleStep)
	assert.Equal(t, Defaults().Combat.Rings.Inner.Radius, s.Combat.Rings.Inner.Radius, "untouched keys keep defaults")
	assert.Equal(t, Defaults().Combat.Rings.Outer, s.Combat.Rings.Outer)
	assert.Equal(t, []Rect{{X0: 1, Y0: 1, X1: 2, Y1: 3}}, s.Arena.Obstacles)
	assert.Equal(t, "debug", s.Log.Level)
	assert.True(t, s.Spawns.WalkToHero)
	assert.False(t, Defaults().Spawns.WalkToHero)
}

func TestDecodeEmptyDocument(t *testing.T) {
	s, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader("tick:\n  speed: 3\n"))
	assert.Error(t, err)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"zero inner step", func(s *Settings) { s.Combat.Rings.Inner.AngleStep = 0 }},
		{"negative outer radius", func(s *Settings) { s.Combat.Rings.Outer.Radius = -2 }},
		{"too many slots", func(s *Settings) { s.Combat.Rings.Outer.AngleStep = 0.05 }},
		{"zero pool", func(s *Settings) { s.Bus.PoolPrime = 0 }},
		{"zero tick", func(s *Settings) { s.Tick.Interval = 0 }},
		{"tiny max delta", func(s *Settings) { s.Tick.MaxDelta = time.Millisecond }},
		{"empty arena", func(s *Settings) { s.Arena.Width = 0 }},
		{"dead hero", func(s *Settings) { s.Hero.Stats.HP = 0 }},
		{"bad level", func(s *Settings) { s.Log.Level = "loud" }},
		{"loud audio", func(s *Settings) { s.Audio.Volume = 1.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Defaults()
			tt.mutate(&s)
			assert.ErrorIs(t, s.Validate(), ErrInvalid)
		})
	}
}

func TestRingErrorsKeepCause(t *testing.T) {
	s := Defaults()
	s.Combat.Rings.Inner.Radius = 0
	assert.ErrorIs(t, s.Validate(), combat.ErrRingConfig)
}

func TestEncodeRoundTripFile(t *testing.T) {
	s := Defaults()
	s.Spawns.Total = 12
	s.Arena.Obstacles = []Rect{{X0: 5, Y0: 5, X1: 6, Y1: 6}}

	var buf bytes.Buffer
	require.NoError(t, s.Encode(&buf))
	assert.Contains(t, buf.String(), "interval: 50ms")

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
