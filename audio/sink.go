package audio

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/skirmish/event"
	"github.com/lixenwraith/skirmish/parameter"
	"github.com/lixenwraith/skirmish/vmath"
)

// Config selects the speaker output
type Config struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"` // 0..1
	SampleRate int     `yaml:"sample_rate"`
}

// DefaultConfig returns the compiled-in audio settings; sound is off by default
func DefaultConfig() Config {
	return Config{
		Volume:     parameter.AudioMasterVolume,
		SampleRate: parameter.AudioSampleRate,
	}
}

// LogSink records effects through a logger
type LogSink struct {
	log    *slog.Logger
	counts map[event.EffectKind]int
}

// NewLogSink creates a sink logging each effect at debug level
func NewLogSink(log *slog.Logger) *LogSink {
	if log == nil {
		log = slog.Default()
	}
	return &LogSink{
		log:    log.With("component", "effects"),
		counts: make(map[event.EffectKind]int),
	}
}

func (s *LogSink) Play(kind event.EffectKind, pos vmath.Vec3) {
	s.counts[kind]++
	s.log.Debug("effect", "effect", kind.String(), "x", pos.X, "z", pos.Z)
}

// Count returns how many times kind was played
func (s *LogSink) Count(kind event.EffectKind) int {
	return s.counts[kind]
}

// SpeakerSink synthesizes effects and mixes them to the default audio device
type SpeakerSink struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	volume      float64
	mixer       *beep.Mixer
	initialized bool
	log         *slog.Logger
}

// NewSpeakerSink opens the speaker
// Errors mean no audio device; callers fall back to a LogSink
func NewSpeakerSink(cfg Config, log *slog.Logger) (*SpeakerSink, error) {
	if log == nil {
		log = slog.Default()
	}
	s := &SpeakerSink{
		rate:   beep.SampleRate(cfg.SampleRate),
		volume: cfg.Volume,
		mixer:  &beep.Mixer{},
		log:    log.With("component", "audio"),
	}
	if err := speaker.Init(s.rate, s.rate.N(parameter.AudioBufferDuration)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(s.mixer)
	s.initialized = true
	s.log.Info("audio started", "sample_rate", cfg.SampleRate, "volume", cfg.Volume)
	return s, nil
}

// Play queues the sound for kind; kinds without a sound are ignored
func (s *SpeakerSink) Play(kind event.EffectKind, _ vmath.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	st := EffectSound(kind, s.volume, s.rate)
	if st == nil {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close stops everything still playing
// beep has no speaker shutdown, only Clear
func (s *SpeakerSink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Clear()
	s.initialized = false
}
