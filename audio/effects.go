// Package audio turns PlayEffect notifications into sound
//
// Every effect is synthesized on demand from oscillators and envelopes; there
// are no sample files. A speaker sink mixes them through beep, a log sink just
// records them for headless runs.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/skirmish/event"
	"github.com/lixenwraith/skirmish/parameter"
	"github.com/lixenwraith/skirmish/vmath"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	noise    *vmath.FastRand
}

// NewOscillator creates an oscillator streaming duration worth of samples
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		noise:    vmath.NewFastRand(uint64(freq*1000) + 1),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.noise.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope wraps s in a linear attack and release
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(total-att-rel, 0)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = max(float64(remaining)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; zero or less is silent
// math.Log2(0) is -Inf, hence the special case
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// tone is an oscillator shaped by an envelope over its full length
func tone(freq float64, wave WaveType, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, attack, release, rate)
}

// --- Effect generators ---

func swingSound(rate beep.SampleRate) beep.Streamer {
	return tone(0, WaveNoise, parameter.SwingSoundDuration, parameter.SwingSoundAttack, parameter.SwingSoundRelease, rate)
}

func hitSound(rate beep.SampleRate) beep.Streamer {
	return tone(140, WaveSaw, parameter.HitSoundDuration, parameter.HitSoundAttack, parameter.HitSoundRelease, rate)
}

func deathSound(rate beep.SampleRate) beep.Streamer {
	// E4 falling to A3
	return beep.Seq(
		tone(329.63, WaveSquare, parameter.DeathSoundNote1Duration, parameter.DeathSoundAttack, parameter.DeathSoundNote1Release, rate),
		tone(220.0, WaveSquare, parameter.DeathSoundNote2Duration, parameter.DeathSoundAttack, parameter.DeathSoundNote2Release, rate),
	)
}

func bellSound(fundamental float64, rate beep.SampleRate) beep.Streamer {
	d := parameter.BellSoundDuration
	return beep.Mix(
		newVolume(tone(fundamental, WaveSine, d, parameter.BellSoundAttack, parameter.BellSoundFundamentalRelease, rate), 0.7),
		newVolume(tone(fundamental*2, WaveSine, d, parameter.BellSoundAttack, parameter.BellSoundOvertoneRelease, rate), 0.3),
	)
}

func clickSound(rate beep.SampleRate) beep.Streamer {
	return tone(1200, WaveSine, parameter.ClickSoundDuration, parameter.ClickSoundAttack, parameter.ClickSoundRelease, rate)
}

// EffectSound returns a fresh streamer for kind at volume, or nil for kinds without a sound
func EffectSound(kind event.EffectKind, volume float64, rate beep.SampleRate) beep.Streamer {
	var s beep.Streamer
	switch kind {
	case event.EffectSwing:
		s = swingSound(rate)
	case event.EffectHit:
		s = hitSound(rate)
	case event.EffectDeath:
		s = deathSound(rate)
	case event.EffectCombatStart:
		s = bellSound(440, rate) // A4
	case event.EffectCombatEnd:
		s = bellSound(880, rate) // A5
	case event.EffectClick:
		s = clickSound(rate)
	default:
		return nil
	}
	return newVolume(s, volume)
}
