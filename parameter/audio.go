package parameter

import "time"

// Audio Output
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	// 50ms aligns with the game tick
	AudioBufferDuration = 50 * time.Millisecond

	AudioMasterVolume = 0.6
)

// Swing: short noise sweep
const (
	SwingSoundDuration = 180 * time.Millisecond
	SwingSoundAttack   = 60 * time.Millisecond
	SwingSoundRelease  = 100 * time.Millisecond
)

// Hit: low saw buzz
const (
	HitSoundDuration = 90 * time.Millisecond
	HitSoundAttack   = 5 * time.Millisecond
	HitSoundRelease  = 40 * time.Millisecond
)

// Death: two falling square notes
const (
	DeathSoundNote1Duration = 120 * time.Millisecond
	DeathSoundNote2Duration = 320 * time.Millisecond
	DeathSoundAttack        = 5 * time.Millisecond
	DeathSoundNote1Release  = 60 * time.Millisecond
	DeathSoundNote2Release  = 260 * time.Millisecond
)

// Combat start and end: bell with an overtone
const (
	BellSoundDuration           = 600 * time.Millisecond
	BellSoundAttack             = 5 * time.Millisecond
	BellSoundFundamentalRelease = 550 * time.Millisecond
	BellSoundOvertoneRelease    = 200 * time.Millisecond
)

// Click: sine tick
const (
	ClickSoundDuration = 40 * time.Millisecond
	ClickSoundAttack   = 2 * time.Millisecond
	ClickSoundRelease  = 30 * time.Millisecond
)
