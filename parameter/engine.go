package parameter

import "time"

// Game Loop & Engine Timing
const (
	// GameUpdateInterval is the game logic update interval (clock tick)
	GameUpdateInterval = 50 * time.Millisecond

	// MaxTickDelta clamps a single tick delta after stalls (debugger, suspend)
	MaxTickDelta = 250 * time.Millisecond
)

// Message Bus
const (
	// MessageQueueSize is the initial capacity of the message ring buffer, grows by doubling
	MessageQueueSize = 256

	// MessagePoolPrime is the number of instances allocated per message type on registration
	MessagePoolPrime = 10
)
