package parameter

import "time"

// Frame Loop Timing
const (
	// FrameUpdateInterval is the default frame clock interval (~60 FPS)
	FrameUpdateInterval = time.Second / 60

	// FrameDeltaCap bounds a single frame delta after a stall so timers do not burst
	FrameDeltaCap = 250 * time.Millisecond
)

// Event Queue Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 256

	// EventBufferMask is the bitmask for fast modulo operations (256 - 1)
	EventBufferMask = 255
)
