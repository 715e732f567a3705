package parameter

import "time"

// Speed Model
const (
	// PlayerBaseSpeed is the initial forward speed of the player
	PlayerBaseSpeed float32 = 0.04

	// SpeedAcceleration is added once per accepted alternation
	SpeedAcceleration float32 = 0.02

	// SpeedDeceleration is removed on every frame without a fresh alternation
	SpeedDeceleration float32 = 0.0035

	// MinSwitchDelay is the debounce window between accepted alternations
	MinSwitchDelay = 800 * time.Millisecond

	// MinRunSpeed is the speed at or above which the run clip replaces idle
	MinRunSpeed float32 = 0.10
)

// Bot Driver
const (
	// BotReferenceSpeed maps a roster base speed to an alternation cadence:
	// a bot with this base speed alternates exactly every MinSwitchDelay
	BotReferenceSpeed float32 = 0.08
)

// Animation clip name variants, first match wins
var (
	IdleClipVariants = []string{"Anim|idleBoxe", "Anim|boxIdle"}
	RunClipVariants  = []string{"Anim|runBoxe", "Anim|boxRun"}
)
