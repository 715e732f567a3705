package parameter

import "time"

// Layout & Margins
const (
	// TopMargin leaves one line for the title bar
	TopMargin = 1

	// LeftMargin is the left padding of every panel line
	LeftMargin = 2

	// StatusLines caps the debug status block at the bottom of the screen
	StatusLines = 6
)

// Input
const (
	// KeyHoldWindow is how long a side counts as held after its last key repeat
	// Terminals report no key release, so a side is released once repeats stop
	KeyHoldWindow = 150 * time.Millisecond

	// InputEventBuffer is the capacity of the polled terminal event channel
	InputEventBuffer = 100
)

// Labels
const (
	TitleText    = " RINGSIDE "
	CursorChar   = '█'
	CountdownGo  = "FIGHT!"
	FinishBanner = "*** FINISH ***"
	// NewRecordBanner marks a score that beats the stored personal best
	NewRecordBanner = "NEW RECORD!"
)
