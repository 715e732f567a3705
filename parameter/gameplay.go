package parameter

import "time"

// Countdown
const (
	// CountdownSteps is the number of countdown panels shown in order
	CountdownSteps = 4

	// CountdownInterval is the cadence between countdown panels
	CountdownInterval = time.Second

	// CountdownLastStepHide hides the final countdown panel after it is shown
	CountdownLastStepHide = 500 * time.Millisecond

	// RevealDelay is measured from countdown start; the playable surface is revealed after it
	RevealDelay = 4500 * time.Millisecond
)

// Scoreboard
const (
	// ScoreboardDelay separates the end of play from the scoreboard phase
	ScoreboardDelay = time.Second

	// ResultsRevealDelay separates the finish banner from the results panel
	ResultsRevealDelay = 2 * time.Second

	// PersistTimeout bounds one record service call
	PersistTimeout = 5 * time.Second
)

// Environment
const (
	// LightIntensity is the hemispheric light intensity created during setup
	LightIntensity float32 = 0.7

	// CharacterAssetDir prefixes the player's selected asset file
	CharacterAssetDir = "./models/characters/"

	// DefaultPlayerName is used when the profile has no username
	DefaultPlayerName = "Playertest"
)

// Profile keys in the durable key-value store
const (
	ProfileKeyUsername  = "username"
	ProfileKeyCharacter = "pathCharacter"
)
