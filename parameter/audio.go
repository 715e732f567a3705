package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate     = 44100
	AudioBufferDuration = 100 * time.Millisecond
)

// Cue tones
const (
	CueCountdownFreq     = 440.0
	CueCountdownDuration = 120 * time.Millisecond

	CueFightFreq     = 880.0
	CueFightDuration = 350 * time.Millisecond

	CueFinishFreq     = 660.0
	CueFinishDuration = 200 * time.Millisecond
)
