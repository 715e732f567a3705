package parameter

// Gravity is the fixed vertical displacement applied on every airborne frame
// Frame-rate dependent: not scaled by delta time
const Gravity float32 = -0.25

// Grounding Probe
const (
	// ProbeLift raises the probe origin above the feet so a resting collider still hits its floor
	ProbeLift float32 = 0.5

	// ProbeLength is the downward reach of the grounding ray from the lifted origin
	ProbeLength float32 = 0.6
)

// Competitor Capsule
const (
	// CapsuleHeight is the competitor collider height
	CapsuleHeight float32 = 3

	// CapsuleRadius is the competitor collider radius (x/z half extent)
	CapsuleRadius float32 = 0.05

	// SpawnLift places a new competitor above its start marker; gravity settles it
	SpawnLift float32 = 1
)

// Finish Volume half extents around an end marker
const (
	FinishVolumeHalfX float32 = 1
	FinishVolumeHalfY float32 = 2
	FinishVolumeHalfZ float32 = 0.5
)
