package parameter

// Camera Path
const (
	// CameraFPS is the keyframe rate of the intro camera path
	CameraFPS = 60

	// CameraPathSeconds is the intro camera path duration
	CameraPathSeconds = 11
)
