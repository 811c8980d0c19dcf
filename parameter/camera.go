package parameter

import "time"

// Camera projection
const (
	// CameraFOV is the vertical field of view in degrees
	CameraFOV  = 55.0
	CameraNear = 0.1
	CameraFar  = 400.0

	// CameraDistance is the unfocused camera distance from the origin
	CameraDistance = 16.0

	// CameraFocusDistance is the camera distance while focused
	CameraFocusDistance = 8.0

	// CameraFocusDuration is the length of the focus zoom tween
	CameraFocusDuration = 1200 * time.Millisecond

	// CameraMaxPixelRatio caps pixel density scaling
	CameraMaxPixelRatio = 2.0
)
