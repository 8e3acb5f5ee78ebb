package parameter

// Camera Follow
const (
	// CameraFollowHeight is the camera height above the followed entity
	CameraFollowHeight = 12.0

	// CameraFollowBack is the camera offset behind the followed entity
	CameraFollowBack = 8.0

	// CameraLerpFactor is the per-frame interpolation toward the follow target
	CameraLerpFactor = 0.15
)
