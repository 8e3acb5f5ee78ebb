package parameter

// Editor Grid & Tools
const (
	// EditorRotateStep is the quarter-turn applied to selected objects, degrees
	EditorRotateStep = 90.0

	// EditorPanSpeed is camera pan distance per pointer cell while panning
	EditorPanSpeed = 0.5

	// EditorCameraHeight is the top-down camera height over the grid
	EditorCameraHeight = 20.0

	// ThumbnailSize is the square pixel edge of generated asset previews
	ThumbnailSize = 32
)

// Notification display
const (
	// NotifyLifetimeSeconds is how long a transient notification stays visible
	NotifyLifetimeSeconds = 3.0
)
