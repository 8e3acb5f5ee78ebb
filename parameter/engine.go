package parameter

import "time"

// Game Loop Timing
const (
	// FrameUpdateInterval is the frame tick interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// InputEventBuffer is the capacity of the terminal event channel
	InputEventBuffer = 128
)

// World Scale
const (
	// CellSize is the world-unit edge length of one grid cell
	CellSize = 1.0

	// FloorHalfExtent bounds the walkable floor in cells from the origin
	FloorHalfExtent = 24
)
