package parameter

import "time"

// Player Movement
const (
	// PlayerMoveSpeed is the kinematic speed in world units per second
	PlayerMoveSpeed = 4.0

	// PlayerSpawnHeight keeps the player group slightly above the floor plane
	PlayerSpawnHeight = 0.0
)

// Player Interaction
const (
	// InteractionRadius is the maximum distance to an interactable candidate
	InteractionRadius = 2.5

	// InteractionHoldThreshold separates a tap from a hold on the interact key
	InteractionHoldThreshold = 400 * time.Millisecond
)

// Animation clip names the player auto-selects between
const (
	ClipIdle = "idle"
	ClipWalk = "walk"
)
