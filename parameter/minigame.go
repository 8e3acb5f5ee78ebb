package parameter

import "time"

// Mini-Game Round
const (
	// MiniGameDuration is the length of one collect round
	MiniGameDuration = 30 * time.Second

	// MiniGameCrystalCount is how many collectibles a round scatters
	MiniGameCrystalCount = 8

	// MiniGamePickupRadius is the center distance at which a collectible is taken
	MiniGamePickupRadius = 1.0
)
