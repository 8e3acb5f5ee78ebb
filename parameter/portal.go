package parameter

import "time"

// Portal Trigger
const (
	// PortalTriggerRadius is the center distance below which a portal fires
	PortalTriggerRadius = 1.5

	// PortalCooldown suppresses re-triggering while the player lingers in range
	PortalCooldown = 3 * time.Second
)
