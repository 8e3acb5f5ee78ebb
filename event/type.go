package event

// Topic names used across the game. Payload shapes are documented per topic.
const (
	// TopicChangeState requests a world transition
	// Payload: ChangeState
	TopicChangeState = "change-state"

	// TopicNotify surfaces a transient user-facing message
	// Payload: string
	TopicNotify = "notify"

	// TopicInteraction reports that an interaction handler fired
	// Payload: Interaction
	TopicInteraction = "interaction"

	// TopicWorldSaved announces a successful editor save
	// Payload: string (world name)
	TopicWorldSaved = "world-saved"

	// TopicCue requests an audio cue
	// Payload: Cue
	TopicCue = "audio-cue"
)

// Cue names a short audio feedback sound
type Cue string

const (
	CuePlace    Cue = "place"
	CueReject   Cue = "reject"
	CueInteract Cue = "interact"
	CuePortal   Cue = "portal"
	CueSave     Cue = "save"
)

// ChangeState carries the target state name and optional enter params
type ChangeState struct {
	Target string
	Params any
}

// Interaction identifies a fired interaction and its payload
type Interaction struct {
	ID   string
	Data map[string]any
}
