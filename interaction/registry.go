// Package interaction maps interaction ids carried by placed objects to
// runtime handlers. The registry is runtime-only; saved worlds persist
// just the id and the free-form data payload.
package interaction

import (
	"go.uber.org/zap"

	"github.com/lixenwraith/worldkit/event"
)

// Built-in interaction ids
const (
	ShowMessage       = "show-message"
	TeleportPlayer    = "teleport-player"
	ToggleAnimation   = "toggle-animation"
	ShowAnimSelection = "show-animation-selection"
	ChangeWorld       = "change-world"
)

// Handler consumes the free-form data payload of a fired interaction
type Handler func(data map[string]any)

// Registry maps ids to handlers
type Registry struct {
	bus      *event.Bus
	handlers map[string]Handler
	log      *zap.Logger
}

// NewRegistry creates an empty registry; bus may be nil in tests, which
// skips the fired-interaction announcement
func NewRegistry(bus *event.Bus, log *zap.Logger) *Registry {
	return &Registry{
		bus:      bus,
		handlers: make(map[string]Handler),
		log:      log,
	}
}

// Register binds id to handler, replacing any previous binding
func (r *Registry) Register(id string, h Handler) {
	if h == nil {
		return
	}
	r.handlers[id] = h
}

// Has reports whether id is registered
func (r *Registry) Has(id string) bool {
	_, ok := r.handlers[id]
	return ok
}

// Fire invokes the handler for id. An unknown id is a logged no-op,
// never an error that propagates into the caller's frame.
func (r *Registry) Fire(id string, data map[string]any) {
	h, ok := r.handlers[id]
	if !ok {
		r.log.Warn("unknown interaction id", zap.String("id", id))
		return
	}
	h(data)
	if r.bus != nil {
		r.bus.Emit(event.TopicInteraction, event.Interaction{ID: id, Data: data})
	}
}
