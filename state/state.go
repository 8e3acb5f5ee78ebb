// Package state implements the finite-state world manager. Each state
// owns a scene root, a camera and its entities; the manager keeps exactly
// one current and drives it only once it reports ready.
package state

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/worldkit/event"
	"github.com/lixenwraith/worldkit/scene"
)

// ErrUnknownState marks a switch request naming no registered state
var ErrUnknownState = errors.New("unknown state")

// State is one world the game can be in. Enter may begin asynchronous
// asset loading; Ready reports (and finalizes) completion. Exit releases
// everything the state built, leaving no residue for a later re-enter.
type State interface {
	Name() string
	Enter(params any) error
	Exit()
	Update(dt time.Duration)
	Scene() *scene.Object
	Camera() *scene.Camera
	Ready() bool
}

// Manager registers states and routes change-state events to them
type Manager struct {
	states  map[string]State
	current State

	fallback string

	bus *event.Bus
	sub *event.Subscription
	log *zap.Logger
}

// NewManager creates a manager listening for change-state events on bus
func NewManager(bus *event.Bus, log *zap.Logger) *Manager {
	m := &Manager{
		states: make(map[string]State),
		bus:    bus,
		log:    log,
	}
	m.sub = bus.Subscribe(event.TopicChangeState, func(payload any) {
		cs, ok := payload.(event.ChangeState)
		if !ok {
			log.Warn("change-state event with unexpected payload")
			return
		}
		if err := m.Switch(cs.Target, cs.Params); err != nil {
			log.Error("state switch failed", zap.String("target", cs.Target), zap.Error(err))
		}
	})
	return m
}

// Register adds s under its name, replacing any previous registration
func (m *Manager) Register(s State) {
	m.states[s.Name()] = s
}

// SetFallback names the state entered when a switch target fails to enter
func (m *Manager) SetFallback(name string) { m.fallback = name }

// Current returns the active state, nil between failed transitions
func (m *Manager) Current() State { return m.current }

// CurrentName returns the active state's name, "" when none
func (m *Manager) CurrentName() string {
	if m.current == nil {
		return ""
	}
	return m.current.Name()
}

// Switch transitions to the named state. An unknown name keeps the
// current state running. Switching to the current state's own name exits
// and re-enters it from scratch.
func (m *Manager) Switch(name string, params any) error {
	next, ok := m.states[name]
	if !ok {
		return ErrUnknownState
	}
	if m.current != nil {
		m.current.Exit()
		m.current = nil
	}
	if err := next.Enter(params); err != nil {
		m.log.Error("state enter failed", zap.String("state", name), zap.Error(err))
		m.bus.Emit(event.TopicNotify, "failed to enter "+name)
		if m.fallback != "" && m.fallback != name {
			return m.Switch(m.fallback, nil)
		}
		return err
	}
	m.current = next
	m.log.Info("state entered", zap.String("state", name))
	return nil
}

// Update delegates to the current state once it is ready. A state still
// loading assets is simply skipped this frame.
func (m *Manager) Update(dt time.Duration) {
	if m.current == nil || !m.current.Ready() {
		return
	}
	m.current.Update(dt)
}

// Close exits the current state and detaches from the bus
func (m *Manager) Close() {
	if m.current != nil {
		m.current.Exit()
		m.current = nil
	}
	if m.sub != nil {
		m.sub.Cancel()
		m.sub = nil
	}
}
