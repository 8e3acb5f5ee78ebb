// Package input turns terminal events into game-readable key and pointer
// state. Terminals deliver no key-up events, so a key counts as held while
// its auto-repeat keeps arriving and is released once the repeat stream
// goes quiet for longer than the decay window.
package input

import (
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
)

// holdDecay is the silence window after which a repeating key is
// considered released. Longer than typical terminal repeat intervals,
// shorter than the interaction hold threshold.
const holdDecay = 250 * time.Millisecond

// Release records a completed press with its total duration
type Release struct {
	Action   Action
	Duration time.Duration
}

// PointerEventType discriminates pointer edge events
type PointerEventType uint8

const (
	PointerMove PointerEventType = iota
	PointerDown
	PointerUp
)

// PointerEvent is one pointer edge or motion sample in screen cells
type PointerEvent struct {
	Type      PointerEventType
	X, Y      int
	Secondary bool // true for the secondary button on Down/Up
	Modifier  bool // multi-select modifier (shift) held
}

// Pointer is the current sampled pointer state
type Pointer struct {
	X, Y      int
	Primary   bool
	Secondary bool
	Modifier  bool
}

type keyState struct {
	pressedAt time.Time
	lastSeen  time.Time
}

// Service owns input state for one game session. Fed by the loop via
// HandleEvent, advanced by Tick once per frame.
type Service struct {
	bindings Bindings

	held map[Action]*keyState

	// frameReleases holds presses completed during the latest Tick; they
	// stay readable for exactly one frame so any component may observe them
	frameReleases []Release

	pointer       Pointer
	pointerEvents []PointerEvent

	now func() time.Time
}

// NewService creates a service with the given bindings (nil = defaults)
func NewService(b Bindings) *Service {
	if b == nil {
		b = DefaultBindings()
	}
	return &Service{
		bindings: b,
		held:     make(map[Action]*keyState),
		now:      time.Now,
	}
}

// SetClock overrides the time source, for tests
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// ActionFor resolves a key event through the bindings without consuming
// it, for loop-level keys that must react on the event edge
func (s *Service) ActionFor(ev *tcell.EventKey) (Action, bool) {
	a, ok := s.bindings[keyName(ev)]
	return a, ok
}

// HandleEvent consumes one terminal event
func (s *Service) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		s.handleKey(ev)
	case *tcell.EventMouse:
		s.handleMouse(ev)
	}
}

func (s *Service) handleKey(ev *tcell.EventKey) {
	action, ok := s.bindings[keyName(ev)]
	if !ok {
		return
	}
	now := s.now()
	if st, held := s.held[action]; held {
		st.lastSeen = now
		return
	}
	s.held[action] = &keyState{pressedAt: now, lastSeen: now}
}

func (s *Service) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	mod := ev.Modifiers()&tcell.ModShift != 0
	primary := ev.Buttons()&tcell.Button1 != 0
	secondary := ev.Buttons()&tcell.Button2 != 0

	prev := s.pointer
	s.pointer = Pointer{X: x, Y: y, Primary: primary, Secondary: secondary, Modifier: mod}

	switch {
	case primary && !prev.Primary:
		s.pointerEvents = append(s.pointerEvents, PointerEvent{Type: PointerDown, X: x, Y: y, Modifier: mod})
	case !primary && prev.Primary:
		s.pointerEvents = append(s.pointerEvents, PointerEvent{Type: PointerUp, X: x, Y: y, Modifier: mod})
	case secondary && !prev.Secondary:
		s.pointerEvents = append(s.pointerEvents, PointerEvent{Type: PointerDown, X: x, Y: y, Secondary: true, Modifier: mod})
	case !secondary && prev.Secondary:
		s.pointerEvents = append(s.pointerEvents, PointerEvent{Type: PointerUp, X: x, Y: y, Secondary: true, Modifier: mod})
	case x != prev.X || y != prev.Y:
		s.pointerEvents = append(s.pointerEvents, PointerEvent{Type: PointerMove, X: x, Y: y, Modifier: mod})
	}
}

// Tick expires quiet keys into the current frame's releases. Call once
// per frame before components read input.
func (s *Service) Tick() {
	s.frameReleases = s.frameReleases[:0]
	now := s.now()
	for action, st := range s.held {
		if now.Sub(st.lastSeen) > holdDecay {
			s.frameReleases = append(s.frameReleases, Release{
				Action:   action,
				Duration: st.lastSeen.Sub(st.pressedAt) + holdDecay,
			})
			delete(s.held, action)
		}
	}
}

// Held reports whether action is currently held
func (s *Service) Held(action Action) bool {
	_, ok := s.held[action]
	return ok
}

// HeldSince returns the press start of a held action
func (s *Service) HeldSince(action Action) (time.Time, bool) {
	st, ok := s.held[action]
	if !ok {
		return time.Time{}, false
	}
	return st.pressedAt, true
}

// Released reports whether action completed a press this frame and the
// press duration. Readable by any number of callers within the frame.
func (s *Service) Released(action Action) (time.Duration, bool) {
	for _, r := range s.frameReleases {
		if r.Action == action {
			return r.Duration, true
		}
	}
	return 0, false
}

// Pointer returns the current pointer sample
func (s *Service) Pointer() Pointer { return s.pointer }

// PointerEvents drains pointer edges/motion since the last call
func (s *Service) PointerEvents() []PointerEvent {
	ev := s.pointerEvents
	s.pointerEvents = nil
	return ev
}

// keyName normalizes a key event to a bindings key: lowercase rune for
// character keys, tcell's name lowered otherwise ("ctrl+e", "delete")
func keyName(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune && ev.Modifiers() == tcell.ModNone {
		return strings.ToLower(string(ev.Rune()))
	}
	return strings.ToLower(ev.Name())
}
