package state

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/worldkit/event"
	"github.com/lixenwraith/worldkit/scene"
)

// stub is a scriptable state for manager tests
type stub struct {
	name     string
	ready    bool
	enterErr error

	enters, exits, updates int
	lastParams             any
}

func (s *stub) Name() string { return s.name }
func (s *stub) Enter(params any) error {
	s.enters++
	s.lastParams = params
	return s.enterErr
}
func (s *stub) Exit()                 { s.exits++ }
func (s *stub) Update(time.Duration)  { s.updates++ }
func (s *stub) Scene() *scene.Object  { return nil }
func (s *stub) Camera() *scene.Camera { return nil }
func (s *stub) Ready() bool           { return s.ready }

func newTestManager() (*Manager, *event.Bus) {
	bus := event.NewBus()
	return NewManager(bus, zap.NewNop()), bus
}

func TestManagerSwitchEntersAndExits(t *testing.T) {
	m, _ := newTestManager()
	a := &stub{name: "a", ready: true}
	b := &stub{name: "b", ready: true}
	m.Register(a)
	m.Register(b)

	if err := m.Switch("a", "hello"); err != nil {
		t.Fatalf("Switch(a) failed: %v", err)
	}
	if a.enters != 1 || a.lastParams != "hello" {
		t.Errorf("Expected a entered once with params, got enters=%d params=%v", a.enters, a.lastParams)
	}

	if err := m.Switch("b", nil); err != nil {
		t.Fatalf("Switch(b) failed: %v", err)
	}
	if a.exits != 1 {
		t.Errorf("Expected a exited on switch away, got %d", a.exits)
	}
	if m.CurrentName() != "b" {
		t.Errorf("Expected current b, got %q", m.CurrentName())
	}
}

func TestManagerUnknownTargetKeepsCurrent(t *testing.T) {
	m, _ := newTestManager()
	a := &stub{name: "a", ready: true}
	m.Register(a)
	if err := m.Switch("a", nil); err != nil {
		t.Fatal(err)
	}

	err := m.Switch("nowhere", nil)
	if !errors.Is(err, ErrUnknownState) {
		t.Fatalf("Expected ErrUnknownState, got %v", err)
	}
	if a.exits != 0 {
		t.Error("Expected current state untouched by unknown target")
	}
	if m.CurrentName() != "a" {
		t.Errorf("Expected current still a, got %q", m.CurrentName())
	}
}

func TestManagerSameNameReenters(t *testing.T) {
	m, _ := newTestManager()
	a := &stub{name: "a", ready: true}
	m.Register(a)

	m.Switch("a", nil)
	m.Switch("a", nil)

	if a.exits != 1 || a.enters != 2 {
		t.Errorf("Expected full exit/re-enter on same-name switch, got exits=%d enters=%d", a.exits, a.enters)
	}
}

func TestManagerSkipsUpdateUntilReady(t *testing.T) {
	m, _ := newTestManager()
	a := &stub{name: "a"}
	m.Register(a)
	m.Switch("a", nil)

	m.Update(16 * time.Millisecond)
	if a.updates != 0 {
		t.Error("Expected no update while state not ready")
	}

	a.ready = true
	m.Update(16 * time.Millisecond)
	if a.updates != 1 {
		t.Errorf("Expected one update once ready, got %d", a.updates)
	}
}

func TestManagerDrivenByChangeStateEvents(t *testing.T) {
	m, bus := newTestManager()
	a := &stub{name: "a", ready: true}
	m.Register(a)

	bus.Emit(event.TopicChangeState, event.ChangeState{Target: "a", Params: "via-bus"})

	if m.CurrentName() != "a" || a.lastParams != "via-bus" {
		t.Errorf("Expected bus-driven switch into a, got current=%q params=%v", m.CurrentName(), a.lastParams)
	}
}

func TestManagerEnterFailureFallsBack(t *testing.T) {
	m, _ := newTestManager()
	hub := &stub{name: "hub", ready: true}
	bad := &stub{name: "bad", enterErr: errors.New("missing world")}
	m.Register(hub)
	m.Register(bad)
	m.SetFallback("hub")

	m.Switch("hub", nil)
	if err := m.Switch("bad", nil); err != nil {
		t.Fatalf("Expected fallback to absorb enter failure, got %v", err)
	}
	if m.CurrentName() != "hub" {
		t.Errorf("Expected fallback into hub, got %q", m.CurrentName())
	}
	if hub.exits != 1 || hub.enters != 2 {
		t.Errorf("Expected hub exited then re-entered, got exits=%d enters=%d", hub.exits, hub.enters)
	}
}

func TestManagerCloseExitsAndUnsubscribes(t *testing.T) {
	m, bus := newTestManager()
	a := &stub{name: "a", ready: true}
	m.Register(a)
	m.Switch("a", nil)

	m.Close()
	if a.exits != 1 {
		t.Error("Expected current state exited on close")
	}
	if n := bus.SubscriberCount(event.TopicChangeState); n != 0 {
		t.Errorf("Expected change-state subscription released, %d left", n)
	}

	// A post-close event must not resurrect the manager
	bus.Emit(event.TopicChangeState, event.ChangeState{Target: "a"})
	if m.Current() != nil {
		t.Error("Expected manager inert after close")
	}
}
