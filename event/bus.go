// Package event provides the synchronous topic bus game systems talk over.
// The bus is constructed once and handed to whoever needs it; there is no
// package-level instance, so tests build isolated buses freely.
package event

import (
	"sync"

	"github.com/google/uuid"
)

// Handler receives the payload passed to Emit
type Handler func(payload any)

// Subscription identifies one registered handler; Cancel removes it
type Subscription struct {
	id    uuid.UUID
	topic string
	bus   *Bus
}

// Topic returns the topic this subscription listens on
func (s *Subscription) Topic() string { return s.topic }

// Cancel removes the handler from the bus. Safe to call more than once.
// A cancellation during an in-flight Emit takes effect on the next Emit.
func (s *Subscription) Cancel() {
	if s.bus != nil {
		s.bus.remove(s.topic, s.id)
	}
}

type entry struct {
	id      uuid.UUID
	handler Handler
}

// Bus delivers payloads to subscribers synchronously, in subscription
// order. Emit iterates a snapshot of the subscriber list, so handlers may
// subscribe or cancel mid-emit without affecting the current delivery.
type Bus struct {
	mu     sync.RWMutex
	topics map[string][]entry
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{topics: make(map[string][]entry)}
}

// Subscribe registers handler for topic. Duplicate handlers are allowed
// and each receives its own subscription.
func (b *Bus) Subscribe(topic string, handler Handler) *Subscription {
	if handler == nil {
		return &Subscription{}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	id := uuid.New()
	b.topics[topic] = append(b.topics[topic], entry{id: id, handler: handler})
	return &Subscription{id: id, topic: topic, bus: b}
}

// Emit synchronously invokes every current subscriber of topic
func (b *Bus) Emit(topic string, payload any) {
	b.mu.RLock()
	subs := b.topics[topic]
	snapshot := make([]entry, len(subs))
	copy(snapshot, subs)
	b.mu.RUnlock()

	for _, e := range snapshot {
		e.handler(payload)
	}
}

// SubscriberCount reports current subscribers for a topic, for tests and
// leak diagnostics
func (b *Bus) SubscriberCount(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.topics[topic])
}

func (b *Bus) remove(topic string, id uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.topics[topic]
	for i, e := range subs {
		if e.id == id {
			b.topics[topic] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}
