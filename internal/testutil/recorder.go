package testutil

import (
	"sync"

	"github.com/mitchelldurbincs/LudoEngine/internal/game/events"
)

// EventRecorder is a subscriber that keeps every event it receives
type EventRecorder struct {
	id     string
	mu     sync.Mutex
	events []events.Event
}

// NewEventRecorder creates a recorder interested in every event type
func NewEventRecorder(id string) *EventRecorder {
	return &EventRecorder{id: id}
}

func (r *EventRecorder) ID() string                         { return r.id }
func (r *EventRecorder) InterestedIn(eventType string) bool { return true }

// HandleEvent stores the event
func (r *EventRecorder) HandleEvent(e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of everything recorded
func (r *EventRecorder) Events() []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.Event(nil), r.events...)
}

// Types returns the recorded event types in order
func (r *EventRecorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]string, len(r.events))
	for i, e := range r.events {
		types[i] = e.Type()
	}
	return types
}

// OfType returns the recorded events of one type
func (r *EventRecorder) OfType(eventType string) []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []events.Event
	for _, e := range r.events {
		if e.Type() == eventType {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many events of a type were recorded
func (r *EventRecorder) Count(eventType string) int {
	return len(r.OfType(eventType))
}

// Reset forgets everything recorded so far
func (r *EventRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
