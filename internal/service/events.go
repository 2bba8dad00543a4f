package service

import "sync"

// EventType defines the type of event
type EventType string

const (
	EventEntryCreated  EventType = "entry_created"
	EventEntryUpdated  EventType = "entry_updated"
	EventEntryDeleted  EventType = "entry_deleted"
	EventEntryImported EventType = "entries_imported"
)

// Event represents a change to the entry store
type Event struct {
	Type    EventType `json:"type"`
	EntryID int64     `json:"entry_id,omitempty"`
	Count   int       `json:"count,omitempty"`
}

// Subscriber is called synchronously for every published event
type Subscriber func(Event)

// EventBus fans out events to subscribers in the publishing goroutine
type EventBus struct {
	mu          sync.RWMutex
	subscribers []Subscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make([]Subscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (eb *EventBus) Subscribe(fn Subscriber) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.subscribers = append(eb.subscribers, fn)
}

// Publish delivers an event to all subscribers. A nil bus drops events.
func (eb *EventBus) Publish(event Event) {
	if eb == nil {
		return
	}
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	for _, fn := range eb.subscribers {
		fn(event)
	}
}
