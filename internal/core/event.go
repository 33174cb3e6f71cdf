package core

import (
	"sort"
	"sync"
	"time"

	"github.com/sliink/chaincore/internal/model"
)

// Event represents a system event with metadata
type Event struct {
	Type      model.EventType
	Source    string
	Data      interface{}
	Timestamp time.Time
}

// NewEvent creates a new event
func NewEvent(eventType model.EventType, source string, data interface{}) Event {
	return Event{
		Type:      eventType,
		Source:    source,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// EventCallback is a function that is called when an event occurs
type EventCallback func(Event)

// EventPublisher is the narrow interface components use to emit events
type EventPublisher interface {
	Publish(event Event)
}

// EventBus handles event publication and subscription
type EventBus struct {
	subscribers map[model.EventType]map[string]EventCallback
	mutex       sync.RWMutex
	BaseComponent
}

// NewEventBus creates a new event bus
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers:   make(map[model.EventType]map[string]EventCallback),
		BaseComponent: NewBaseComponent("event_bus"),
	}
}

// Shutdown drops every subscriber and stops delivery
func (b *EventBus) Shutdown() bool {
	return b.ShutdownWith(func() {
		b.mutex.Lock()
		b.subscribers = make(map[model.EventType]map[string]EventCallback)
		b.mutex.Unlock()
	})
}

// Subscribe registers a callback for a specific event type
func (b *EventBus) Subscribe(eventType model.EventType, listenerID string, callback EventCallback) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.subscribers[eventType] == nil {
		b.subscribers[eventType] = make(map[string]EventCallback)
	}
	b.subscribers[eventType][listenerID] = callback
}

// Unsubscribe removes a subscriber from a specific event type
func (b *EventBus) Unsubscribe(eventType model.EventType, listenerID string) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.subscribers[eventType] != nil {
		delete(b.subscribers[eventType], listenerID)
	}
}

// Publish delivers an event synchronously to all subscribers, in listener id order.
// Events published while the bus is not ready are dropped.
func (b *EventBus) Publish(event Event) {
	if !b.IsReady() {
		return
	}

	b.mutex.RLock()
	subscribers := b.subscribers[event.Type]
	ids := make([]string, 0, len(subscribers))
	for id := range subscribers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	callbacks := make([]EventCallback, 0, len(ids))
	for _, id := range ids {
		callbacks = append(callbacks, subscribers[id])
	}
	b.mutex.RUnlock()

	for _, callback := range callbacks {
		callback(event)
	}
}
