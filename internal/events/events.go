package events

import (
	"fmt"
	"sync"

	console "vantage/internal/utils/logger"
)

var log = console.New("EVENTS")

// EventHandler receives the payload published with the event. Repository
// mutations publish "<resource>.created|updated|deleted" with the affected
// record so subscribers such as the audit recorder can react.
type EventHandler func(interface{})

// Change is the payload repositories publish for every mutating backend
// call that succeeded.
type Change struct {
	Resource   string
	Action     string
	ResourceID string
	ActorID    string
	ActorEmail string
	Data       interface{}
}

type EventBus struct {
	handlers map[string][]EventHandler
	mu       sync.RWMutex
}

var defaultBus = NewEventBus()

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[string][]EventHandler),
	}
}

// On registers a handler for an event
func (bus *EventBus) On(event string, handler EventHandler) {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	bus.handlers[event] = append(bus.handlers[event], handler)
	log.Info("Registered handler for event: %s", event)
}

// Emit triggers an event with the given data. Handlers run on their own
// goroutines; a panicking handler never takes the caller down.
func (bus *EventBus) Emit(event string, data interface{}) {
	bus.mu.RLock()
	handlers := make([]EventHandler, len(bus.handlers[event]))
	copy(handlers, bus.handlers[event])
	bus.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}

	for _, handler := range handlers {
		go func(h EventHandler) {
			defer func() {
				if r := recover(); r != nil {
					_ = log.Error("Panic in event handler for %s", fmt.Errorf("panic: %v", r), event)
				}
			}()
			h(data)
		}(handler)
	}
}

// On Global event functions that use the default event bus
func On(event string, handler EventHandler) {
	defaultBus.On(event, handler)
}

func Emit(event string, data interface{}) {
	defaultBus.Emit(event, data)
}
