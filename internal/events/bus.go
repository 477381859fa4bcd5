package events

import (
	"github.com/kelindar/event"
)

// Bus wraps a kelindar/event dispatcher for event broadcasting.
type Bus struct {
	dispatcher *event.Dispatcher
}

// New creates a new event bus.
func New() *Bus {
	return &Bus{
		dispatcher: event.NewDispatcher(),
	}
}

// Publish publishes an event to all subscribers.
// Usage: bus.Publish(SegmentColorChangedEvent{...})
func (b *Bus) Publish(ev Event) {
	// kelindar/event dispatches on the concrete type, so route through a
	// type switch to call the generic Publish with the right one.
	switch e := ev.(type) {
	case SegmentColorChangedEvent:
		event.Publish(b.dispatcher, e)
	case ConnectionStateChangedEvent:
		event.Publish(b.dispatcher, e)
	case CommandSentEvent:
		event.Publish(b.dispatcher, e)
	case StatusEvent:
		event.Publish(b.dispatcher, e)
	case LayoutChangedEvent:
		event.Publish(b.dispatcher, e)
	}
}

// Subscribe subscribes to events with a handler function. The handler's
// parameter type determines which events it receives. Returns an unsubscribe
// function.
// Usage: unsub := bus.Subscribe(func(e SegmentColorChangedEvent) { ... })
func (b *Bus) Subscribe(handler any) func() {
	switch h := handler.(type) {
	case func(SegmentColorChangedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(ConnectionStateChangedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(CommandSentEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(StatusEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(LayoutChangedEvent):
		return event.Subscribe(b.dispatcher, h)
	default:
		// Unrecognized handler type: no-op unsubscribe.
		return func() {}
	}
}
