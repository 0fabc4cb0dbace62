// Package events is an in-process, synchronous event manager.
//
// Listeners are registered under a caller-chosen key and declare the event
// types they want. Publish routes an event to the matching listeners in
// registration order, on the caller's goroutine. A listener that declares no
// event types is a universal subscriber and receives every event.
//
// Two implementations share one matching core:
//
//   - Dispatcher is unsynchronized and must be confined to one goroutine.
//   - LockedDispatcher guards the same state with a sync.RWMutex and releases
//     the lock before invoking listeners.
package events

import (
	"context"
	"reflect"
)

// EventType identifies the concrete type of an event. It is used as an index
// key only and must be stable for a given event type.
type EventType string

// Event is anything that can be published.
type Event interface {
	EventType() EventType
}

// Hierarchical is implemented by events that have a supertype. It is consulted
// only by the SingleParentFallback policy, and only one level up.
type Hierarchical interface {
	ParentEventType() EventType
}

// Listener receives events.
//
// HandledEventTypes is read once at registration and cached for as long as the
// listener stays registered. An empty result subscribes the listener to every
// event type.
type Listener interface {
	HandledEventTypes() []EventType
	HandleEvent(ctx context.Context, event Event) error
}

// Manager is the contract shared by Dispatcher and LockedDispatcher.
type Manager interface {
	Register(key string, listener Listener) error
	Unregister(key string)
	Publish(ctx context.Context, event Event) error
	Len() int
	Keys() []string
}

// ListenerFunc adapts a plain function into a Listener.
type ListenerFunc struct {
	types []EventType
	fn    func(ctx context.Context, event Event) error
}

// NewListenerFunc wraps fn. With no types the listener is a universal subscriber.
func NewListenerFunc(fn func(ctx context.Context, event Event) error, types ...EventType) *ListenerFunc {
	return &ListenerFunc{types: types, fn: fn}
}

func (l *ListenerFunc) HandledEventTypes() []EventType {
	return l.types
}

func (l *ListenerFunc) HandleEvent(ctx context.Context, event Event) error {
	if l.fn == nil {
		return nil
	}
	return l.fn(ctx, event)
}

// TypeOf derives an EventType from the Go type T ("import/path.Name").
// Pointer types resolve to their element type.
func TypeOf[T any]() EventType {
	t := reflect.TypeFor[T]()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.PkgPath() == "" || t.Name() == "" {
		return EventType(t.String())
	}
	return EventType(t.PkgPath() + "." + t.Name())
}

// isNil reports whether v is nil or a typed nil stored in an interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
