package events

import (
	"context"
	"sync"
	"sync/atomic"
)

const (
	typeBase        EventType = "test.base"
	typeSpecific    EventType = "test.specific"
	typeNewSpecific EventType = "test.new_specific"
	typeDeep        EventType = "test.deep"
	typeSome        EventType = "test.some"
	typeAnother     EventType = "test.another"
	typeMore        EventType = "test.more"
)

type baseEvent struct{}

func (baseEvent) EventType() EventType { return typeBase }

// specificEvent and newSpecificEvent are children of baseEvent.
type specificEvent struct{}

func (specificEvent) EventType() EventType       { return typeSpecific }
func (specificEvent) ParentEventType() EventType { return typeBase }

type newSpecificEvent struct{}

func (newSpecificEvent) EventType() EventType       { return typeNewSpecific }
func (newSpecificEvent) ParentEventType() EventType { return typeBase }

// deepEvent is a grandchild of baseEvent.
type deepEvent struct{}

func (deepEvent) EventType() EventType       { return typeDeep }
func (deepEvent) ParentEventType() EventType { return typeSpecific }

type someEvent struct{}

func (someEvent) EventType() EventType { return typeSome }

type anotherEvent struct{}

func (anotherEvent) EventType() EventType { return typeAnother }

type moreEvent struct{}

func (moreEvent) EventType() EventType { return typeMore }

// idEvent carries a sequence number so concurrent tests can tell publishes apart.
type idEvent struct {
	typ EventType
	id  int64
}

func (e idEvent) EventType() EventType { return e.typ }

type mockListener struct {
	types    []EventType
	err      error
	onHandle func(ctx context.Context, event Event)

	calls atomic.Int64
	mu    sync.Mutex
	seen  []EventType
}

func newMockListener(types ...EventType) *mockListener {
	return &mockListener{types: types}
}

func (m *mockListener) HandledEventTypes() []EventType {
	return m.types
}

func (m *mockListener) HandleEvent(ctx context.Context, event Event) error {
	m.calls.Add(1)
	m.mu.Lock()
	m.seen = append(m.seen, event.EventType())
	m.mu.Unlock()

	if m.onHandle != nil {
		m.onHandle(ctx, event)
	}
	return m.err
}

func (m *mockListener) count() int {
	return int(m.calls.Load())
}

func (m *mockListener) called() bool {
	return m.calls.Load() > 0
}

func (m *mockListener) reset() {
	m.calls.Store(0)
	m.mu.Lock()
	m.seen = nil
	m.mu.Unlock()
}

func (m *mockListener) seenTypes() []EventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]EventType(nil), m.seen...)
}

// recorder collects listener keys in invocation order.
type recorder struct {
	mu   sync.Mutex
	keys []string
}

func (r *recorder) listener(key string, types ...EventType) *mockListener {
	l := newMockListener(types...)
	l.onHandle = func(context.Context, Event) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.keys = append(r.keys, key)
	}
	return l
}

func (r *recorder) order() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.keys...)
}

// managerFactories builds each Manager implementation with the same options.
func managerFactories() map[string]func(opts ...Option) (Manager, error) {
	return map[string]func(opts ...Option) (Manager, error){
		"Dispatcher": func(opts ...Option) (Manager, error) {
			return NewDispatcher(opts...)
		},
		"LockedDispatcher": func(opts ...Option) (Manager, error) {
			return NewLockedDispatcher(opts...)
		},
	}
}
