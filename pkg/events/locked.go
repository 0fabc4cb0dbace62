package events

import (
	"context"
	"sync"
)

var (
	_ Manager = (*Dispatcher)(nil)
	_ Manager = (*LockedDispatcher)(nil)
)

// LockedDispatcher is a Dispatcher guarded by a single sync.RWMutex.
//
// Register, Unregister and Clear hold the lock exclusively for the whole
// mutation, so a key replacement is never observed half done. Publish holds
// the read lock only while it copies the matching listeners and invokes them
// after releasing it, so a slow listener does not block registration and a
// listener may register or unregister from inside its handler.
type LockedDispatcher struct {
	mu sync.RWMutex
	d  *Dispatcher
}

// NewLockedDispatcher creates a guarded dispatcher. It accepts the same
// options as NewDispatcher.
func NewLockedDispatcher(opts ...Option) (*LockedDispatcher, error) {
	d, err := NewDispatcher(opts...)
	if err != nil {
		return nil, err
	}
	return &LockedDispatcher{d: d}, nil
}

// Config returns the dispatcher's configuration.
func (l *LockedDispatcher) Config() Config {
	return l.d.Config()
}

// Register stores listener under key; see Dispatcher.Register.
func (l *LockedDispatcher) Register(key string, listener Listener) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.d.Register(key, listener)
}

// Unregister removes the listener registered under key; see Dispatcher.Unregister.
func (l *LockedDispatcher) Unregister(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.d.Unregister(key)
}

// Clear unregisters every listener.
func (l *LockedDispatcher) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.d.Clear()
}

// Publish delivers event to a snapshot of the matching listeners taken under
// the read lock; see Dispatcher.Publish for the delivery semantics.
func (l *LockedDispatcher) Publish(ctx context.Context, event Event) error {
	if isNil(event) {
		l.d.rejectNil(ctx)
		return ErrNilEvent
	}

	l.mu.RLock()
	targets := l.d.registry.candidates(event, l.d.config)
	l.mu.RUnlock()

	return l.d.deliver(ctx, event, targets)
}

// Len returns the number of registered listeners.
func (l *LockedDispatcher) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.d.Len()
}

// Keys returns the registered keys in sorted order.
func (l *LockedDispatcher) Keys() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.d.Keys()
}

// Lookup returns the listener registered under key.
func (l *LockedDispatcher) Lookup(key string) (Listener, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.d.Lookup(key)
}

// Listeners returns a copy of the key to listener mapping.
func (l *LockedDispatcher) Listeners() map[string]Listener {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.d.Listeners()
}
