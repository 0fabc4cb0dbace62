package events

import (
	"maps"
	"slices"
)

// registration is the entry owned by a Registry for one listener key.
type registration struct {
	key       string
	listener  Listener
	interests []EventType // de-duplicated, registration order
}

func (r *registration) universal() bool {
	return len(r.interests) == 0
}

// Registry maps listener keys to listeners and keeps a type index over them.
//
// The key map is the source of truth. byType and universal are derived from it
// and updated in the same call, so every indexed registration is also reachable
// by its key. Registry is not safe for concurrent use.
type Registry struct {
	byKey     map[string]*registration
	byType    map[EventType][]*registration
	universal []*registration
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byKey:  make(map[string]*registration),
		byType: make(map[EventType][]*registration),
	}
}

// Register stores listener under key. A listener already registered under key
// is fully unregistered first.
func (r *Registry) Register(key string, listener Listener) error {
	_, err := r.register(key, listener)
	return err
}

// Unregister removes the listener stored under key. Unknown keys are ignored.
func (r *Registry) Unregister(key string) {
	r.unregister(key)
}

func (r *Registry) register(key string, listener Listener) (*registration, error) {
	if key == "" {
		return nil, ErrEmptyListenerKey
	}
	if isNil(listener) {
		return nil, ErrNilListener
	}

	interests, err := interestSet(listener.HandledEventTypes())
	if err != nil {
		return nil, err
	}

	r.unregister(key)

	reg := &registration{key: key, listener: listener, interests: interests}
	if reg.universal() {
		r.universal = append(r.universal, reg)
	}
	for _, t := range interests {
		r.byType[t] = append(r.byType[t], reg)
	}
	r.byKey[key] = reg

	return reg, nil
}

func (r *Registry) unregister(key string) (*registration, bool) {
	reg, ok := r.byKey[key]
	if !ok {
		return nil, false
	}

	if reg.universal() {
		r.universal = without(r.universal, reg)
	}
	for _, t := range reg.interests {
		bucket := without(r.byType[t], reg)
		if len(bucket) == 0 {
			delete(r.byType, t)
			continue
		}
		r.byType[t] = bucket
	}
	delete(r.byKey, key)

	return reg, true
}

// Clear removes every registration.
func (r *Registry) Clear() {
	clear(r.byKey)
	clear(r.byType)
	r.universal = nil
}

// Len returns the number of registered listeners.
func (r *Registry) Len() int {
	return len(r.byKey)
}

// Lookup returns the listener registered under key.
func (r *Registry) Lookup(key string) (Listener, bool) {
	reg, ok := r.byKey[key]
	if !ok {
		return nil, false
	}
	return reg.listener, true
}

// Keys returns the registered keys in sorted order.
func (r *Registry) Keys() []string {
	return slices.Sorted(maps.Keys(r.byKey))
}

// Listeners returns a copy of the key to listener mapping.
func (r *Registry) Listeners() map[string]Listener {
	out := make(map[string]Listener, len(r.byKey))
	for k, reg := range r.byKey {
		out[k] = reg.listener
	}
	return out
}

// candidates returns the registrations an event is delivered to, in delivery
// order: the matched type bucket first, then universal subscribers. The result
// is a fresh slice that never aliases the index.
func (r *Registry) candidates(event Event, config Config) []*registration {
	tag := event.EventType()

	bucket, found := r.byType[tag]
	if !found && config.Policy == SingleParentFallback {
		if h, ok := event.(Hierarchical); ok {
			if parent := h.ParentEventType(); parent != "" && parent != tag {
				bucket = r.byType[parent]
			}
		}
	}

	size := len(bucket)
	if config.UniversalSubscribers {
		size += len(r.universal)
	}
	if size == 0 {
		return nil
	}

	out := make([]*registration, 0, size)
	seen := make(map[*registration]struct{}, size)
	add := func(regs []*registration) {
		for _, reg := range regs {
			if _, dup := seen[reg]; dup {
				continue
			}
			seen[reg] = struct{}{}
			out = append(out, reg)
		}
	}

	add(bucket)
	if config.UniversalSubscribers {
		add(r.universal)
	}
	return out
}

// interestSet validates and de-duplicates a declared interest set.
func interestSet(types []EventType) ([]EventType, error) {
	if len(types) == 0 {
		return nil, nil
	}

	out := make([]EventType, 0, len(types))
	for _, t := range types {
		if t == "" {
			return nil, ErrEmptyEventType
		}
		if !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out, nil
}

func without(regs []*registration, target *registration) []*registration {
	i := slices.Index(regs, target)
	if i < 0 {
		return regs
	}
	return slices.Delete(regs, i, i+1)
}
