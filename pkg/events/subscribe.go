package events

import (
	"sync"

	"github.com/google/uuid"
)

// Subscribe registers listener under a generated key and returns the key and a
// function that unregisters it. Calling cancel more than once is a no-op.
func Subscribe(m Manager, listener Listener) (key string, cancel func(), err error) {
	key = "subscription." + uuid.NewString()
	if err := m.Register(key, listener); err != nil {
		return "", func() {}, err
	}

	var once sync.Once
	return key, func() {
		once.Do(func() { m.Unregister(key) })
	}, nil
}
