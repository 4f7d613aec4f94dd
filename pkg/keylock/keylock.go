// Package keylock provides in-process mutual exclusion keyed by string.
package keylock

import (
	"context"
	"sync"
)

type entry struct {
	ch   chan struct{}
	refs int
}

// KeyLock serializes holders of the same key. Entries are removed once no
// goroutine holds or waits for them. The zero value is ready to use.
type KeyLock struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// New creates a KeyLock.
func New() *KeyLock {
	return &KeyLock{}
}

// Lock blocks until key is held or ctx is done. The returned func releases
// the key and must be called exactly once.
func (k *KeyLock) Lock(ctx context.Context, key string) (func(), error) {
	e := k.acquireEntry(key)

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		k.releaseEntry(key, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.ch
			k.releaseEntry(key, e)
		})
	}, nil
}

// Len returns the number of keys currently held or waited on.
func (k *KeyLock) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.entries)
}

func (k *KeyLock) acquireEntry(key string) *entry {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.entries == nil {
		k.entries = make(map[string]*entry)
	}
	e, ok := k.entries[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		k.entries[key] = e
	}
	e.refs++
	return e
}

func (k *KeyLock) releaseEntry(key string, e *entry) {
	k.mu.Lock()
	defer k.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(k.entries, key)
	}
}
