package services

import "sync"

// EventLocks serializes availability-affecting writes per event. Purchases
// and cancellations for the same event take the same lock; different events
// stay fully independent. One instance is shared by the purchase and ticket
// services.
type EventLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewEventLocks() *EventLocks {
	return &EventLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key and returns its unlock func.
func (k *EventLocks) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
