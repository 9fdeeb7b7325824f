package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventLocks_SerializesSameKey(t *testing.T) {
	locks := NewEventLocks()

	const workers = 50
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("evt-1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestEventLocks_DifferentKeysIndependent(t *testing.T) {
	locks := NewEventLocks()

	unlockA := locks.Lock("evt-a")
	defer unlockA()

	// A held lock on another key must not block this one.
	done := make(chan struct{})
	go func() {
		unlockB := locks.Lock("evt-b")
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different key blocked")
	}
}

func TestEventLocks_ReusableAfterUnlock(t *testing.T) {
	locks := NewEventLocks()

	unlock := locks.Lock("evt-1")
	unlock()

	unlock = locks.Lock("evt-1")
	unlock()
}
