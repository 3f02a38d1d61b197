package util

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestStripeOf(t *testing.T) {
	id := uuid.New()
	assert.Equal(t, stripeOf(id), stripeOf(id))

	for i := 0; i < 1000; i++ {
		s := stripeOf(uuid.New())
		assert.GreaterOrEqual(t, s, 0)
		assert.Less(t, s, keyLockStripes)
	}
}

func TestKeyLockSerialisesSameID(t *testing.T) {
	var locks KeyLock
	id := uuid.New()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock(id)
			defer unlock()
			v := counter
			counter = v + 1
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}
