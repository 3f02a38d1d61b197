package util

import (
	"hash/fnv"
	"sync"

	"github.com/google/uuid"
)

const keyLockStripes = 64

// KeyLock serialises work per id over a fixed set of mutexes, so memory does
// not grow with the number of ids seen. Distinct ids may share a stripe.
type KeyLock struct {
	stripes [keyLockStripes]sync.Mutex
}

// Lock blocks until id's stripe is free and returns its unlock func.
func (k *KeyLock) Lock(id uuid.UUID) func() {
	mu := &k.stripes[stripeOf(id)]
	mu.Lock()
	return mu.Unlock
}

func stripeOf(id uuid.UUID) int {
	h := fnv.New32a()
	_, _ = h.Write(id[:])
	return int(h.Sum32() % keyLockStripes)
}
