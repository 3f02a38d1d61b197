package feed

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Notifier is what services call after a successful write.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, c Collection) error
}

// Listener delivers a signal per change; bursts may be coalesced into one.
type Listener interface {
	C() <-chan struct{}
	Close() error
}

type Broker interface {
	Notifier
	Listen(ctx context.Context, userID uuid.UUID, c Collection) (Listener, error)
	Close() error
}

func topic(userID uuid.UUID, c Collection) string {
	return userID.String() + "." + string(c)
}

// MemoryBroker fans notifications out inside one process.
type MemoryBroker struct {
	mu        sync.Mutex
	listeners map[string]map[*memoryListener]struct{}
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{listeners: make(map[string]map[*memoryListener]struct{})}
}

func (b *MemoryBroker) Notify(_ context.Context, userID uuid.UUID, c Collection) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for l := range b.listeners[topic(userID, c)] {
		select {
		case l.ch <- struct{}{}:
		default:
		}
	}
	return nil
}

func (b *MemoryBroker) Listen(_ context.Context, userID uuid.UUID, c Collection) (Listener, error) {
	l := &memoryListener{broker: b, key: topic(userID, c), ch: make(chan struct{}, 1)}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.listeners[l.key] == nil {
		b.listeners[l.key] = make(map[*memoryListener]struct{})
	}
	b.listeners[l.key][l] = struct{}{}
	return l, nil
}

func (b *MemoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = make(map[string]map[*memoryListener]struct{})
	return nil
}

func (b *MemoryBroker) remove(l *memoryListener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	set := b.listeners[l.key]
	delete(set, l)
	if len(set) == 0 {
		delete(b.listeners, l.key)
	}
}

type memoryListener struct {
	broker *MemoryBroker
	key    string
	ch     chan struct{}
	once   sync.Once
}

func (l *memoryListener) C() <-chan struct{} { return l.ch }

func (l *memoryListener) Close() error {
	l.once.Do(func() { l.broker.remove(l) })
	return nil
}
