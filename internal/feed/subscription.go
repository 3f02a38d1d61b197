package feed

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/organon/internal/config"
	"github.com/saulo-duarte/organon/internal/metrics"
)

// Snapshot is the full current content of a collection.
type Snapshot[T any] struct {
	Collection Collection `json:"collection"`
	Items      []T        `json:"items"`
	At         time.Time  `json:"at"`
}

// Loader reads the whole collection for the user carried by ctx.
type Loader[T any] func(ctx context.Context) ([]T, error)

// Erase adapts a typed loader for consumers that only serialise the items.
func Erase[T any](load Loader[T]) Loader[any] {
	return func(ctx context.Context) ([]any, error) {
		items, err := load(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]any, len(items))
		for i := range items {
			out[i] = items[i]
		}
		return out, nil
	}
}

// Subscription yields one snapshot on open and one after every change.
// The owner must call Close; cancelling the parent context also tears it down.
type Subscription[T any] struct {
	collection Collection
	updates    chan Snapshot[T]
	cancel     context.CancelFunc
	done       chan struct{}
	closeOnce  sync.Once
}

func Subscribe[T any](ctx context.Context, b Broker, userID uuid.UUID, c Collection, load Loader[T]) (*Subscription[T], error) {
	listener, err := b.Listen(ctx, userID, c)
	if err != nil {
		return nil, err
	}

	initial, err := load(ctx)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}

	subCtx, cancel := context.WithCancel(ctx)
	s := &Subscription[T]{
		collection: c,
		updates:    make(chan Snapshot[T], 1),
		cancel:     cancel,
		done:       make(chan struct{}),
	}

	metrics.FeedSubscriptions.WithLabelValues(string(c)).Inc()
	go s.run(subCtx, listener, load, initial)
	return s, nil
}

func (s *Subscription[T]) Updates() <-chan Snapshot[T] {
	return s.updates
}

func (s *Subscription[T]) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		<-s.done
	})
}

func (s *Subscription[T]) run(ctx context.Context, listener Listener, load Loader[T], initial []T) {
	defer func() {
		_ = listener.Close()
		close(s.updates)
		metrics.FeedSubscriptions.WithLabelValues(string(s.collection)).Dec()
		close(s.done)
	}()

	if !s.send(ctx, initial) {
		return
	}

	log := config.WithContext(ctx).WithField("collection", s.collection)
	for {
		select {
		case <-ctx.Done():
			return
		case <-listener.C():
			items, err := load(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.WithError(err).Warn("Failed to reload collection for change feed")
				continue
			}
			if !s.send(ctx, items) {
				return
			}
		}
	}
}

func (s *Subscription[T]) send(ctx context.Context, items []T) bool {
	snap := Snapshot[T]{Collection: s.collection, Items: items, At: time.Now()}
	select {
	case <-ctx.Done():
		return false
	case s.updates <- snap:
		return true
	}
}
