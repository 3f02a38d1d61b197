package feed

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// NATSBroker publishes change notifications on core NATS subjects so that
// every API instance (or Lambda) sees writes made by the others.
type NATSBroker struct {
	conn   *nats.Conn
	prefix string
}

func NewNATSBroker(url, prefix string) (*NATSBroker, error) {
	conn, err := nats.Connect(url,
		nats.Name("organon"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS at %s: %w", url, err)
	}
	return &NATSBroker{conn: conn, prefix: prefix}, nil
}

func (b *NATSBroker) subject(userID uuid.UUID, c Collection) string {
	return b.prefix + "." + topic(userID, c)
}

func (b *NATSBroker) Notify(_ context.Context, userID uuid.UUID, c Collection) error {
	if err := b.conn.Publish(b.subject(userID, c), nil); err != nil {
		return fmt.Errorf("publish change notification: %w", err)
	}
	return nil
}

func (b *NATSBroker) Listen(_ context.Context, userID uuid.UUID, c Collection) (Listener, error) {
	msgs := make(chan *nats.Msg, 16)
	sub, err := b.conn.ChanSubscribe(b.subject(userID, c), msgs)
	if err != nil {
		return nil, fmt.Errorf("subscribe to %s: %w", b.subject(userID, c), err)
	}

	l := &natsListener{sub: sub, ch: make(chan struct{}, 1), stop: make(chan struct{})}
	go l.forward(msgs)
	return l, nil
}

func (b *NATSBroker) Close() error {
	if err := b.conn.Drain(); err != nil {
		b.conn.Close()
		return err
	}
	return nil
}

type natsListener struct {
	sub  *nats.Subscription
	ch   chan struct{}
	stop chan struct{}
	once sync.Once
}

func (l *natsListener) forward(msgs <-chan *nats.Msg) {
	for {
		select {
		case <-l.stop:
			return
		case <-msgs:
			select {
			case l.ch <- struct{}{}:
			default:
			}
		}
	}
}

func (l *natsListener) C() <-chan struct{} { return l.ch }

func (l *natsListener) Close() error {
	var err error
	l.once.Do(func() {
		close(l.stop)
		err = l.sub.Unsubscribe()
	})
	return err
}
