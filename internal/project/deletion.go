package project

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrDeletionNotFound = errors.New("pending deletion not found or expired")

// PendingDeletion is a deletion the user asked for but has not confirmed.
// Nothing is removed until it is confirmed.
type PendingDeletion struct {
	Token       string    `json:"token"`
	ProjectID   uuid.UUID `json:"projectId"`
	Kind        NodeKind  `json:"kind"`
	Path        NodePath  `json:"path"`
	Description string    `json:"description"`
	ExpiresAt   time.Time `json:"expiresAt"`

	userID uuid.UUID
}

type deletionQueue struct {
	mu      sync.Mutex
	pending map[string]PendingDeletion
	ttl     time.Duration
	now     func() time.Time
}

func newDeletionQueue(ttl time.Duration) *deletionQueue {
	return &deletionQueue{
		pending: make(map[string]PendingDeletion),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (q *deletionQueue) add(d PendingDeletion) PendingDeletion {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	q.sweep(now)

	d.Token = uuid.NewString()
	d.ExpiresAt = now.Add(q.ttl)
	q.pending[d.Token] = d
	return d
}

// take removes and returns the pending deletion. Tokens that expired or belong
// to another user are reported as not found.
func (q *deletionQueue) take(token string, userID uuid.UUID) (PendingDeletion, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	q.sweep(now)

	d, ok := q.pending[token]
	if !ok || d.userID != userID {
		return PendingDeletion{}, ErrDeletionNotFound
	}
	delete(q.pending, token)
	return d, nil
}

func (q *deletionQueue) sweep(now time.Time) {
	for token, d := range q.pending {
		if !now.Before(d.ExpiresAt) {
			delete(q.pending, token)
		}
	}
}

func describeDeletion(p Project, kind NodeKind, path NodePath) string {
	title, ok := NodeTitle(p, kind, path)
	if !ok {
		return "Delete " + string(kind)
	}
	switch kind {
	case KindProject:
		return "Delete project \"" + title + "\" and its whole tree"
	case KindSubCheckpoint:
		return "Delete sub-checkpoint \"" + title + "\""
	default:
		return "Delete " + string(kind) + " \"" + title + "\" and everything inside it"
	}
}
