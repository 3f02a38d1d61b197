package project

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

const HistoryTimestampLayout = "02/01/2006 15:04:05"

type HistoryEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// History keeps a per-session log of destructive actions, most recent first.
// It lives in memory only and a session's log is dropped when the session ends.
type History struct {
	mu       sync.Mutex
	sessions map[string][]HistoryEntry
	loc      *time.Location
	now      func() time.Time
}

func NewHistory(loc *time.Location) *History {
	if loc == nil {
		loc = time.UTC
	}
	return &History{
		sessions: make(map[string][]HistoryEntry),
		loc:      loc,
		now:      time.Now,
	}
}

func (h *History) Record(sessionID, text string) HistoryEntry {
	entry := HistoryEntry{
		ID:        "log-" + uuid.Must(uuid.NewV7()).String(),
		Text:      text,
		Timestamp: h.now().In(h.loc).Format(HistoryTimestampLayout),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	prev := h.sessions[sessionID]
	entries := make([]HistoryEntry, 0, len(prev)+1)
	entries = append(entries, entry)
	entries = append(entries, prev...)
	h.sessions[sessionID] = entries
	return entry
}

func (h *History) Entries(sessionID string) []HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries := h.sessions[sessionID]
	out := make([]HistoryEntry, len(entries))
	copy(out, entries)
	return out
}

func (h *History) Forget(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, sessionID)
}

// DeletionMessage is the history text for a confirmed deletion.
func DeletionMessage(kind NodeKind) string {
	if kind == KindProject {
		return "Project deleted."
	}
	return fmt.Sprintf("Item of type %q was deleted.", string(kind))
}
