package feed

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/saulo-duarte/organon/internal/auth"
	"github.com/saulo-duarte/organon/internal/config"
)

// Handler streams snapshots of a collection as server-sent events.
type Handler struct {
	broker  Broker
	sources map[Collection]Loader[any]

	done     chan struct{}
	shutdown sync.Once
}

func NewHandler(broker Broker, sources map[Collection]Loader[any]) *Handler {
	return &Handler{broker: broker, sources: sources, done: make(chan struct{})}
}

// Shutdown ends every open stream. http.Server.Shutdown does not cancel
// request contexts, so long-lived streams would otherwise hold it open.
func (h *Handler) Shutdown() {
	h.shutdown.Do(func() { close(h.done) })
}

func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	c, err := ParseCollection(chi.URLParam(r, "collection"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	load, ok := h.sources[c]
	if !ok {
		http.Error(w, "collection not available", http.StatusNotFound)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusNotImplemented)
		return
	}

	sub, err := Subscribe(r.Context(), h.broker, userID, c, load)
	if err != nil {
		if errors.Is(err, auth.ErrNoClaims) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		log.WithError(err).Error("Failed to open change feed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	defer sub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	log.WithField("collection", c).Info("Change feed opened")
	updates := sub.Updates()
	for {
		select {
		case <-h.done:
			log.WithField("collection", c).Info("Change feed closed by shutdown")
			return
		case snap, ok := <-updates:
			if !ok {
				log.WithField("collection", c).Info("Change feed closed")
				return
			}
			data, err := json.Marshal(snap)
			if err != nil {
				log.WithError(err).Error("Failed to encode snapshot")
				return
			}
			if _, err := fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
