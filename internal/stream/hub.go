package stream

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/jmorales/seatscout/internal/model"
)

const subscriberBuffer = 32

// HubMetrics counts broadcast activity.
type HubMetrics struct {
	Delivered int64
	Dropped   int64
}

// Subscriber receives price updates for a set of games.
type Subscriber struct {
	games map[string]struct{} // empty = every game
	send  chan model.PriceUpdate
}

// Updates returns the subscriber's delivery channel. It closes when the
// subscriber is removed from the hub.
func (s *Subscriber) Updates() <-chan model.PriceUpdate { return s.send }

// wants reports whether the subscriber's filter covers gameID.
func (s *Subscriber) wants(gameID string) bool {
	if len(s.games) == 0 {
		return true
	}
	_, ok := s.games[gameID]
	return ok
}

// Hub fans price updates out to subscribers.
type Hub struct {
	logger *slog.Logger

	mu   sync.RWMutex
	subs map[*Subscriber]struct{}

	delivered atomic.Int64
	dropped   atomic.Int64
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		logger: logger,
		subs:   make(map[*Subscriber]struct{}),
	}
}

// Subscribe registers a new subscriber. An empty gameIDs list subscribes
// to every game.
func (h *Hub) Subscribe(gameIDs []string) *Subscriber {
	sub := &Subscriber{
		send: make(chan model.PriceUpdate, subscriberBuffer),
	}
	if len(gameIDs) > 0 {
		sub.games = make(map[string]struct{}, len(gameIDs))
		for _, id := range gameIDs {
			sub.games[id] = struct{}{}
		}
	}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	n := len(h.subs)
	h.mu.Unlock()

	h.logger.Debug("stream subscriber added", "subscribers", n)
	return sub
}

// Unsubscribe removes a subscriber and closes its channel. Safe to call
// more than once.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	_, ok := h.subs[sub]
	if ok {
		delete(h.subs, sub)
	}
	n := len(h.subs)
	h.mu.Unlock()

	if ok {
		close(sub.send)
		h.logger.Debug("stream subscriber removed", "subscribers", n)
	}
}

// Broadcast delivers an update to every subscriber whose filter matches.
// Subscribers with a full buffer miss the update. Sends happen under the
// read lock so Unsubscribe cannot close a channel mid-send.
func (h *Hub) Broadcast(u model.PriceUpdate) {
	var dropped int64

	h.mu.RLock()
	for sub := range h.subs {
		if !sub.wants(u.GameID) {
			continue
		}
		select {
		case sub.send <- u:
			h.delivered.Add(1)
		default:
			dropped++
		}
	}
	h.mu.RUnlock()

	if dropped > 0 {
		h.dropped.Add(dropped)
		h.logger.Warn("slow stream subscribers missed update",
			"game_id", u.GameID,
			"dropped", dropped,
		)
	}
}

// Stats returns current metrics.
func (h *Hub) Stats() HubMetrics {
	return HubMetrics{
		Delivered: h.delivered.Load(),
		Dropped:   h.dropped.Load(),
	}
}

// Subscribers returns the current subscriber count.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
