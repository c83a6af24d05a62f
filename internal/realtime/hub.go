// Package realtime fans out wishlist invalidation events to subscribed
// clients. Events are thin: they name what changed and let subscribers
// refetch, so a dropped event costs one stale render, never corrupted
// state.
package realtime

import (
	"sync"

	"giftlist/internal/models"
	"giftlist/internal/pkg/metrics"
)

const subscriberBuffer = 16

// Hub routes events to subscribers keyed by wishlist slug.
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[*Subscription]struct{}
}

// Subscription is one subscriber's event feed. Events arrives buffered;
// when the subscriber cannot drain fast enough, further events are
// dropped rather than blocking the publisher.
type Subscription struct {
	Events chan models.Event

	hub  *Hub
	slug string
	once sync.Once
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{topics: make(map[string]map[*Subscription]struct{})}
}

// Subscribe registers a new subscriber for the given wishlist slug.
func (h *Hub) Subscribe(slug string) *Subscription {
	sub := &Subscription{
		Events: make(chan models.Event, subscriberBuffer),
		hub:    h,
		slug:   slug,
	}

	h.mu.Lock()
	subs, ok := h.topics[slug]
	if !ok {
		subs = make(map[*Subscription]struct{})
		h.topics[slug] = subs
	}
	subs[sub] = struct{}{}
	h.mu.Unlock()

	metrics.RealtimeSubscribers.Inc()
	return sub
}

// Close detaches the subscription from the hub and closes its channel.
// Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.remove(s)
		close(s.Events)
		metrics.RealtimeSubscribers.Dec()
	})
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.topics[sub.slug]
	if !ok {
		return
	}
	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.topics, sub.slug)
	}
}

// Publish delivers the event to every subscriber of the slug without
// blocking. Subscribers with full buffers miss the event.
func (h *Hub) Publish(slug string, event models.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.topics[slug] {
		select {
		case sub.Events <- event:
		default:
			metrics.RealtimeDropped.Inc()
		}
	}
}

// CloseTopic drops every subscriber of a slug, closing their channels.
// Used when the wishlist behind the topic is deleted.
func (h *Hub) CloseTopic(slug string) {
	h.mu.Lock()
	subs := h.topics[slug]
	delete(h.topics, slug)
	h.mu.Unlock()

	for sub := range subs {
		sub.once.Do(func() {
			close(sub.Events)
			metrics.RealtimeSubscribers.Dec()
		})
	}
}

// Subscribers returns the number of open subscriptions for a slug.
func (h *Hub) Subscribers(slug string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[slug])
}
