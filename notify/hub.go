package notify

import (
	"context"
	"sync"

	"github.com/kbukum/storefront/logger"
)

const defaultBuffer = 64

// Subscriber receives notifications from a Hub.
type Subscriber struct {
	id     string
	events chan Notification
}

// ID returns the subscriber id.
func (s *Subscriber) ID() string { return s.id }

// Events is closed when the subscriber is removed or the hub closes.
func (s *Subscriber) Events() <-chan Notification { return s.events }

// send delivers n unless the subscriber's buffer is full.
func (s *Subscriber) send(n Notification) bool {
	select {
	case s.events <- n:
		return true
	default:
		return false
	}
}

// Hub fans notifications out to subscribers. A slow subscriber loses
// messages instead of stalling the sender.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]*Subscriber
	closed bool
	log    *logger.Logger
}

var _ Notifier = (*Hub)(nil)

// NewHub creates an empty hub.
func NewHub(l *logger.Logger) *Hub {
	if l == nil {
		l = logger.Nop()
	}
	return &Hub{subs: make(map[string]*Subscriber), log: l.WithComponent("notify.hub")}
}

// Subscribe registers id with room for buffer pending notifications.
// Subscribing an existing id replaces it. After Close, the returned
// subscriber's channel is already closed.
func (h *Hub) Subscribe(id string, buffer int) *Subscriber {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	s := &Subscriber{id: id, events: make(chan Notification, buffer)}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(s.events)
		return s
	}
	if old, ok := h.subs[id]; ok {
		close(old.events)
	}
	h.subs[id] = s
	h.log.Debug("subscriber added", logger.Fields("subscriber_id", id, logger.FieldCount, len(h.subs)))
	return s
}

// Unsubscribe removes id and closes its channel.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(s.events)
	}
}

// Notify delivers n to every subscriber.
func (h *Hub) Notify(_ context.Context, n Notification) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return
	}
	for id, s := range h.subs {
		if !s.send(n) {
			h.log.Warn("subscriber buffer full, dropping notification", logger.Fields(
				"subscriber_id", id, "notification_id", n.ID))
		}
	}
}

// Len returns the number of subscribers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close removes all subscribers. Later notifications are discarded.
// Safe to call more than once.
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	for id, s := range h.subs {
		close(s.events)
		delete(h.subs, id)
	}
	return nil
}
