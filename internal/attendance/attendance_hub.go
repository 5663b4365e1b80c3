package attendance

import (
	"context"
	"sync"
	"sync/atomic"
)

// Hub fans punch events out to in-process subscribers.
//
// Delivery is at-most-once: Publish never blocks, an event is dropped for a
// subscriber whose buffer is full, and events published before Subscribe (or
// after Close) are never replayed.
type Hub struct {
	mu      sync.RWMutex
	subs    map[uint64]*Subscription
	nextID  uint64
	dropped atomic.Uint64
}

func NewHub() *Hub {
	return &Hub{subs: make(map[uint64]*Subscription)}
}

// Subscribe registers a subscriber with the given channel buffer (minimum 1).
func (h *Hub) Subscribe(buffer int) *Subscription {
	if buffer < 1 {
		buffer = 1
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	sub := &Subscription{hub: h, id: h.nextID, ch: make(chan PunchEvent, buffer)}
	h.subs[sub.id] = sub
	return sub
}

func (h *Hub) Publish(evt PunchEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, sub := range h.subs {
		select {
		case sub.ch <- evt:
		default:
			h.dropped.Add(1)
		}
	}
}

// Dropped counts deliveries skipped because a subscriber was full.
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[sub.id]; ok {
		delete(h.subs, sub.id)
		close(sub.ch)
	}
}

type Subscription struct {
	hub *Hub
	id  uint64
	ch  chan PunchEvent
}

// Events is closed once the subscription is closed.
func (s *Subscription) Events() <-chan PunchEvent {
	return s.ch
}

// Close unregisters the subscription. It is safe to call more than once.
func (s *Subscription) Close() {
	s.hub.remove(s)
}

// Pump delivers events from sub to fn until ctx is done or sub is closed.
// It closes sub before returning.
func Pump(ctx context.Context, sub *Subscription, fn func(context.Context, PunchEvent)) {
	defer sub.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-sub.Events():
			if !ok {
				return
			}
			fn(ctx, evt)
		}
	}
}
