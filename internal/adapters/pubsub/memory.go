// Package pubsub implementa el hub de suscripciones en proceso y sobre Redis pub/sub.
package pubsub

import (
	"context"
	"sync"

	"pet-tracker/internal/ports/realtime"
)

// MemoryHub sirve para una sola instancia (dev y tests).
type MemoryHub struct {
	mu   sync.RWMutex
	next int
	subs map[realtime.Topic]map[int]func(realtime.Event)
}

func NewMemoryHub() *MemoryHub {
	return &MemoryHub{subs: make(map[realtime.Topic]map[int]func(realtime.Event))}
}

func (h *MemoryHub) Publish(ctx context.Context, ev realtime.Event) error {
	h.mu.RLock()
	fns := make([]func(realtime.Event), 0, len(h.subs[ev.Topic]))
	for _, fn := range h.subs[ev.Topic] {
		fns = append(fns, fn)
	}
	h.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
	return nil
}

func (h *MemoryHub) Subscribe(ctx context.Context, topic realtime.Topic, fn func(realtime.Event)) (func(), error) {
	h.mu.Lock()
	id := h.next
	h.next++
	if h.subs[topic] == nil {
		h.subs[topic] = make(map[int]func(realtime.Event))
	}
	h.subs[topic][id] = fn
	h.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs[topic], id)
			if len(h.subs[topic]) == 0 {
				delete(h.subs, topic)
			}
		})
	}

	go func() {
		<-ctx.Done()
		unsubscribe()
	}()

	return unsubscribe, nil
}

// Subscribers cuenta suscriptores activos de topic.
func (h *MemoryHub) Subscribers(topic realtime.Topic) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[topic])
}
